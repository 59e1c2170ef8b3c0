package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantLog:  "internal error",
			wantCode: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			if tc.debug && tc.err != nil {
				assert.Contains(t, log, tc.wantLog)
			} else {
				assert.Equal(t, tc.wantLog, log)
			}
		})
	}
}

func TestABCIErrorRoundTrip(t *testing.T) {
	orig := ErrState.Newf("note %d", 7)
	code, log := ABCIInfo(orig, false)

	rebuilt := ABCIError(code, log)
	assert.True(t, ErrState.Is(rebuilt))
	assert.Equal(t, orig.Error(), rebuilt.Error())

	assert.Nil(t, ABCIError(SuccessABCICode, ""))

	unknown := ABCIError(987654, "something")
	assert.False(t, ErrState.Is(unknown))
	assert.Equal(t, uint32(987654), abciCode(unknown))
}

func TestRedact(t *testing.T) {
	cases := map[string]struct {
		err       error
		debug     bool
		untouched bool
	}{
		"panic looses message": {
			err: Wrap(ErrPanic, "some secret stack trace"),
		},
		"sensitive error looses message": {
			err: io.EOF,
		},
		"registered error keeps message": {
			err:       Wrap(ErrNotFound, "note"),
			untouched: true,
		},
		"debug mode keeps everything": {
			err:       io.EOF,
			debug:     true,
			untouched: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := Redact(tc.err, tc.debug)
			if tc.untouched {
				assert.Equal(t, tc.err, got)
				return
			}
			assert.Equal(t, internalABCILog, got.Error())
		})
	}
}
