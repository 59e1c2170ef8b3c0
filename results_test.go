package notepool

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool/errors"
)

func TestDeliverRoundTrip(t *testing.T) {
	res := &DeliverResult{Data: []byte{0, 0, 0, 1}}
	res.Tag("action", "commit")

	abciRes := DeliverOrError(res, nil, false)
	assert.Equal(t, uint32(0), abciRes.Code)

	got, err := ParseDeliverOrError(abciRes)
	require.NoError(t, err)
	assert.Equal(t, res.Data, got.Data)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "action", string(got.Tags[0].Key))
	assert.Equal(t, "commit", string(got.Tags[0].Value))
}

func TestDeliverErrorRoundTrip(t *testing.T) {
	cases := map[string]struct {
		err     error
		wantErr *errors.Error
		wantLog string
	}{
		"registered error is rebuilt": {
			err:     errors.ErrDuplicate.New("commitment"),
			wantErr: errors.ErrDuplicate,
			wantLog: "commitment: duplicate",
		},
		"internal error is redacted": {
			err:     io.EOF,
			wantLog: "internal error",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			abciRes := DeliverOrError(nil, tc.err, false)
			assert.NotEqual(t, uint32(0), abciRes.Code)

			_, err := ParseDeliverOrError(abciRes)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
				assert.Equal(t, tc.wantLog, err.Error())
			} else {
				assert.Contains(t, err.Error(), tc.wantLog)
			}

			checkRes := CheckOrError(nil, tc.err, false)
			_, err = ParseCheckOrError(checkRes)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}
