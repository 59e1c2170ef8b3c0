package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool/errors"
)

func TestParseSecret(t *testing.T) {
	cases := map[string]struct {
		input   string
		wantErr *errors.Error
	}{
		"plain hex": {
			input: "00112233445566778899aabbccddeeff",
		},
		"prefixed hex": {
			input: "0x00112233445566778899AABBCCDDEEFF",
		},
		"too short": {
			input:   "0011",
			wantErr: errors.ErrInput,
		},
		"not hex": {
			input:   "this is not a secret at all!!!!!",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			secret, err := parseSecret(tc.input)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, secret, 16)
		})
	}
}
