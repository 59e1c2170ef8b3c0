package coin

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/go-amino"
	"github.com/tss-labs/notepool/errors"
)

const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func TestParseUnits(t *testing.T) {
	cases := map[string]struct {
		value    string
		decimals uint8
		want     string
		wantErr  *errors.Error
	}{
		"whole number": {
			value: "12", decimals: 6, want: "12000000",
		},
		"fraction": {
			value: "1.5", decimals: 6, want: "1500000",
		},
		"only fraction": {
			value: ".25", decimals: 18, want: "250000000000000000",
		},
		"exact precision": {
			value: "0.000001", decimals: 6, want: "1",
		},
		"no decimals asset": {
			value: "42", decimals: 0, want: "42",
		},
		"too precise": {
			value: "0.0000001", decimals: 6, wantErr: errors.ErrAmount,
		},
		"negative": {
			value: "-1", decimals: 6, wantErr: errors.ErrAmount,
		},
		"dangling dot": {
			value: "1.", decimals: 6, wantErr: errors.ErrAmount,
		},
		"garbage": {
			value: "1e6", decimals: 6, wantErr: errors.ErrAmount,
		},
		"overflow": {
			value: maxUint256, decimals: 1, wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseUnits(tc.value, tc.decimals)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	cases := map[string]struct {
		amount   Amount
		decimals uint8
		want     string
	}{
		"zero":              {NewAmount(0), 6, "0"},
		"below one":         {NewAmount(1), 6, "0.000001"},
		"trailing zeros":    {NewAmount(1500000), 6, "1.5"},
		"whole":             {NewAmount(3000000), 6, "3"},
		"no decimals asset": {NewAmount(42), 0, "42"},
		"eighteen decimals": {MustParseAmount("1230000000000000000"), 18, "1.23"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.amount.FormatUnits(tc.decimals))
		})
	}
}

func TestAmountMath(t *testing.T) {
	a, b := NewAmount(10), NewAmount(3)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "13", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "7", diff.String())

	_, err = b.Sub(a)
	assert.True(t, errors.ErrAmount.Is(err))

	max := MustParseAmount(maxUint256)
	_, err = max.Add(NewAmount(1))
	assert.True(t, errors.ErrOverflow.Is(err))

	assert.Equal(t, 1, a.Cmp(b))
	assert.True(t, a.IsGTE(b))
	assert.True(t, a.IsGTE(NewAmount(10)))
	assert.False(t, b.IsGTE(a))
	assert.True(t, Amount{}.IsZero())
	assert.False(t, Amount{}.IsPositive())
	assert.True(t, sum.Equals(NewAmount(13)))
}

func TestAmountJSON(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"`+maxUint256+`"`), &a))
	assert.Equal(t, maxUint256, a.String())

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"`+maxUint256+`"`, string(raw))

	require.NoError(t, json.Unmarshal([]byte(`1500`), &a))
	assert.Equal(t, "1500", a.String())

	err = json.Unmarshal([]byte(`"-4"`), &a)
	assert.True(t, errors.ErrAmount.Is(err))
}

func TestAmountAmino(t *testing.T) {
	type holder struct {
		Asset  string
		Amount Amount
	}
	cdc := amino.NewCodec()

	in := holder{Asset: "USDC", Amount: MustParseAmount(strings.Repeat("9", 40))}
	raw, err := cdc.MarshalBinaryBare(in)
	require.NoError(t, err)

	var out holder
	require.NoError(t, cdc.UnmarshalBinaryBare(raw, &out))
	assert.Equal(t, in.Asset, out.Asset)
	assert.True(t, in.Amount.Equals(out.Amount))
}

func TestIsTicker(t *testing.T) {
	assert.True(t, IsTicker("TSS"))
	assert.True(t, IsTicker("USDC"))
	assert.False(t, IsTicker("usdc"))
	assert.False(t, IsTicker("X"))
	assert.False(t, IsTicker("1INCH"))
}
