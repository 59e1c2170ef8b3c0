/*
Package coin provides the amount type used for every balance, allowance and
note in the ledger.

An Amount is an unsigned 256 bit integer counted in the smallest unit of an
asset, the same range a token contract works with. Human readable values
such as "1.5" are converted with ParseUnits and FormatUnits given the number
of decimals of the asset.
*/
package coin

import (
	"encoding/json"
	"math/big"
	"regexp"
	"strings"

	"github.com/holiman/uint256"
	"github.com/tss-labs/notepool/errors"
)

// IsTicker is the RegExp to ensure valid asset symbols
var IsTicker = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,11}$`).MatchString

// MaxDecimals is the largest number of decimals an asset may declare.
const MaxDecimals = 36

var isDigits = regexp.MustCompile(`^[0-9]+$`).MatchString

// Amount is a non negative quantity of an asset in its smallest unit.
// The zero value is a valid zero amount.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount of n units.
func NewAmount(n uint64) Amount {
	var a Amount
	a.v.SetUint64(n)
	return a
}

// ParseAmount reads a base 10 integer amount.
func ParseAmount(s string) (Amount, error) {
	if !isDigits(s) {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "not a decimal integer: %q", s)
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "not a decimal integer: %q", s)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "amount %s", s)
	}
	return Amount{v: *v}, nil
}

// MustParseAmount is like ParseAmount but panics on error. Use it only with
// constant input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseUnits converts a human readable value such as "12.5" into the
// smallest unit of an asset with the given number of decimals. Values with
// more fractional digits than decimals are rejected, no rounding happens.
func ParseUnits(s string, decimals uint8) (Amount, error) {
	if decimals > MaxDecimals {
		return Amount{}, errors.Wrapf(errors.ErrInput, "too many decimals: %d", decimals)
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if frac == "" {
			return Amount{}, errors.Wrapf(errors.ErrAmount, "missing fraction: %q", s)
		}
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "malformed value: %q", s)
	}
	if len(frac) > int(decimals) {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "%q has more than %d decimals", s, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))
	return ParseAmount(whole + frac)
}

// FormatUnits prints the amount as a human readable value of an asset with
// the given number of decimals. Trailing zeros of the fraction are dropped.
func (a Amount) FormatUnits(decimals uint8) string {
	s := a.String()
	if decimals == 0 {
		return s
	}
	d := int(decimals)
	if len(s) <= d {
		s = strings.Repeat("0", d-len(s)+1) + s
	}
	whole, frac := s[:len(s)-d], strings.TrimRight(s[len(s)-d:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// Add returns the sum of both amounts.
func (a Amount) Add(o Amount) (Amount, error) {
	var res Amount
	res.v.Add(&a.v, &o.v)
	// wrapped around
	if res.v.Lt(&a.v) {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, o)
	}
	return res, nil
}

// Sub returns a - o. Amounts never go below zero.
func (a Amount) Sub(o Amount) (Amount, error) {
	if a.v.Lt(&o.v) {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "%s is less than %s", a, o)
	}
	var res Amount
	res.v.Sub(&a.v, &o.v)
	return res, nil
}

// Cmp compares both amounts and returns -1, 0 or 1.
func (a Amount) Cmp(o Amount) int {
	return a.v.Cmp(&o.v)
}

// Equals returns true if both amounts are the same.
func (a Amount) Equals(o Amount) bool {
	return a.v.Eq(&o.v)
}

// IsZero returns true for a zero amount.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return !a.v.IsZero()
}

// IsGTE returns true if a is greater than or equal to o.
func (a Amount) IsGTE(o Amount) bool {
	return a.Cmp(o) >= 0
}

// BigInt returns the amount as a big integer.
func (a Amount) BigInt() *big.Int {
	return a.v.ToBig()
}

// String returns the base 10 representation.
func (a Amount) String() string {
	return a.v.ToBig().String()
}

// MarshalJSON encodes the amount as a decimal string, so that values
// above 2^53 survive JavaScript clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a decimal string or a plain JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrAmount, "cannot decode json")
		}
		s = n.String()
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalAmino encodes the amount for the binary codec.
func (a Amount) MarshalAmino() (string, error) {
	return a.String(), nil
}

// UnmarshalAmino decodes the amount from the binary codec.
func (a *Amount) UnmarshalAmino(s string) error {
	if s == "" {
		*a = Amount{}
		return nil
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
