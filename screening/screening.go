package screening

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
	"github.com/tss-labs/notepool/errors"
)

// ErrFormat is returned when a destination is not a valid address of its
// family.
var ErrFormat = errors.Register(500, "malformed destination")

// DefaultTimeout bounds the activity lookup.
const DefaultTimeout = 5 * time.Second

// Family is the address format of a chain.
type Family int

const (
	// FamilyHex is a 20 byte address written as 40 hex digits, optionally
	// 0x prefixed.
	FamilyHex Family = iota + 1
	// FamilyBase58 is a 32 byte key written in base-58.
	FamilyBase58
)

func (f Family) String() string {
	switch f {
	case FamilyHex:
		return "hex"
	case FamilyBase58:
		return "base58"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily reads a family name. Chain names are accepted as aliases.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(s) {
	case "hex", "evm", "ethereum":
		return FamilyHex, nil
	case "base58", "solana":
		return FamilyBase58, nil
	default:
		return 0, errors.Wrapf(errors.ErrInput, "unknown address family %q", s)
	}
}

// Classification is the verdict of a screening.
type Classification int

const (
	// Safe means the address has sent transactions before.
	Safe Classification = iota + 1
	// Warning means the address is well formed but never used.
	Warning
	// FormatError means the address does not match its family.
	FormatError
	// Indeterminate means the activity could not be determined.
	Indeterminate
)

func (c Classification) String() string {
	switch c {
	case Safe:
		return "safe"
	case Warning:
		return "warning"
	case FormatError:
		return "format error"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unscreened"
	}
}

// Result is the outcome of screening one address.
type Result struct {
	Classification Classification
	Detail         string
	// Activity is the number of transactions seen, if known.
	Activity uint64
}

// Blocks returns true if the destination must not be used.
func (r Result) Blocks() bool {
	return r.Classification == FormatError
}

// ActivityQuerier counts past transactions of an address on one chain.
type ActivityQuerier interface {
	Activity(ctx context.Context, address string) (uint64, error)
}

// Screener screens addresses of every family it has a querier for. It keeps
// no state between calls and is safe for concurrent use once configured.
type Screener struct {
	timeout  time.Duration
	queriers map[Family]ActivityQuerier
}

// NewScreener returns a screener without queriers. A non positive timeout
// means DefaultTimeout.
func NewScreener(timeout time.Duration) *Screener {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Screener{
		timeout:  timeout,
		queriers: make(map[Family]ActivityQuerier),
	}
}

// WithQuerier sets the activity source for a family.
func (s *Screener) WithQuerier(f Family, q ActivityQuerier) *Screener {
	s.queriers[f] = q
	return s
}

// Screen checks the format of address and then its activity.
func (s *Screener) Screen(ctx context.Context, address string, family Family) Result {
	if err := CheckFormat(address, family); err != nil {
		return Result{Classification: FormatError, Detail: err.Error()}
	}
	q, ok := s.queriers[family]
	if !ok {
		return Result{Classification: Indeterminate, Detail: "no activity source for " + family.String()}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := q.Activity(ctx, address)
	if err != nil {
		return Result{Classification: Indeterminate, Detail: err.Error()}
	}
	if n == 0 {
		return Result{Classification: Warning, Detail: "address has no transactions"}
	}
	return Result{Classification: Safe, Activity: n, Detail: fmt.Sprintf("%d transactions", n)}
}

// CheckFormat returns ErrFormat if address is not valid for family.
func CheckFormat(address string, family Family) error {
	switch family {
	case FamilyHex:
		if !common.IsHexAddress(address) {
			return errors.Wrapf(ErrFormat, "%q is not a hex address", address)
		}
	case FamilyBase58:
		if n := len(address); n < 32 || n > 44 {
			return errors.Wrapf(ErrFormat, "base58 address must have 32 to 44 characters, got %d", n)
		}
		if raw := base58.Decode(address); len(raw) != 32 {
			return errors.Wrapf(ErrFormat, "%q does not decode to 32 bytes", address)
		}
	default:
		return errors.Wrapf(errors.ErrInput, "unknown address family %s", family)
	}
	return nil
}
