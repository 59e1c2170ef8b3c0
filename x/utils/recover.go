package utils

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ notepool.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Checker) (_ *notepool.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Deliverer) (_ *notepool.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
