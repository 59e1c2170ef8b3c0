/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.
*/
package sigs

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr notepool.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures and adds them to the context.
// Transactions without any signature are passed along with no signers, so
// that handlers which need no authentication (redeem) can be reached.
type Decorator struct {
	requireSigs bool
}

var _ notepool.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// RequireSigs rejects every transaction with no signature.
func (d Decorator) RequireSigs() Decorator {
	d.requireSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx notepool.Context, store notepool.KVStore, tx notepool.Tx, next notepool.Checker) (*notepool.CheckResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx notepool.Context, store notepool.KVStore, tx notepool.Tx, next notepool.Deliverer) (*notepool.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx notepool.Context, store notepool.KVStore, tx notepool.Tx) (notepool.Context, error) {
	var signers []notepool.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(store, stx, notepool.GetChainID(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && d.requireSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
