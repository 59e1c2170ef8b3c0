package utils

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

// Savepoint runs the rest of the stack in a cache wrap. The wrap is written
// when the call succeeds and discarded when it fails, so a failing handler
// leaves no partial state behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ notepool.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator that does nothing until
// OnCheck or OnDeliver is called.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a savepoint
func (s Savepoint) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Checker) (*notepool.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *notepool.CheckResult
	err := inCache(db, func(cache notepool.KVStore) error {
		var err error
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a savepoint
func (s Savepoint) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Deliverer) (*notepool.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *notepool.DeliverResult
	err := inCache(db, func(cache notepool.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// inCache calls fn on a cache wrap of db if possible, or on db itself.
func inCache(db notepool.KVStore, fn func(notepool.KVStore) error) error {
	cstore, ok := db.(notepool.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
