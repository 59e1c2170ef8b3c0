package app

import (
	"github.com/tss-labs/notepool"
)

// ChainInitializers lets you initialize many extensions with one function.
// They run in the given order, so an extension may rely on the state
// written by the ones before it.
func ChainInitializers(inits ...notepool.Initializer) notepool.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []notepool.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts notepool.Options, kv notepool.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
