package vault

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/gconf"
)

// GenesisBalance is a single entry of the genesis "vault" balances.
type GenesisBalance struct {
	Address notepool.Address `json:"address"`
	Asset   string           `json:"asset"`
	Amount  coin.Amount      `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ notepool.Initializer = (*Initializer)(nil)

// FromGenesis stores the vault configuration from "conf" and credits the
// balances listed under "vault". Assets must be registered first.
func (*Initializer) FromGenesis(opts notepool.Options, kv notepool.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, "vault", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var state struct {
		Balances []GenesisBalance `json:"balances"`
	}
	if err := opts.ReadOptions("vault", &state); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	control := NewController()
	for i, b := range state.Balances {
		if err := b.Address.Validate(); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
		if err := control.Credit(kv, b.Asset, b.Address, b.Amount); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
	}
	return nil
}
