package currency

import (
	"github.com/tss-labs/notepool"
)

// GenesisAsset is a single entry of the genesis "currencies" list.
type GenesisAsset struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint32 `json:"decimals"`
	Contract string `json:"contract,omitempty"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ notepool.Initializer = (*Initializer)(nil)

// FromGenesis registers all assets listed under "currencies".
func (*Initializer) FromGenesis(opts notepool.Options, kv notepool.KVStore) error {
	var assets []GenesisAsset
	if err := opts.ReadOptions("currencies", &assets); err != nil {
		return err
	}

	bucket := NewAssetBucket()
	for _, a := range assets {
		obj := NewAsset(a.Symbol, a.Name, a.Decimals, a.Contract)
		if err := bucket.Save(kv, obj); err != nil {
			return err
		}
	}
	return nil
}
