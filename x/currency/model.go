package currency

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/orm"
)

var isAssetName = regexp.MustCompile(`^[A-Za-z0-9 \-_:.]{3,32}$`).MatchString

// Asset describes a fungible asset the vault can hold. It is keyed by its
// symbol and never changes once registered.
type Asset struct {
	Name     string `json:"name"`
	Decimals uint32 `json:"decimals"`
	// Contract is the token contract on the settlement chain, if any.
	Contract string `json:"contract,omitempty"`
}

var _ orm.Model = (*Asset)(nil)

// Validate checks the asset description.
func (a *Asset) Validate() error {
	if !isAssetName(a.Name) {
		return errors.Wrapf(errors.ErrModel, "invalid asset name %q", a.Name)
	}
	if a.Decimals > coin.MaxDecimals {
		return errors.Wrapf(errors.ErrModel, "at most %d decimals", coin.MaxDecimals)
	}
	if a.Contract != "" && !common.IsHexAddress(a.Contract) {
		return errors.Wrapf(errors.ErrModel, "invalid contract address %q", a.Contract)
	}
	return nil
}

// NewAsset returns a new asset, as represented by orm object.
func NewAsset(symbol, name string, decimals uint32, contract string) orm.Object {
	return orm.NewSimpleObj([]byte(symbol), &Asset{
		Name:     name,
		Decimals: decimals,
		Contract: contract,
	})
}

// AssetBucket stores Asset instances, using the symbol as the key.
type AssetBucket struct {
	orm.Bucket
}

// NewAssetBucket returns the bucket for registered assets.
func NewAssetBucket() *AssetBucket {
	return &AssetBucket{
		Bucket: orm.NewBucket("asset", orm.NewSimpleObj(nil, &Asset{})),
	}
}

// Get returns the asset registered under the given symbol, or nil.
func (b *AssetBucket) Get(db notepool.ReadOnlyKVStore, symbol string) (*Asset, error) {
	obj, err := b.Bucket.Get(db, []byte(symbol))
	if err != nil || obj == nil {
		return nil, err
	}
	a, ok := obj.Value().(*Asset)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return a, nil
}

// MustGet is like Get but fails with ErrNotFound for unknown symbols.
func (b *AssetBucket) MustGet(db notepool.ReadOnlyKVStore, symbol string) (*Asset, error) {
	a, err := b.Get(db, symbol)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "asset %s", symbol)
	}
	return a, nil
}

// Symbols lists the symbols of all registered assets.
func (b *AssetBucket) Symbols(db notepool.ReadOnlyKVStore) ([]string, error) {
	models, err := b.Query(db, notepool.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	prefix := len(b.DBKey(nil))
	symbols := make([]string, len(models))
	for i, m := range models {
		symbols[i] = string(m.Key[prefix:])
	}
	return symbols, nil
}

// Save stores an asset. Registered assets are immutable.
func (b *AssetBucket) Save(db notepool.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Asset); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	if n := string(obj.Key()); !coin.IsTicker(n) {
		return errors.Wrapf(errors.ErrInput, "invalid symbol %q", n)
	}
	switch exists, err := b.Has(db, obj.Key()); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(errors.ErrDuplicate, "asset %s", obj.Key())
	}
	return b.Bucket.Save(db, obj)
}
