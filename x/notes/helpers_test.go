package notes

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/store"
	"github.com/tss-labs/notepool/x/currency"
	"github.com/tss-labs/notepool/x/vault"
)

func amount(n uint64) coin.Amount {
	return coin.NewAmount(n)
}

// fundedStore returns a store with USDC registered, and the depositor
// holding and having approved the given amount.
func fundedStore(t testing.TB, depositor notepool.Address, funds uint64) notepool.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	require.NoError(t, currency.NewAssetBucket().Save(db, currency.NewAsset("USDC", "USD Coin", 6, "")))
	c := vault.NewController()
	require.NoError(t, c.Credit(db, "USDC", depositor, amount(funds)))
	require.NoError(t, c.Approve(db, depositor, "USDC", vault.PoolAddress, amount(funds)))
	return db
}

// markingVault locks by writing a marker key, so tests can see whether the
// lock survived.
type markingVault struct {
	vault.Controller
}

var marker = []byte("locked")

func (m markingVault) Lock(db notepool.KVStore, asset string, amount coin.Amount, from notepool.Address) (*vault.Receipt, error) {
	if err := db.Set(marker, []byte{1}); err != nil {
		return nil, err
	}
	return &vault.Receipt{Asset: asset, Amount: amount, From: from}, nil
}
