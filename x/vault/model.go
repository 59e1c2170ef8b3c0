package vault

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/orm"
)

var (
	// PoolAddress is the spender a depositor approves before committing a
	// note. Nobody holds a key for it; only Lock spends its allowances.
	PoolAddress = notepool.NewCondition("vault", "pool", nil).Address()
)

// EscrowCondition is the condition of the account holding all escrowed
// funds of an asset.
func EscrowCondition(asset string) notepool.Condition {
	return notepool.NewCondition("vault", "escrow", []byte(asset))
}

// EscrowAddress is the address of the escrow account of an asset.
func EscrowAddress(asset string) notepool.Address {
	return EscrowCondition(asset).Address()
}

// Balance is the amount of an asset held by one account.
type Balance struct {
	Amount coin.Amount `json:"amount"`
}

var _ orm.Model = (*Balance)(nil)

// Validate always succeeds, amounts cannot be negative.
func (b *Balance) Validate() error {
	return nil
}

// Allowance is the amount a spender may still pull from an owner.
type Allowance struct {
	Amount coin.Amount `json:"amount"`
}

var _ orm.Model = (*Allowance)(nil)

// Validate always succeeds, amounts cannot be negative.
func (a *Allowance) Validate() error {
	return nil
}

// BalanceKey is the key of the balance of addr in asset.
//
//   <asset>/<address>
func BalanceKey(asset string, addr notepool.Address) []byte {
	key := make([]byte, 0, len(asset)+1+len(addr))
	key = append(key, asset...)
	key = append(key, '/')
	return append(key, addr...)
}

// AllowanceKey is the key of the allowance of spender over owner's asset.
//
//   <asset>/<owner><spender>
func AllowanceKey(asset string, owner, spender notepool.Address) []byte {
	return append(BalanceKey(asset, owner), spender...)
}

// BalanceBucket stores the balances of all accounts.
type BalanceBucket struct {
	orm.Bucket
}

// NewBalanceBucket returns the bucket registered under /balances.
func NewBalanceBucket() BalanceBucket {
	return BalanceBucket{
		Bucket: orm.NewBucket("balance", orm.NewSimpleObj(nil, &Balance{})),
	}
}

// Amount returns the balance of addr, zero if none was ever stored.
func (b BalanceBucket) Amount(db notepool.ReadOnlyKVStore, asset string, addr notepool.Address) (coin.Amount, error) {
	obj, err := b.Get(db, BalanceKey(asset, addr))
	if err != nil || obj == nil {
		return coin.Amount{}, err
	}
	bal, ok := obj.Value().(*Balance)
	if !ok {
		return coin.Amount{}, errors.WithType(errors.ErrModel, obj.Value())
	}
	return bal.Amount, nil
}

// SetAmount stores the balance of addr.
func (b BalanceBucket) SetAmount(db notepool.KVStore, asset string, addr notepool.Address, amount coin.Amount) error {
	return b.Save(db, orm.NewSimpleObj(BalanceKey(asset, addr), &Balance{Amount: amount}))
}

// AllowanceBucket stores the allowances granted by owners to spenders.
type AllowanceBucket struct {
	orm.Bucket
}

// NewAllowanceBucket returns the bucket registered under /allowances.
func NewAllowanceBucket() AllowanceBucket {
	return AllowanceBucket{
		Bucket: orm.NewBucket("allowance", orm.NewSimpleObj(nil, &Allowance{})),
	}
}

// Amount returns the current allowance, zero if none was granted.
func (b AllowanceBucket) Amount(db notepool.ReadOnlyKVStore, asset string, owner, spender notepool.Address) (coin.Amount, error) {
	obj, err := b.Get(db, AllowanceKey(asset, owner, spender))
	if err != nil || obj == nil {
		return coin.Amount{}, err
	}
	a, ok := obj.Value().(*Allowance)
	if !ok {
		return coin.Amount{}, errors.WithType(errors.ErrModel, obj.Value())
	}
	return a.Amount, nil
}

// SetAmount stores the allowance.
func (b AllowanceBucket) SetAmount(db notepool.KVStore, asset string, owner, spender notepool.Address, amount coin.Amount) error {
	key := AllowanceKey(asset, owner, spender)
	return b.Save(db, orm.NewSimpleObj(key, &Allowance{Amount: amount}))
}
