package vault

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/x"
	"github.com/tss-labs/notepool/x/currency"
)

// Receipt describes a successful Lock.
type Receipt struct {
	Asset  string
	Amount coin.Amount
	From   notepool.Address
	// Escrowed is the escrow total of the asset after the lock.
	Escrowed coin.Amount
}

// MintCapability grants the right to mint and burn. Only Authorize creates
// a usable one.
type MintCapability struct {
	owner notepool.Address
}

// Authorize returns a MintCapability if the configured owner authorized the
// current transaction.
func Authorize(ctx notepool.Context, auth x.Authenticator, conf *Configuration) (*MintCapability, error) {
	if conf == nil || len(conf.Owner) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "vault has no owner")
	}
	if !auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "vault owner signature missing")
	}
	return &MintCapability{owner: conf.Owner}, nil
}

// Owner returns the account the capability acts for.
func (c *MintCapability) Owner() notepool.Address {
	return c.owner
}

// Controller holds all balance moving logic of the vault.
type Controller struct {
	balances   BalanceBucket
	allowances AllowanceBucket
	assets     *currency.AssetBucket
}

// NewController returns a controller working on the default buckets.
func NewController() Controller {
	return Controller{
		balances:   NewBalanceBucket(),
		allowances: NewAllowanceBucket(),
		assets:     currency.NewAssetBucket(),
	}
}

// Balance returns the balance of addr in asset.
func (c Controller) Balance(db notepool.ReadOnlyKVStore, asset string, addr notepool.Address) (coin.Amount, error) {
	return c.balances.Amount(db, asset, addr)
}

// Allowance returns how much spender may still pull from owner.
func (c Controller) Allowance(db notepool.ReadOnlyKVStore, asset string, owner, spender notepool.Address) (coin.Amount, error) {
	return c.allowances.Amount(db, asset, owner, spender)
}

// Escrowed returns the total amount of asset held in escrow.
func (c Controller) Escrowed(db notepool.ReadOnlyKVStore, asset string) (coin.Amount, error) {
	return c.balances.Amount(db, asset, EscrowAddress(asset))
}

// Approve sets the allowance of spender over owner's asset, replacing any
// previous value.
func (c Controller) Approve(db notepool.KVStore, owner notepool.Address, asset string, spender notepool.Address, amount coin.Amount) error {
	if _, err := c.assets.MustGet(db, asset); err != nil {
		return err
	}
	return c.allowances.SetAmount(db, asset, owner, spender, amount)
}

// Transfer moves amount of asset between two accounts.
func (c Controller) Transfer(db notepool.KVStore, asset string, from, to notepool.Address, amount coin.Amount) error {
	if _, err := c.assets.MustGet(db, asset); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "transfer must be positive")
	}
	if err := c.CheckRecipient(db, to); err != nil {
		return err
	}
	_, err := c.move(db, asset, from, to, amount)
	return err
}

// Lock pulls amount of asset from the depositor into escrow. The depositor
// must have approved PoolAddress for at least amount.
func (c Controller) Lock(db notepool.KVStore, asset string, amount coin.Amount, from notepool.Address) (*Receipt, error) {
	if _, err := c.assets.MustGet(db, asset); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errors.Wrap(errors.ErrAmount, "lock must be positive")
	}

	allowance, err := c.allowances.Amount(db, asset, from, PoolAddress)
	if err != nil {
		return nil, err
	}
	if !allowance.IsGTE(amount) {
		return nil, errors.Wrapf(ErrInsufficientAllowance, "approved %s, need %s", allowance, amount)
	}
	balance, err := c.balances.Amount(db, asset, from)
	if err != nil {
		return nil, err
	}
	if !balance.IsGTE(amount) {
		return nil, errors.Wrapf(ErrInsufficientBalance, "have %s, need %s", balance, amount)
	}

	left, err := allowance.Sub(amount)
	if err != nil {
		return nil, err
	}
	if err := c.allowances.SetAmount(db, asset, from, PoolAddress, left); err != nil {
		return nil, err
	}
	escrowed, err := c.move(db, asset, from, EscrowAddress(asset), amount)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		Asset:    asset,
		Amount:   amount,
		From:     from,
		Escrowed: escrowed,
	}, nil
}

// Release pays amount of asset out of escrow to the destination. Escrow
// smaller than amount means the ledger lost track of its funds and is
// reported as an error.
func (c Controller) Release(ctx notepool.Context, db notepool.KVStore, asset string, amount coin.Amount, to notepool.Address) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "release must be positive")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := c.CheckRecipient(db, to); err != nil {
		return err
	}
	escrow := EscrowAddress(asset)
	escrowed, err := c.balances.Amount(db, asset, escrow)
	if err != nil {
		return err
	}
	if !escrowed.IsGTE(amount) {
		notepool.GetLogger(ctx).Error("escrow cannot cover release",
			"asset", asset, "escrowed", escrowed.String(), "amount", amount.String())
		return errors.Wrapf(ErrInsufficientEscrow, "escrowed %s, need %s", escrowed, amount)
	}
	_, err = c.move(db, asset, escrow, to, amount)
	return err
}

// Mint credits the capability owner with amount and returns the new balance.
func (c Controller) Mint(db notepool.KVStore, capability *MintCapability, asset string, amount coin.Amount) (coin.Amount, error) {
	owner, err := c.capOwner(db, capability, asset, amount)
	if err != nil {
		return coin.Amount{}, err
	}
	balance, err := c.balances.Amount(db, asset, owner)
	if err != nil {
		return coin.Amount{}, err
	}
	total, err := balance.Add(amount)
	if err != nil {
		return coin.Amount{}, err
	}
	if err := c.balances.SetAmount(db, asset, owner, total); err != nil {
		return coin.Amount{}, err
	}
	return total, nil
}

// Burn debits the capability owner and returns the new balance.
func (c Controller) Burn(db notepool.KVStore, capability *MintCapability, asset string, amount coin.Amount) (coin.Amount, error) {
	owner, err := c.capOwner(db, capability, asset, amount)
	if err != nil {
		return coin.Amount{}, err
	}
	balance, err := c.balances.Amount(db, asset, owner)
	if err != nil {
		return coin.Amount{}, err
	}
	if !balance.IsGTE(amount) {
		return coin.Amount{}, errors.Wrapf(ErrInsufficientBalance, "have %s, burn %s", balance, amount)
	}
	left, err := balance.Sub(amount)
	if err != nil {
		return coin.Amount{}, err
	}
	if err := c.balances.SetAmount(db, asset, owner, left); err != nil {
		return coin.Amount{}, err
	}
	return left, nil
}

// Credit adds amount to the balance of addr. It is used by the genesis
// initializer only.
func (c Controller) Credit(db notepool.KVStore, asset string, addr notepool.Address, amount coin.Amount) error {
	if _, err := c.assets.MustGet(db, asset); err != nil {
		return err
	}
	if err := c.CheckRecipient(db, addr); err != nil {
		return err
	}
	balance, err := c.balances.Amount(db, asset, addr)
	if err != nil {
		return err
	}
	total, err := balance.Add(amount)
	if err != nil {
		return err
	}
	return c.balances.SetAmount(db, asset, addr, total)
}

// CheckRecipient fails with ErrInput if addr is one of the accounts of the
// vault itself. Only Lock may credit an escrow account, and nothing can
// spend from the pool.
func (c Controller) CheckRecipient(db notepool.ReadOnlyKVStore, addr notepool.Address) error {
	if addr.Equals(PoolAddress) {
		return errors.Wrap(errors.ErrInput, "recipient is the vault pool")
	}
	symbols, err := c.assets.Symbols(db)
	if err != nil {
		return err
	}
	for _, s := range symbols {
		if addr.Equals(EscrowAddress(s)) {
			return errors.Wrapf(errors.ErrInput, "recipient is the %s escrow", s)
		}
	}
	return nil
}

func (c Controller) capOwner(db notepool.KVStore, capability *MintCapability, asset string, amount coin.Amount) (notepool.Address, error) {
	if capability == nil || len(capability.owner) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint capability required")
	}
	if _, err := c.assets.MustGet(db, asset); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return capability.owner, nil
}

// move transfers funds and returns the new balance of the recipient.
func (c Controller) move(db notepool.KVStore, asset string, from, to notepool.Address, amount coin.Amount) (coin.Amount, error) {
	sender, err := c.balances.Amount(db, asset, from)
	if err != nil {
		return coin.Amount{}, err
	}
	left, err := sender.Sub(amount)
	if err != nil {
		return coin.Amount{}, errors.Wrapf(ErrInsufficientBalance, "have %s, need %s", sender, amount)
	}
	if from.Equals(to) {
		return sender, nil
	}
	recipient, err := c.balances.Amount(db, asset, to)
	if err != nil {
		return coin.Amount{}, err
	}
	total, err := recipient.Add(amount)
	if err != nil {
		return coin.Amount{}, err
	}
	if err := c.balances.SetAmount(db, asset, from, left); err != nil {
		return coin.Amount{}, err
	}
	if err := c.balances.SetAmount(db, asset, to, total); err != nil {
		return coin.Amount{}, err
	}
	return total, nil
}
