package vault

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/notetest"
	"github.com/tss-labs/notepool/x/currency"
	"github.com/tss-labs/notepool/store"
)

type routes map[string]notepool.Handler

func (r routes) Handle(path string, h notepool.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	owner := notetest.NewCondition()
	alice := notetest.NewCondition()
	bob := notetest.NewCondition()

	cases := map[string]struct {
		signer         notepool.Condition
		msg            notepool.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantData       string
	}{
		"owner mints": {
			signer:   owner,
			msg:      &MintMsg{Asset: "USDC", Amount: amount(5)},
			wantData: "105",
		},
		"stranger cannot mint": {
			signer:         alice,
			msg:            &MintMsg{Asset: "USDC", Amount: amount(5)},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"owner burns": {
			signer:   owner,
			msg:      &BurnMsg{Asset: "USDC", Amount: amount(30)},
			wantData: "70",
		},
		"burn more than owned": {
			signer:         owner,
			msg:            &BurnMsg{Asset: "USDC", Amount: amount(101)},
			wantDeliverErr: ErrInsufficientBalance,
		},
		"zero mint": {
			signer:         owner,
			msg:            &MintMsg{Asset: "USDC", Amount: amount(0)},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
		},
		"alice approves the pool": {
			signer: alice,
			msg:    &ApproveMsg{Owner: alice.Address(), Asset: "USDC", Spender: PoolAddress, Amount: amount(9)},
		},
		"bob cannot approve for alice": {
			signer:         bob,
			msg:            &ApproveMsg{Owner: alice.Address(), Asset: "USDC", Spender: PoolAddress, Amount: amount(9)},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"approve unknown asset": {
			signer:         alice,
			msg:            &ApproveMsg{Owner: alice.Address(), Asset: "DAI", Spender: PoolAddress, Amount: amount(9)},
			wantDeliverErr: errors.ErrNotFound,
		},
		"alice pays bob": {
			signer: alice,
			msg:    &TransferMsg{Asset: "USDC", From: alice.Address(), To: bob.Address(), Amount: amount(20)},
		},
		"bob cannot spend alice funds": {
			signer:         bob,
			msg:            &TransferMsg{Asset: "USDC", From: alice.Address(), To: bob.Address(), Amount: amount(20)},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newVault(t, owner.Address())
			c := NewController()
			require.NoError(t, c.Credit(db, "USDC", owner.Address(), amount(100)))
			require.NoError(t, c.Credit(db, "USDC", alice.Address(), amount(50)))

			r := routes{}
			auth := &notetest.Auth{Signer: tc.signer}
			RegisterRoutes(r, auth, c)
			msg := tc.msg
			h := r[msg.Path()]
			require.NotNil(t, h)

			tx := &notetest.Tx{Msg: msg}
			ctx := context.Background()

			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			cache.Discard()
			if tc.wantCheckErr != nil {
				assert.True(t, tc.wantCheckErr.Is(err), "got %v", err)
			} else {
				require.NoError(t, err)
			}

			res, err := h.Deliver(ctx, db, tx)
			if tc.wantDeliverErr != nil {
				assert.True(t, tc.wantDeliverErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			if tc.wantData != "" {
				assert.Equal(t, tc.wantData, string(res.Data))
			}
			require.NotEmpty(t, res.Tags)
			assert.Equal(t, TagAsset, string(res.Tags[0].Key))
		})
	}
}

func TestQueries(t *testing.T) {
	alice := notetest.NewCondition().Address()
	db := newVault(t, alice)
	c := NewController()
	require.NoError(t, c.Credit(db, "USDC", alice, amount(50)))
	require.NoError(t, c.Approve(db, alice, "USDC", PoolAddress, amount(20)))
	_, err := c.Lock(db, "USDC", amount(20), alice)
	require.NoError(t, err)

	qr := notepool.NewQueryRouter()
	RegisterQuery(qr)

	res, err := qr.Handler("/escrows").Query(db, notepool.KeyQueryMod, []byte("USDC"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	var bal Balance
	require.NoError(t, bal.Unmarshal(res[0].Value))
	assert.Equal(t, amount(20), bal.Amount)

	res, err = qr.Handler("/balances").Query(db, notepool.KeyQueryMod, BalanceKey("USDC", alice))
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.NoError(t, bal.Unmarshal(res[0].Value))
	assert.Equal(t, amount(30), bal.Amount)

	res, err = qr.Handler("/allowances").Query(db, notepool.KeyQueryMod, AllowanceKey("USDC", alice, PoolAddress))
	require.NoError(t, err)
	require.Len(t, res, 1)
	var allowance Allowance
	require.NoError(t, allowance.Unmarshal(res[0].Value))
	assert.True(t, allowance.Amount.IsZero())

	_, err = qr.Handler("/escrows").Query(db, notepool.PrefixQueryMod, []byte("USDC"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestGenesis(t *testing.T) {
	owner := notetest.NewCondition().Address()
	holder := notetest.NewCondition().Address()
	raw := `{
		"conf": {"vault": {"owner": "` + owner.String() + `"}},
		"currencies": [{"symbol": "TSS", "name": "TSS Token", "decimals": 18}],
		"vault": {"balances": [
			{"address": "` + holder.String() + `", "asset": "TSS", "amount": "1000000000000000000000"}
		]}
	}`
	var opts notepool.Options
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	var assets currency.Initializer
	require.NoError(t, assets.FromGenesis(opts, db))
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	got, err := Owner(db)
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	bal, err := NewController().Balance(db, "TSS", holder)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000", bal.String())
}
