package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/notetest"
	"github.com/tss-labs/notepool/orm"
	"github.com/tss-labs/notepool/x/vault"
)

type routes map[string]notepool.Handler

func (r routes) Handle(path string, h notepool.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	depositor := notetest.NewCondition()
	stranger := notetest.NewCondition()
	recipient := notetest.NewCondition().Address()

	openSecret := bytes.Repeat([]byte{1}, SecretLength)
	spentSecret := bytes.Repeat([]byte{2}, SecretLength)
	newSecret := bytes.Repeat([]byte{3}, SecretLength)

	cases := map[string]struct {
		signers        []notepool.Condition
		msg            notepool.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
	}{
		"commit": {
			signers: []notepool.Condition{depositor},
			msg:     &CommitMsg{Depositor: depositor.Address(), Asset: "USDC", Amount: amount(5), Commitment: Commitment(newSecret)},
		},
		"commit needs the depositor signature": {
			signers:        []notepool.Condition{stranger},
			msg:            &CommitMsg{Depositor: depositor.Address(), Asset: "USDC", Amount: amount(5), Commitment: Commitment(newSecret)},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"commit reusing a commitment": {
			signers:        []notepool.Condition{depositor},
			msg:            &CommitMsg{Depositor: depositor.Address(), Asset: "USDC", Amount: amount(5), Commitment: Commitment(spentSecret)},
			wantCheckErr:   ErrDuplicateCommitment,
			wantDeliverErr: ErrDuplicateCommitment,
		},
		"commit zero": {
			signers:        []notepool.Condition{depositor},
			msg:            &CommitMsg{Depositor: depositor.Address(), Asset: "USDC", Commitment: Commitment(newSecret)},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
		},
		"redeem without any signature": {
			msg: &RedeemMsg{Secret: openSecret, Destination: recipient},
		},
		"redeem spent note": {
			msg:            &RedeemMsg{Secret: spentSecret, Destination: recipient},
			wantCheckErr:   ErrAlreadyRedeemed,
			wantDeliverErr: ErrAlreadyRedeemed,
		},
		"redeem unknown note": {
			msg:            &RedeemMsg{Secret: newSecret, Destination: recipient},
			wantCheckErr:   ErrUnknownNote,
			wantDeliverErr: ErrUnknownNote,
		},
		"redeem to the vault pool": {
			msg:            &RedeemMsg{Secret: openSecret, Destination: vault.PoolAddress},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"redeem to the escrow account": {
			msg:            &RedeemMsg{Secret: openSecret, Destination: vault.EscrowAddress("USDC")},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"redeem with short secret": {
			msg:            &RedeemMsg{Secret: newSecret[:8], Destination: recipient},
			wantCheckErr:   errors.ErrMsg,
			wantDeliverErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := fundedStore(t, depositor.Address(), 100)
			control := vault.NewController()
			registry := NewRegistry(control)
			_, err := registry.Commit(ctx, db, Commitment(openSecret), "USDC", amount(10), depositor.Address())
			require.NoError(t, err)
			_, err = registry.Commit(ctx, db, Commitment(spentSecret), "USDC", amount(10), depositor.Address())
			require.NoError(t, err)
			_, err = NewVerifier(registry).Redeem(ctx, db, spentSecret, recipient)
			require.NoError(t, err)

			r := routes{}
			RegisterRoutes(r, &notetest.Auth{Signers: tc.signers}, control)
			h := r[tc.msg.Path()]
			require.NotNil(t, h)
			tx := &notetest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			_, err = h.Check(ctx, cache, tx)
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
			require.Len(t, res.Tags, 1)
			assert.Equal(t, "USDC", string(res.Tags[0].Value))

			switch msg := tc.msg.(type) {
			case *CommitMsg:
				assert.Equal(t, int64(3), orm.DecodeSequence(res.Data))
			case *RedeemMsg:
				var out Outcome
				require.NoError(t, json.Unmarshal(res.Data, &out))
				assert.Equal(t, amount(10), out.Amount)
				assert.Equal(t, msg.Destination, out.Destination)
			}
			require.NoError(t, registry.CheckInvariant(db, "USDC"))
		})
	}
}

func TestQueryNotes(t *testing.T) {
	ctx := context.Background()
	depositor := notetest.NewCondition().Address()
	db := fundedStore(t, depositor, 10)
	registry := NewRegistry(vault.NewController())
	commitment := Commitment([]byte("query me"))
	_, err := registry.Commit(ctx, db, commitment, "USDC", amount(10), depositor)
	require.NoError(t, err)

	qr := notepool.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/notes").Query(db, notepool.KeyQueryMod, commitment)
	require.NoError(t, err)
	require.Len(t, res, 1)

	var note Note
	require.NoError(t, note.Unmarshal(res[0].Value))
	assert.Equal(t, commitment, note.Commitment)

	res, err = qr.Handler("/notes/depositor").Query(db, notepool.KeyQueryMod, depositor)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}
