package notepoold

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/app"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/crypto"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/x/notes"
	"github.com/tss-labs/notepool/x/sigs"
	"github.com/tss-labs/notepool/x/vault"
)

const testChainID = "notepool-test"

type testChain struct {
	t      testing.TB
	app    abci.Application
	height int64
	seqs   map[string]int64
}

func newTestChain(t testing.TB, owner notepool.Address) *testChain {
	t.Helper()
	application, err := GenerateApp("", log.NewNopLogger(), false)
	require.NoError(t, err)

	state, err := genesisFor(owner)
	require.NoError(t, err)
	application.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: state})
	application.Commit()
	return &testChain{t: t, app: application, seqs: make(map[string]int64)}
}

// sign encodes msg into a transaction signed by all keys.
func (c *testChain) sign(msg notepool.Msg, keys ...*crypto.PrivateKey) []byte {
	c.t.Helper()
	tx := NewTx(msg)
	for _, k := range keys {
		addr := k.PublicKey().Address().String()
		sig, err := sigs.SignTx(k, tx, testChainID, c.seqs[addr])
		require.NoError(c.t, err)
		tx.Signatures = append(tx.Signatures, sig)
		c.seqs[addr]++
	}
	bz, err := tx.Marshal()
	require.NoError(c.t, err)
	return bz
}

// block delivers all txs in one block and commits it.
func (c *testChain) block(txs ...[]byte) []abci.ResponseDeliverTx {
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: testChainID,
		Height:  c.height,
		Time:    time.Now().UTC(),
	}})
	res := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		res[i] = c.app.DeliverTx(tx)
	}
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return res
}

func (c *testChain) query(path string, data []byte, dst notepool.Persistent) error {
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return errors.ABCIError(res.Code, res.Log)
	}
	return app.UnmarshalOneResult(res.Value, dst)
}

func deliverErr(res abci.ResponseDeliverTx) error {
	_, err := notepool.ParseDeliverOrError(res)
	return err
}

func TestNoteLifecycle(t *testing.T) {
	Convey("Given a chain with a funded owner", t, func() {
		owner := crypto.GenPrivKeyEd25519()
		ownerAddr := owner.PublicKey().Address()
		chain := newTestChain(t, ownerAddr)
		amount := coin.NewAmount(5000)

		var bal vault.Balance
		So(chain.query("/balances", vault.BalanceKey("USDC", ownerAddr), &bal), ShouldBeNil)
		So(bal.Amount.String(), ShouldEqual, "1000000000000")

		secret, err := notes.NewSecret()
		So(err, ShouldBeNil)
		commitment := notes.Commitment(secret)

		Convey("a commit without allowance is rejected", func() {
			res := chain.block(chain.sign(&notes.CommitMsg{
				Depositor:  ownerAddr,
				Asset:      "USDC",
				Amount:     amount,
				Commitment: commitment,
			}, owner))
			So(vault.ErrInsufficientAllowance.Is(deliverErr(res[0])), ShouldBeTrue)

			var note notes.Note
			So(errors.ErrNotFound.Is(chain.query("/notes", commitment, &note)), ShouldBeTrue)
		})

		Convey("after approve and commit the note is open", func() {
			res := chain.block(
				chain.sign(&vault.ApproveMsg{Owner: ownerAddr, Asset: "USDC", Spender: vault.PoolAddress, Amount: amount}, owner),
				chain.sign(&notes.CommitMsg{Depositor: ownerAddr, Asset: "USDC", Amount: amount, Commitment: commitment}, owner),
			)
			So(deliverErr(res[0]), ShouldBeNil)
			So(deliverErr(res[1]), ShouldBeNil)

			var note notes.Note
			So(chain.query("/notes", commitment, &note), ShouldBeNil)
			So(note.Status, ShouldEqual, notes.StatusOpen)
			So(note.Amount.Equals(amount), ShouldBeTrue)

			var escrow vault.Balance
			So(chain.query("/escrows", []byte("USDC"), &escrow), ShouldBeNil)
			So(escrow.Amount.Equals(amount), ShouldBeTrue)

			Convey("the same commitment cannot be used twice", func() {
				res := chain.block(chain.sign(&notes.CommitMsg{
					Depositor: ownerAddr, Asset: "USDC", Amount: amount, Commitment: commitment,
				}, owner))
				So(notes.ErrDuplicateCommitment.Is(deliverErr(res[0])), ShouldBeTrue)
			})

			Convey("racing redeems pay out exactly once", func() {
				alice := crypto.GenPrivKeyEd25519().PublicKey().Address()
				bob := crypto.GenPrivKeyEd25519().PublicKey().Address()
				res := chain.block(
					chain.sign(&notes.RedeemMsg{Secret: secret, Destination: alice}),
					chain.sign(&notes.RedeemMsg{Secret: secret, Destination: bob}),
				)
				So(deliverErr(res[0]), ShouldBeNil)
				So(notes.ErrAlreadyRedeemed.Is(deliverErr(res[1])), ShouldBeTrue)

				var out notes.Outcome
				So(json.Unmarshal(res[0].Data, &out), ShouldBeNil)
				So(out.Asset, ShouldEqual, "USDC")
				So(out.Amount.Equals(amount), ShouldBeTrue)

				var paid vault.Balance
				So(chain.query("/balances", vault.BalanceKey("USDC", alice), &paid), ShouldBeNil)
				So(paid.Amount.Equals(amount), ShouldBeTrue)
				So(errors.ErrNotFound.Is(chain.query("/balances", vault.BalanceKey("USDC", bob), &paid)), ShouldBeTrue)

				var escrow vault.Balance
				So(chain.query("/escrows", []byte("USDC"), &escrow), ShouldBeNil)
				So(escrow.Amount.IsZero(), ShouldBeTrue)
			})

			Convey("a wrong secret leaves the note open", func() {
				other, err := notes.NewSecret()
				So(err, ShouldBeNil)
				res := chain.block(chain.sign(&notes.RedeemMsg{Secret: other, Destination: ownerAddr}))
				So(notes.ErrUnknownNote.Is(deliverErr(res[0])), ShouldBeTrue)

				var note notes.Note
				So(chain.query("/notes", commitment, &note), ShouldBeNil)
				So(note.Status, ShouldEqual, notes.StatusOpen)
			})
		})
	})
}

func TestSignatureReplay(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	ownerAddr := owner.PublicKey().Address()
	chain := newTestChain(t, ownerAddr)

	mint := chain.sign(&vault.MintMsg{Asset: "TSS", Amount: coin.NewAmount(1)}, owner)
	res := chain.block(mint)
	require.NoError(t, deliverErr(res[0]))

	res = chain.block(mint)
	err := deliverErr(res[0])
	require.True(t, sigs.ErrInvalidSequence.Is(err), "unexpected error: %+v", err)
}

func TestOnlyOwnerMints(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519()
	stranger := crypto.GenPrivKeyEd25519()
	chain := newTestChain(t, owner.PublicKey().Address())

	res := chain.block(chain.sign(&vault.MintMsg{Asset: "TSS", Amount: coin.NewAmount(1)}, stranger))
	err := deliverErr(res[0])
	require.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)
}

func TestTxRoundTrip(t *testing.T) {
	secret, err := notes.NewSecret()
	require.NoError(t, err)
	dest := crypto.GenPrivKeyEd25519().PublicKey().Address()

	bz, err := NewTx(&notes.RedeemMsg{Secret: secret, Destination: dest}).Marshal()
	require.NoError(t, err)

	tx, err := TxDecoder(bz)
	require.NoError(t, err)
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	redeem, ok := msg.(*notes.RedeemMsg)
	require.True(t, ok, "unexpected message type %T", msg)
	require.Equal(t, secret, redeem.Secret)
	require.Equal(t, dest, redeem.Destination)

	_, err = TxDecoder(nil)
	require.True(t, errors.ErrEmpty.Is(err))
	_, err = TxDecoder([]byte("garbage"))
	require.True(t, errors.ErrInput.Is(err))
}
