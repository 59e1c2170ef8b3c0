package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/app"
	notepoold "github.com/tss-labs/notepool/cmd/notepoold/app"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/crypto"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/screening"
	"github.com/tss-labs/notepool/x/currency"
	"github.com/tss-labs/notepool/x/notes"
	"github.com/tss-labs/notepool/x/sigs"
	"github.com/tss-labs/notepool/x/vault"
)

// Screener checks a destination before funds are sent there.
type Screener interface {
	Screen(ctx context.Context, address string, family screening.Family) screening.Result
}

var _ Screener = (*screening.Screener)(nil)

// Client wraps a node connection to provide simple access to notes, the
// vault and the asset registry. All state is read from the ledger on
// demand, nothing is cached except the chain id.
type Client struct {
	conn     Conn
	screener Screener
	logger   log.Logger

	mu      sync.Mutex
	chainID string

	// signing serializes signed transactions so that two of them never
	// race for the same sequence.
	signing sync.Mutex
}

// NewClient wraps a client around an existing connection.
func NewClient(conn Conn) *Client {
	return &Client{
		conn:   conn,
		logger: log.NewNopLogger(),
	}
}

// WithScreener makes Redeem screen every destination first.
func (c *Client) WithScreener(s Screener) *Client {
	c.screener = s
	return c
}

// WithLogger sets the logger used for client side events.
func (c *Client) WithLogger(logger log.Logger) *Client {
	c.logger = logger.With("module", "client")
	return c
}

// ChainID returns the chain id of the connected node.
func (c *Client) ChainID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chainID != "" {
		return c.chainID, nil
	}
	status, err := c.conn.Status(ctx)
	if err != nil {
		return "", err
	}
	if status.ChainID == "" {
		return "", errors.Wrap(errors.ErrState, "node reports no chain id")
	}
	c.chainID = status.ChainID
	return c.chainID, nil
}

// Deposit commits amount of asset from the key owner into a new note.
// It first approves the pool to pull the funds and then commits, in two
// transactions. If the commit fails the allowance stays in place.
func (c *Client) Deposit(ctx context.Context, key *crypto.PrivateKey, asset string, amount coin.Amount) (*Deposit, error) {
	secret, err := notes.NewSecret()
	if err != nil {
		return nil, err
	}
	commitment := notes.Commitment(secret)
	depositor := Address(key)

	if err := c.Approve(ctx, key, asset, vault.PoolAddress, amount); err != nil {
		return nil, errors.Wrap(err, "approve pool")
	}
	res, err := c.signAndCommit(ctx, key, &notes.CommitMsg{
		Depositor:  depositor,
		Asset:      asset,
		Amount:     amount,
		Commitment: commitment,
	})
	if err != nil {
		return nil, errors.Wrap(err, "commit note")
	}
	c.logger.Info("note committed", "commitment", hex.EncodeToString(commitment), "asset", asset)
	return &Deposit{
		Secret:     secret,
		Commitment: commitment,
		NoteID:     res.Data,
		Asset:      asset,
		Amount:     amount,
	}, nil
}

// Redeem pays out the note behind secret to destination, a hex encoded
// ledger address. With a screener configured the destination is screened
// first: a malformed destination is never submitted and a warning is put
// to opts.Confirm if set. Every other result proceeds.
func (c *Client) Redeem(ctx context.Context, secret []byte, destination string, opts RedeemOptions) (*Redemption, error) {
	if len(secret) != notes.SecretLength {
		return nil, errors.Wrapf(errors.ErrInput, "secret must be %d bytes", notes.SecretLength)
	}
	var redemption Redemption
	if c.screener != nil {
		res := c.screener.Screen(ctx, destination, screening.FamilyHex)
		redemption.Screening = res
		switch res.Classification {
		case screening.FormatError:
			return &redemption, errors.Wrap(screening.ErrFormat, res.Detail)
		case screening.Warning:
			if opts.Confirm == nil {
				c.logger.Info("destination has no activity, proceeding", "detail", res.Detail)
				break
			}
			if !opts.Confirm(res) {
				return &redemption, errors.Wrap(ErrAborted, res.Detail)
			}
		case screening.Indeterminate:
			c.logger.Info("screening inconclusive, proceeding", "detail", res.Detail)
		}
	}

	dest, err := ParseHexAddress(destination)
	if err != nil {
		return &redemption, err
	}
	tx := notepoold.NewTx(&notes.RedeemMsg{Secret: secret, Destination: dest})
	res, err := c.commit(ctx, tx)
	if err != nil {
		return &redemption, err
	}
	var out notes.Outcome
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return &redemption, errors.Wrapf(errors.ErrState, "cannot decode outcome: %s", err)
	}
	redemption.Outcome = &out
	return &redemption, nil
}

// Approve lets spender pull up to amount of asset from the key owner.
func (c *Client) Approve(ctx context.Context, key *crypto.PrivateKey, asset string, spender notepool.Address, amount coin.Amount) error {
	_, err := c.signAndCommit(ctx, key, &vault.ApproveMsg{
		Owner:   Address(key),
		Asset:   asset,
		Spender: spender,
		Amount:  amount,
	})
	return err
}

// Transfer moves amount of asset from the key owner to another account.
func (c *Client) Transfer(ctx context.Context, key *crypto.PrivateKey, asset string, to notepool.Address, amount coin.Amount) error {
	_, err := c.signAndCommit(ctx, key, &vault.TransferMsg{
		Asset:  asset,
		From:   Address(key),
		To:     to,
		Amount: amount,
	})
	return err
}

// Mint creates new units for the vault owner. It returns the new balance
// of the owner.
func (c *Client) Mint(ctx context.Context, owner *crypto.PrivateKey, asset string, amount coin.Amount) (coin.Amount, error) {
	res, err := c.signAndCommit(ctx, owner, &vault.MintMsg{Asset: asset, Amount: amount})
	if err != nil {
		return coin.Amount{}, err
	}
	return coin.ParseAmount(string(res.Data))
}

// Burn destroys units of the vault owner. It returns what is left.
func (c *Client) Burn(ctx context.Context, owner *crypto.PrivateKey, asset string, amount coin.Amount) (coin.Amount, error) {
	res, err := c.signAndCommit(ctx, owner, &vault.BurnMsg{Asset: asset, Amount: amount})
	if err != nil {
		return coin.Amount{}, err
	}
	return coin.ParseAmount(string(res.Data))
}

// Note returns the note committed to commitment.
func (c *Client) Note(ctx context.Context, commitment []byte) (*notes.Note, error) {
	var note notes.Note
	err := c.queryOne(ctx, "/notes", commitment, &note)
	if errors.ErrNotFound.Is(err) {
		return nil, errors.Wrapf(notes.ErrUnknownNote, "%X", commitment)
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// NoteOf returns the note a secret would redeem, without revealing the
// secret to the node.
func (c *Client) NoteOf(ctx context.Context, secret []byte) (*notes.Note, error) {
	return c.Note(ctx, notes.Commitment(secret))
}

// NotesBy returns all notes committed by the depositor.
func (c *Client) NotesBy(ctx context.Context, depositor notepool.Address) ([]*notes.Note, error) {
	res, err := c.query(ctx, "/notes/depositor", depositor)
	if err != nil {
		return nil, err
	}
	var values app.ResultSet
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, err
	}
	found := make([]*notes.Note, 0, len(values.Results))
	for _, bz := range values.Results {
		var n notes.Note
		if err := n.Unmarshal(bz); err != nil {
			return nil, errors.Wrap(errors.ErrState, err.Error())
		}
		found = append(found, &n)
	}
	return found, nil
}

// Balance returns how much of asset addr holds. Unknown accounts hold zero.
func (c *Client) Balance(ctx context.Context, asset string, addr notepool.Address) (coin.Amount, error) {
	var b vault.Balance
	if err := c.queryOptional(ctx, "/balances", vault.BalanceKey(asset, addr), &b); err != nil {
		return coin.Amount{}, err
	}
	return b.Amount, nil
}

// Allowance returns how much of the owner's asset spender may still pull.
func (c *Client) Allowance(ctx context.Context, asset string, owner, spender notepool.Address) (coin.Amount, error) {
	var a vault.Allowance
	if err := c.queryOptional(ctx, "/allowances", vault.AllowanceKey(asset, owner, spender), &a); err != nil {
		return coin.Amount{}, err
	}
	return a.Amount, nil
}

// Escrowed returns the total of asset locked behind open notes.
func (c *Client) Escrowed(ctx context.Context, asset string) (coin.Amount, error) {
	var b vault.Balance
	if err := c.queryOptional(ctx, "/escrows", []byte(asset), &b); err != nil {
		return coin.Amount{}, err
	}
	return b.Amount, nil
}

// Asset returns the registered description of an asset.
func (c *Client) Asset(ctx context.Context, symbol string) (*currency.Asset, error) {
	var a currency.Asset
	if err := c.queryOne(ctx, "/assets", []byte(symbol), &a); err != nil {
		return nil, errors.Wrapf(err, "asset %s", symbol)
	}
	return &a, nil
}

// Sequence returns the next sequence the address must sign with.
func (c *Client) Sequence(ctx context.Context, addr notepool.Address) (int64, error) {
	var user sigs.UserData
	if err := c.queryOptional(ctx, "/auth", addr, &user); err != nil {
		return 0, err
	}
	return user.Sequence, nil
}

// signAndCommit signs msg with key at its current sequence and waits for
// the transaction to be committed.
func (c *Client) signAndCommit(ctx context.Context, key *crypto.PrivateKey, msg notepool.Msg) (*notepool.DeliverResult, error) {
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	c.signing.Lock()
	defer c.signing.Unlock()

	seq, err := c.Sequence(ctx, Address(key))
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	tx := notepoold.NewTx(msg)
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	return c.commit(ctx, tx)
}

func (c *Client) commit(ctx context.Context, tx *notepoold.Tx) (*notepool.DeliverResult, error) {
	bz, err := tx.Marshal()
	if err != nil {
		return nil, err
	}
	res, err := c.conn.BroadcastTxCommit(ctx, bz)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	c.logger.Debug("tx committed", "path", tx.Msg.Path(), "height", res.Height, "id", res.ID.String())
	return res.Result, nil
}

func (c *Client) query(ctx context.Context, path string, data []byte) (ResponseQuery, error) {
	res, err := c.conn.AbciQuery(ctx, path, data)
	if err != nil {
		return res, err
	}
	if res.Code != errors.SuccessABCICode {
		return res, errors.ABCIError(res.Code, res.Log)
	}
	return res, nil
}

func (c *Client) queryOne(ctx context.Context, path string, data []byte, dst notepool.Persistent) error {
	res, err := c.query(ctx, path, data)
	if err != nil {
		return err
	}
	return app.UnmarshalOneResult(res.Value, dst)
}

// queryOptional is queryOne that leaves dst untouched if nothing is found.
func (c *Client) queryOptional(ctx context.Context, path string, data []byte, dst notepool.Persistent) error {
	err := c.queryOne(ctx, path, data, dst)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}

// ParseHexAddress reads a ledger address written as hex, with or without a
// 0x prefix.
func ParseHexAddress(s string) (notepool.Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	addr, err := notepool.ParseAddress("hex:" + s)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
