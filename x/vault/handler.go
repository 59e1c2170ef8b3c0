package vault

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/x"
)

// TagAsset is the tag key every vault result carries.
const TagAsset = "asset"

// RegisterQuery will register the balances, allowances and escrows.
func RegisterQuery(qr notepool.QueryRouter) {
	NewBalanceBucket().Register("balances", qr)
	NewAllowanceBucket().Register("allowances", qr)
	qr.Register("/escrows", escrowQuery{balances: NewBalanceBucket()})
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r notepool.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathApproveMsg, ApproveHandler{auth: auth, control: control})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, control: control})
	r.Handle(pathMintMsg, MintHandler{auth: auth, control: control})
	r.Handle(pathBurnMsg, BurnHandler{auth: auth, control: control})
}

// ApproveHandler sets allowances. Only the owner may approve.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ notepool.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &notepool.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Approve(db, msg.Owner, msg.Asset, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	res := &notepool.DeliverResult{}
	res.Tag(TagAsset, msg.Asset)
	return res, nil
}

func (h ApproveHandler) validate(ctx notepool.Context, tx notepool.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := notepool.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

// TransferHandler moves funds on behalf of the sender.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ notepool.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &notepool.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Asset, msg.From, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	res := &notepool.DeliverResult{}
	res.Tag(TagAsset, msg.Asset)
	return res, nil
}

func (h TransferHandler) validate(ctx notepool.Context, tx notepool.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := notepool.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.From) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}
	return &msg, nil
}

// MintHandler credits the vault owner.
type MintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ notepool.Handler = MintHandler{}

func (h MintHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	var msg MintMsg
	if _, err := authorizeMsg(ctx, db, tx, h.auth, &msg); err != nil {
		return nil, err
	}
	return &notepool.CheckResult{}, nil
}

// Deliver returns the new owner balance as result data.
func (h MintHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	var msg MintMsg
	capability, err := authorizeMsg(ctx, db, tx, h.auth, &msg)
	if err != nil {
		return nil, err
	}
	total, err := h.control.Mint(db, capability, msg.Asset, msg.Amount)
	if err != nil {
		return nil, err
	}
	res := &notepool.DeliverResult{Data: []byte(total.String())}
	res.Tag(TagAsset, msg.Asset)
	return res, nil
}

// BurnHandler debits the vault owner.
type BurnHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ notepool.Handler = BurnHandler{}

func (h BurnHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	var msg BurnMsg
	if _, err := authorizeMsg(ctx, db, tx, h.auth, &msg); err != nil {
		return nil, err
	}
	return &notepool.CheckResult{}, nil
}

// Deliver returns the new owner balance as result data.
func (h BurnHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	var msg BurnMsg
	capability, err := authorizeMsg(ctx, db, tx, h.auth, &msg)
	if err != nil {
		return nil, err
	}
	left, err := h.control.Burn(db, capability, msg.Asset, msg.Amount)
	if err != nil {
		return nil, err
	}
	res := &notepool.DeliverResult{Data: []byte(left.String())}
	res.Tag(TagAsset, msg.Asset)
	return res, nil
}

// authorizeMsg loads the message into dst and returns the mint capability
// of the vault owner.
func authorizeMsg(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, auth x.Authenticator, dst interface{}) (*MintCapability, error) {
	if err := notepool.LoadMsg(tx, dst); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return Authorize(ctx, auth, conf)
}

// escrowQuery answers /escrows queries keyed by asset symbol with the
// balance of that asset's escrow account.
type escrowQuery struct {
	balances BalanceBucket
}

var _ notepool.QueryHandler = escrowQuery{}

func (q escrowQuery) Query(db notepool.ReadOnlyKVStore, mod string, data []byte) ([]notepool.Model, error) {
	if mod != notepool.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	asset := string(data)
	return q.balances.Query(db, notepool.KeyQueryMod, BalanceKey(asset, EscrowAddress(asset)))
}
