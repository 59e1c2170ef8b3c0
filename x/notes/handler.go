package notes

import (
	"encoding/hex"
	"encoding/json"

	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/x"
)

// TagAsset is the tag key carrying the asset of a commit or redeem.
const TagAsset = "asset"

// RegisterQuery will register this bucket as "/notes"
func RegisterQuery(qr notepool.QueryRouter) {
	NewNoteBucket().Register("notes", qr)
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r notepool.Registry, auth x.Authenticator, v Vault) {
	registry := NewRegistry(v)
	r.Handle(pathCommitMsg, CommitHandler{auth: auth, registry: registry})
	r.Handle(pathRedeemMsg, RedeemHandler{verifier: NewVerifier(registry)})
}

// CommitHandler records new notes. The depositor must sign.
type CommitHandler struct {
	auth     x.Authenticator
	registry Registry
}

var _ notepool.Handler = CommitHandler{}

func (h CommitHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &notepool.CheckResult{}, nil
}

// Deliver returns the note id as result data.
func (h CommitHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.registry.Commit(ctx, db, msg.Commitment, msg.Asset, msg.Amount, msg.Depositor)
	if err != nil {
		return nil, err
	}
	notepool.GetLogger(ctx).Info("note committed",
		"commitment", hex.EncodeToString(msg.Commitment), "asset", msg.Asset)
	res := &notepool.DeliverResult{Data: id}
	res.Tag(TagAsset, msg.Asset)
	return res, nil
}

func (h CommitHandler) validate(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*CommitMsg, error) {
	var msg CommitMsg
	if err := notepool.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Depositor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}
	switch exists, err := h.registry.bucket.Has(db, msg.Commitment); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrap(ErrDuplicateCommitment, "commitment in use")
	}
	return &msg, nil
}

// RedeemHandler pays out notes. Knowing the secret is the only
// authorization, no signature is needed.
type RedeemHandler struct {
	verifier Verifier
}

var _ notepool.Handler = RedeemHandler{}

// Check verifies the note can be redeemed without changing any state.
func (h RedeemHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	var msg RedeemMsg
	if err := notepool.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	note, err := h.verifier.registry.Lookup(db, Commitment(msg.Secret))
	if err != nil {
		return nil, err
	}
	if note.Status != StatusOpen {
		return nil, errors.Wrapf(ErrAlreadyRedeemed, "note %X", note.ID)
	}
	if err := h.verifier.registry.vault.CheckRecipient(db, msg.Destination); err != nil {
		return nil, err
	}
	return &notepool.CheckResult{}, nil
}

// Deliver returns the JSON encoded Outcome as result data.
func (h RedeemHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	var msg RedeemMsg
	if err := notepool.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	out, err := h.verifier.Redeem(ctx, db, msg.Secret, msg.Destination)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	notepool.GetLogger(ctx).Info("note redeemed", "note", hex.EncodeToString(out.NoteID), "asset", out.Asset)
	res := &notepool.DeliverResult{Data: data}
	res.Tag(TagAsset, out.Asset)
	return res, nil
}
