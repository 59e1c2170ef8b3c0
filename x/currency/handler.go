package currency

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/x"
)

// RegisterQuery registers the asset bucket under /assets.
func RegisterQuery(qr notepool.QueryRouter) {
	NewAssetBucket().Register("assets", qr)
}

// Issuer returns the address allowed to register assets.
type Issuer func(db notepool.ReadOnlyKVStore) (notepool.Address, error)

// FixedIssuer always returns the same issuer.
func FixedIssuer(addr notepool.Address) Issuer {
	return func(notepool.ReadOnlyKVStore) (notepool.Address, error) {
		return addr, nil
	}
}

// RegisterRoutes registers the handler of this extension. Only the issuer
// may register assets.
func RegisterRoutes(r notepool.Registry, auth x.Authenticator, issuer Issuer) {
	r.Handle(CreateAssetMsg{}.Path(), &createAssetHandler{
		auth:   auth,
		issuer: issuer,
		bucket: NewAssetBucket(),
	})
}

type createAssetHandler struct {
	auth   x.Authenticator
	bucket *AssetBucket
	issuer Issuer
}

var _ notepool.Handler = (*createAssetHandler)(nil)

func (h *createAssetHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &notepool.CheckResult{}, nil
}

func (h *createAssetHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewAsset(msg.Symbol, msg.Name, msg.Decimals, msg.Contract)
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return &notepool.DeliverResult{Data: obj.Key()}, nil
}

func (h *createAssetHandler) validate(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*CreateAssetMsg, error) {
	var msg CreateAssetMsg
	if err := notepool.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	issuer, err := h.issuer(db)
	if err != nil {
		return nil, errors.Wrap(err, "issuer")
	}
	if issuer == nil || !h.auth.HasAddress(ctx, issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "assets are only registered by the issuer")
	}
	switch exists, err := h.bucket.Has(db, []byte(msg.Symbol)); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(errors.ErrDuplicate, "asset %s", msg.Symbol)
	}
	return &msg, nil
}
