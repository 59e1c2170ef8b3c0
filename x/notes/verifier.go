package notes

import (
	"crypto/subtle"

	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/store"
)

// Outcome describes a successful redemption.
type Outcome struct {
	NoteID      []byte           `json:"note_id"`
	Asset       string           `json:"asset"`
	Amount      coin.Amount      `json:"amount"`
	Destination notepool.Address `json:"destination"`
}

// Verifier redeems notes for whoever knows their secret.
type Verifier struct {
	registry Registry
}

// NewVerifier returns a verifier working on the given registry.
func NewVerifier(r Registry) Verifier {
	return Verifier{registry: r}
}

// Redeem consumes the note committed to keccak256(secret) and pays its full
// amount to destination. A failed redemption leaves the note open.
func (v Verifier) Redeem(ctx notepool.Context, db notepool.KVStore, secret []byte, destination notepool.Address) (*Outcome, error) {
	if err := validateSecret(secret); err != nil {
		return nil, err
	}
	if err := destination.Validate(); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	commitment := Commitment(secret)

	note, err := v.registry.Lookup(db, commitment)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(note.Commitment, commitment) != 1 {
		return nil, errors.Wrap(ErrUnknownNote, "commitment mismatch")
	}
	if note.Status != StatusOpen {
		return nil, errors.Wrapf(ErrAlreadyRedeemed, "note %X", note.ID)
	}

	err = store.Transact(db, func(db notepool.KVStore) error {
		if _, err := v.registry.markRedeemed(ctx, db, commitment); err != nil {
			return err
		}
		return v.registry.vault.Release(ctx, db, note.Asset, note.Amount, destination)
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{
		NoteID:      note.ID,
		Asset:       note.Asset,
		Amount:      note.Amount,
		Destination: destination,
	}, nil
}
