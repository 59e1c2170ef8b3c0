package notes

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/store"
	"github.com/tss-labs/notepool/x/vault"
)

// Vault is the part of the custody vault the registry depends on.
type Vault interface {
	Lock(db notepool.KVStore, asset string, amount coin.Amount, from notepool.Address) (*vault.Receipt, error)
	Release(ctx notepool.Context, db notepool.KVStore, asset string, amount coin.Amount, to notepool.Address) error
	Escrowed(db notepool.ReadOnlyKVStore, asset string) (coin.Amount, error)
	CheckRecipient(db notepool.ReadOnlyKVStore, addr notepool.Address) error
}

var _ Vault = vault.Controller{}

// Registry owns the mapping from commitment to note.
type Registry struct {
	bucket NoteBucket
	vault  Vault
}

// NewRegistry returns a registry locking and releasing funds in v.
func NewRegistry(v Vault) Registry {
	return Registry{
		bucket: NewNoteBucket(),
		vault:  v,
	}
}

// Commit locks amount of asset from the depositor and records an open note
// for the commitment. Both happen or neither does. It returns the note id.
func (r Registry) Commit(ctx notepool.Context, db notepool.KVStore, commitment []byte, asset string, amount coin.Amount, depositor notepool.Address) ([]byte, error) {
	if err := validateCommitment(commitment); err != nil {
		return nil, err
	}
	switch exists, err := r.bucket.Has(db, commitment); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(ErrDuplicateCommitment, "%X", commitment)
	}

	var id []byte
	err := store.Transact(db, func(db notepool.KVStore) error {
		if _, err := r.vault.Lock(db, asset, amount, depositor); err != nil {
			return err
		}
		var err error
		if id, err = r.bucket.NextID(db); err != nil {
			return errors.Wrap(err, "note id")
		}
		note := &Note{
			ID:         id,
			Commitment: commitment,
			Asset:      asset,
			Amount:     amount,
			Depositor:  depositor,
			Status:     StatusOpen,
			CreatedAt:  blockTime(ctx),
		}
		return r.bucket.SaveNote(db, note)
	})
	if err != nil {
		return nil, err
	}
	return id, nil
}

// Lookup returns the note committed to commitment.
func (r Registry) Lookup(db notepool.ReadOnlyKVStore, commitment []byte) (*Note, error) {
	note, err := r.bucket.GetNote(db, commitment)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, errors.Wrapf(ErrUnknownNote, "%X", commitment)
	}
	return note, nil
}

// markRedeemed moves an open note to redeemed and returns it.
func (r Registry) markRedeemed(ctx notepool.Context, db notepool.KVStore, commitment []byte) (*Note, error) {
	note, err := r.Lookup(db, commitment)
	if err != nil {
		return nil, err
	}
	if note.Status != StatusOpen {
		return nil, errors.Wrapf(ErrAlreadyRedeemed, "note %X", note.ID)
	}
	note.Status = StatusRedeemed
	note.RedeemedAt = blockTime(ctx)
	if err := r.bucket.SaveNote(db, note); err != nil {
		return nil, err
	}
	return note, nil
}

// CheckInvariant fails with ErrState unless the escrow of asset equals the
// sum of all open notes of that asset.
func (r Registry) CheckInvariant(db notepool.ReadOnlyKVStore, asset string) error {
	models, err := r.bucket.Query(db, notepool.PrefixQueryMod, nil)
	if err != nil {
		return err
	}
	var open coin.Amount
	for _, m := range models {
		var note Note
		if err := note.Unmarshal(m.Value); err != nil {
			return errors.Wrap(errors.ErrState, err.Error())
		}
		if note.Asset != asset || note.Status != StatusOpen {
			continue
		}
		if open, err = open.Add(note.Amount); err != nil {
			return err
		}
	}
	escrowed, err := r.vault.Escrowed(db, asset)
	if err != nil {
		return err
	}
	if !escrowed.Equals(open) {
		return errors.Wrapf(errors.ErrState, "%s escrow %s, open notes %s", asset, escrowed, open)
	}
	return nil
}

func blockTime(ctx notepool.Context) int64 {
	if t, ok := notepool.BlockTime(ctx); ok {
		return t.Unix()
	}
	return 0
}
