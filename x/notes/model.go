package notes

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/orm"
)

// Status of a note.
type Status uint32

const (
	StatusOpen Status = iota + 1
	StatusRedeemed
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusRedeemed:
		return "redeemed"
	default:
		return "invalid"
	}
}

// Note is a deposit waiting for the secret behind its commitment.
type Note struct {
	ID         []byte           `json:"id"`
	Commitment []byte           `json:"commitment"`
	Asset      string           `json:"asset"`
	Amount     coin.Amount      `json:"amount"`
	Depositor  notepool.Address `json:"depositor"`
	Status     Status           `json:"status"`
	// CreatedAt and RedeemedAt are block times in unix seconds.
	CreatedAt  int64 `json:"created_at"`
	RedeemedAt int64 `json:"redeemed_at,omitempty"`
}

var _ orm.Model = (*Note)(nil)

// Validate checks the note is consistent.
func (n *Note) Validate() error {
	if len(n.ID) != 8 {
		return errors.Wrap(errors.ErrModel, "id must be 8 bytes")
	}
	if err := validateCommitment(n.Commitment); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if !coin.IsTicker(n.Asset) {
		return errors.Wrapf(errors.ErrModel, "invalid asset %q", n.Asset)
	}
	if !n.Amount.IsPositive() {
		return errors.Wrap(errors.ErrModel, "amount must be positive")
	}
	if err := n.Depositor.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, "depositor: "+err.Error())
	}
	switch n.Status {
	case StatusOpen:
		if n.RedeemedAt != 0 {
			return errors.Wrap(errors.ErrModel, "open note cannot have a redeem time")
		}
	case StatusRedeemed:
	default:
		return errors.Wrapf(errors.ErrModel, "invalid status %d", n.Status)
	}
	return nil
}

// NoteBucket stores notes keyed by commitment.
type NoteBucket struct {
	orm.Bucket
	ids orm.Sequence
}

// NewNoteBucket returns the bucket registered under /notes, with a
// depositor index.
func NewNoteBucket() NoteBucket {
	b := orm.NewBucket("note", orm.NewSimpleObj(nil, &Note{})).
		WithIndex("depositor", idxDepositor)
	return NoteBucket{
		Bucket: b,
		ids:    b.Sequence(orm.SeqID),
	}
}

// NextID returns the identifier of the next note.
func (b NoteBucket) NextID(db notepool.KVStore) ([]byte, error) {
	return b.ids.NextVal(db)
}

// GetNote returns the note with the given commitment or nil.
func (b NoteBucket) GetNote(db notepool.ReadOnlyKVStore, commitment []byte) (*Note, error) {
	obj, err := b.Get(db, commitment)
	if err != nil || obj == nil {
		return nil, err
	}
	return asNote(obj)
}

// ByDepositor returns all notes committed by the given address.
func (b NoteBucket) ByDepositor(db notepool.ReadOnlyKVStore, depositor notepool.Address) ([]*Note, error) {
	objs, err := b.GetIndexed(db, "depositor", depositor)
	if err != nil {
		return nil, err
	}
	res := make([]*Note, len(objs))
	for i, obj := range objs {
		if res[i], err = asNote(obj); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// SaveNote stores the note under its commitment.
func (b NoteBucket) SaveNote(db notepool.KVStore, n *Note) error {
	return b.Save(db, orm.NewSimpleObj(n.Commitment, n))
}

func asNote(obj orm.Object) (*Note, error) {
	n, ok := obj.Value().(*Note)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return n, nil
}

func idxDepositor(obj orm.Object) ([]byte, error) {
	n, err := asNote(obj)
	if err != nil {
		return nil, err
	}
	return n.Depositor, nil
}
