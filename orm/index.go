package orm

import (
	"encoding/binary"

	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

const idxPrefix = "_i."

// Indexer calculates the secondary index key for a given object. Returning
// a nil key leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// Index is a non unique secondary index. Every reference is stored under its
// own key
//
//   _i.<name>:<uvarint len(value)><value><primary key>
//
// so that all primary keys indexed under a value can be found with a single
// prefix iteration.
type Index struct {
	name   string
	id     []byte
	index  Indexer
	refKey func([]byte) []byte
}

var _ notepool.QueryHandler = Index{}

// NewIndex constructs an index. refKey calculates the absolute db key of a
// referenced object and is used to answer queries.
func NewIndex(name string, indexer Indexer, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte(idxPrefix + name + ":"),
		index:  indexer,
		refKey: refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

func (i Index) valuePrefix(value []byte) []byte {
	lenbuf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lenbuf, uint64(len(value)))
	out := make([]byte, 0, len(i.id)+n+len(value))
	out = append(out, i.id...)
	out = append(out, lenbuf[:n]...)
	return append(out, value...)
}

func (i Index) refDBKey(value, pk []byte) []byte {
	return append(i.valuePrefix(value), pk...)
}

// Update moves the reference of the object within the index.
//
// prev == nil means insert
// save == nil means delete
func (i Index) Update(db notepool.KVStore, prev Object, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	}
	if prev != nil {
		val, err := i.index(prev)
		if err != nil {
			return err
		}
		if val != nil {
			if err := db.Delete(i.refDBKey(val, prev.Key())); err != nil {
				return err
			}
		}
	}
	if save != nil {
		val, err := i.index(save)
		if err != nil {
			return err
		}
		if val != nil {
			if err := db.Set(i.refDBKey(val, save.Key()), []byte{1}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Keys returns all primary keys indexed under value.
func (i Index) Keys(db notepool.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix := i.valuePrefix(value)
	models, err := queryPrefix(db, prefix)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(models))
	for n, m := range models {
		keys[n] = m.Key[len(prefix):]
	}
	return keys, nil
}

// Query returns all objects indexed under data. Only the key query mod is
// supported.
func (i Index) Query(db notepool.ReadOnlyKVStore, mod string, data []byte) ([]notepool.Model, error) {
	if mod != notepool.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	refs, err := i.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]notepool.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		val, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if val != nil {
			res = append(res, notepool.Pair(key, val))
		}
	}
	return res, nil
}
