package orm

import (
	"reflect"

	"github.com/tss-labs/notepool/errors"
)

// SimpleObj is the Object every bucket of the ledger stores: a primary key
// next to the model saved under it. A bucket keeps one SimpleObj without a
// key as prototype and clones it for every record it reads.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj returns the object for value stored under key. value must be
// a pointer, so that Clone can allocate a fresh model of the same type.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

// Key returns the primary key, without the bucket prefix.
func (o SimpleObj) Key() []byte {
	return o.key
}

// SetKey replaces the primary key.
func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Value returns the stored model.
func (o SimpleObj) Value() Model {
	return o.value
}

// Validate requires a key and a model and then validates the model.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "object key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "object value")
	}
	return o.value.Validate()
}

// Clone returns an object with a zero model of the same type and a copy of
// the key. Nothing is shared with o.
func (o *SimpleObj) Clone() Object {
	model := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) != 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: model}
}
