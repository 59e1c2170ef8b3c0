package app

import (
	"strings"

	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/notetest"
)

// pathDecoder decodes tx bytes as the path of a mock message. A "panic"
// payload makes the decoder panic.
func pathDecoder(raw []byte) (notepool.Tx, error) {
	path := string(raw)
	switch {
	case path == "panic":
		panic("decoder exploded")
	case path == "":
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	return &notetest.Tx{Msg: &notetest.Msg{RoutePath: path}}, nil
}

// kvQuery returns the raw value stored under the queried key.
type kvQuery struct{}

func (kvQuery) Query(db notepool.ReadOnlyKVStore, mod string, data []byte) ([]notepool.Model, error) {
	if mod != notepool.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier %q", mod)
	}
	val, err := db.Get(data)
	if err != nil || val == nil {
		return nil, err
	}
	return []notepool.Model{notepool.Pair(data, val)}, nil
}

const dummyKey = "dummy"

// dummyInit copies the string stored under the dummy option into the store.
type dummyInit struct{}

func (dummyInit) FromGenesis(opts notepool.Options, kv notepool.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	if strings.HasPrefix(value, "fail") {
		return errors.Wrap(errors.ErrInput, value)
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts notepool.Options, kv notepool.KVStore) error {
	c.called++
	return nil
}
