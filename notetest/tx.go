package notetest

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

// Tx represents a transaction that carries a single message. It cannot be
// serialized.
type Tx struct {
	Msg notepool.Msg
	Err error
}

var _ notepool.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (notepool.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "mock transaction cannot be serialized")
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "mock transaction cannot be deserialized")
}

// Msg is a mock message. Path and validation error are configurable.
type Msg struct {
	RoutePath string
	Err       error
}

var _ notepool.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	if m.RoutePath == "" {
		return "test/mock"
	}
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
