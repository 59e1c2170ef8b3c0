package currency

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
)

// CreateAssetMsg registers a new asset.
type CreateAssetMsg struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint32 `json:"decimals"`
	Contract string `json:"contract,omitempty"`
}

var _ notepool.Msg = (*CreateAssetMsg)(nil)

func (CreateAssetMsg) Path() string {
	return "currency/create"
}

func (m *CreateAssetMsg) Validate() error {
	if !coin.IsTicker(m.Symbol) {
		return errors.Wrapf(errors.ErrMsg, "invalid symbol %q", m.Symbol)
	}
	a := Asset{Name: m.Name, Decimals: m.Decimals, Contract: m.Contract}
	if err := a.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}
