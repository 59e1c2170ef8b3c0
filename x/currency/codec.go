package currency

import (
	amino "github.com/tendermint/go-amino"
	"github.com/tss-labs/notepool"
)

var cdc = amino.NewCodec()

// RegisterCodec registers the messages of this extension, so a transaction
// can carry them.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&CreateAssetMsg{}, "currency/create", nil)
}

func (a *Asset) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Asset) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, a)
}

var _ notepool.Persistent = (*Asset)(nil)
