package notes

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers the messages of this extension, so a transaction
// can carry them.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&CommitMsg{}, "notes/commit", nil)
	c.RegisterConcrete(&RedeemMsg{}, "notes/redeem", nil)
}

func (n *Note) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(n)
}

func (n *Note) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, n)
}
