package vault

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers the messages of this extension, so a transaction
// can carry them.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&ApproveMsg{}, "vault/approve", nil)
	c.RegisterConcrete(&TransferMsg{}, "vault/transfer", nil)
	c.RegisterConcrete(&MintMsg{}, "vault/mint", nil)
	c.RegisterConcrete(&BurnMsg{}, "vault/burn", nil)
}

func (b *Balance) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(b)
}

func (b *Balance) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, b)
}

func (a *Allowance) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Allowance) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, a)
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}
