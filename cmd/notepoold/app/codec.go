package notepoold

import (
	amino "github.com/tendermint/go-amino"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/x/currency"
	"github.com/tss-labs/notepool/x/notes"
	"github.com/tss-labs/notepool/x/vault"
)

var cdc = MakeCodec()

// MakeCodec returns a codec that knows every message of the application.
// Clients must encode transactions with the same codec.
func MakeCodec() *amino.Codec {
	c := amino.NewCodec()
	c.RegisterInterface((*notepool.Msg)(nil), nil)
	currency.RegisterCodec(c)
	vault.RegisterCodec(c)
	notes.RegisterCodec(c)
	c.Seal()
	return c
}
