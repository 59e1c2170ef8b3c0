package sigs

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Marshal encodes the user record.
func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(u)
}

// Unmarshal decodes the user record.
func (u *UserData) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, u)
}
