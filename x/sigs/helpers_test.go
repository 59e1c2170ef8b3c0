package sigs

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/notetest"
)

// signedTx is a transaction with a fixed payload that can be signed.
type signedTx struct {
	notetest.Tx
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ notepool.Tx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{
		Tx:      notetest.Tx{Msg: &notetest.Msg{}},
		payload: payload,
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

// signersHandler stores the seen signers on each call
type signersHandler struct {
	Signers []notepool.Condition
}

var _ notepool.Handler = (*signersHandler)(nil)

func (s *signersHandler) Check(ctx notepool.Context, store notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &notepool.CheckResult{}, nil
}

func (s *signersHandler) Deliver(ctx notepool.Context, store notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &notepool.DeliverResult{}, nil
}
