package screening

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tss-labs/notepool/errors"
)

// EVMQuerier counts outgoing transactions of an account through its nonce.
type EVMQuerier struct {
	client *ethclient.Client
}

var _ ActivityQuerier = (*EVMQuerier)(nil)

// NewEVMQuerier wraps a connected client.
func NewEVMQuerier(c *ethclient.Client) *EVMQuerier {
	return &EVMQuerier{client: c}
}

// DialEVM connects to an EVM JSON-RPC endpoint.
func DialEVM(ctx context.Context, url string) (*EVMQuerier, error) {
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "dial %s: %s", url, err)
	}
	return NewEVMQuerier(c), nil
}

// Activity returns the nonce of the account at the latest block.
func (q *EVMQuerier) Activity(ctx context.Context, address string) (uint64, error) {
	nonce, err := q.client.NonceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrNetwork, "nonce: %s", err)
	}
	return nonce, nil
}

// Close releases the connection.
func (q *EVMQuerier) Close() {
	q.client.Close()
}

// SolanaQuerier checks whether an account ever signed a transaction.
type SolanaQuerier struct {
	client *rpc.Client
}

var _ ActivityQuerier = (*SolanaQuerier)(nil)

// NewSolanaQuerier wraps a connected JSON-RPC client.
func NewSolanaQuerier(c *rpc.Client) *SolanaQuerier {
	return &SolanaQuerier{client: c}
}

// DialSolana connects to a Solana JSON-RPC endpoint.
func DialSolana(ctx context.Context, url string) (*SolanaQuerier, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "dial %s: %s", url, err)
	}
	return NewSolanaQuerier(c), nil
}

type signatureInfo struct {
	Signature string `json:"signature"`
}

type signaturesConfig struct {
	Limit int `json:"limit"`
}

// Activity returns 1 if the address has at least one signature, 0 if it
// has none. A single signature is enough to tell them apart.
func (q *SolanaQuerier) Activity(ctx context.Context, address string) (uint64, error) {
	var found []signatureInfo
	err := q.client.CallContext(ctx, &found, "getSignaturesForAddress", address, signaturesConfig{Limit: 1})
	if err != nil {
		return 0, errors.Wrapf(errors.ErrNetwork, "signatures: %s", err)
	}
	return uint64(len(found)), nil
}

// Close releases the connection.
func (q *SolanaQuerier) Close() {
	q.client.Close()
}
