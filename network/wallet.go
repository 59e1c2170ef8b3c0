package network

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tss-labs/notepool/errors"
)

// ErrUnknownChain is returned when the environment has never seen a chain.
var ErrUnknownChain = errors.Register(400, "chain unknown to environment")

// codeUnrecognizedChain is the wallet error for a chain that was never added.
const codeUnrecognizedChain = 4902

// WalletEnvironment drives a wallet that speaks the EIP-3326 and EIP-3085
// JSON-RPC methods.
type WalletEnvironment struct {
	client *rpc.Client
}

var _ Environment = (*WalletEnvironment)(nil)

// NewWalletEnvironment wraps an open JSON-RPC client.
func NewWalletEnvironment(client *rpc.Client) *WalletEnvironment {
	return &WalletEnvironment{client: client}
}

// DialWallet connects to the wallet JSON-RPC endpoint.
func DialWallet(ctx context.Context, url string) (*WalletEnvironment, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "dial wallet %s: %s", url, err)
	}
	return NewWalletEnvironment(c), nil
}

type switchChainParams struct {
	ChainID string `json:"chainId"`
}

// SwitchChain calls wallet_switchEthereumChain.
func (w *WalletEnvironment) SwitchChain(ctx context.Context, p Profile) error {
	err := w.client.CallContext(ctx, nil, "wallet_switchEthereumChain", switchChainParams{ChainID: p.HexChainID()})
	return walletError(err, p)
}

type addChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	RPCURLs           []string       `json:"rpcUrls"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
}

// AddChain calls wallet_addEthereumChain with the full profile.
func (w *WalletEnvironment) AddChain(ctx context.Context, p Profile) error {
	params := addChainParams{
		ChainID:        p.HexChainID(),
		ChainName:      p.Name,
		RPCURLs:        p.RPCURLs,
		NativeCurrency: p.Native,
	}
	if p.ExplorerURL != "" {
		params.BlockExplorerURLs = []string{p.ExplorerURL}
	}
	err := w.client.CallContext(ctx, nil, "wallet_addEthereumChain", params)
	return walletError(err, p)
}

// Close releases the connection.
func (w *WalletEnvironment) Close() {
	w.client.Close()
}

func walletError(err error, p Profile) error {
	if err == nil {
		return nil
	}
	if rpcErr, ok := err.(rpc.Error); ok && rpcErr.ErrorCode() == codeUnrecognizedChain {
		return errors.Wrap(ErrUnknownChain, p.Name)
	}
	return errors.Wrapf(errors.ErrNetwork, "wallet: %s", err)
}
