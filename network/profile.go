package network

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tss-labs/notepool/errors"
)

// NativeCurrency describes the coin used to pay for gas on a chain.
type NativeCurrency struct {
	Name     string `json:"name" mapstructure:"name"`
	Symbol   string `json:"symbol" mapstructure:"symbol"`
	Decimals uint8  `json:"decimals" mapstructure:"decimals"`
}

// Profile is the full description of one chain. Profiles are values and are
// never modified once registered.
type Profile struct {
	ChainID     uint64            `mapstructure:"chain_id"`
	Name        string            `mapstructure:"name"`
	RPCURLs     []string          `mapstructure:"rpc_urls"`
	ExplorerURL string            `mapstructure:"explorer_url"`
	Native      NativeCurrency    `mapstructure:"native"`
	Pool        string            `mapstructure:"pool"`
	Tokens      map[string]string `mapstructure:"tokens"`
}

// HexChainID returns the chain id in the 0x prefixed form wallets use.
func (p Profile) HexChainID() string {
	return hexutil.EncodeUint64(p.ChainID)
}

// Token returns the contract address of the asset on this chain.
func (p Profile) Token(asset string) (common.Address, error) {
	for symbol, addr := range p.Tokens {
		if strings.EqualFold(symbol, asset) {
			return common.HexToAddress(addr), nil
		}
	}
	return common.Address{}, errors.Wrapf(errors.ErrNotFound, "asset %s on %s", asset, p.Name)
}

// Assets returns the symbols of all tokens known on this chain, sorted.
func (p Profile) Assets() []string {
	assets := make([]string, 0, len(p.Tokens))
	for symbol := range p.Tokens {
		assets = append(assets, strings.ToUpper(symbol))
	}
	sort.Strings(assets)
	return assets
}

// Validate returns an error if the profile cannot be used.
func (p Profile) Validate() error {
	if p.ChainID == 0 {
		return errors.Wrap(errors.ErrEmpty, "chain id")
	}
	if p.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if len(p.RPCURLs) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "rpc urls of %s", p.Name)
	}
	if p.Pool != "" && !common.IsHexAddress(p.Pool) {
		return errors.Wrapf(errors.ErrInput, "pool address of %s: %q", p.Name, p.Pool)
	}
	for symbol, addr := range p.Tokens {
		if !common.IsHexAddress(addr) {
			return errors.Wrapf(errors.ErrInput, "token %s of %s: %q", symbol, p.Name, addr)
		}
	}
	return nil
}

var ether = NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18}

// ArbitrumSepolia is the public test deployment.
var ArbitrumSepolia = Profile{
	ChainID:     0x66eee,
	Name:        "Arbitrum Sepolia",
	RPCURLs:     []string{"https://sepolia-rollup.arbitrum.io/rpc"},
	ExplorerURL: "https://sepolia.arbiscan.io/",
	Native:      ether,
	Pool:        "0x0BeC794081343E35e7BE7c294Ac40a0Fa48A0321",
	Tokens: map[string]string{
		"TSS":  "0x0aec55244a6b5AEF9Db1Aa1E15E1b8807Df3226c",
		"USDC": "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d",
	},
}

// Localhost is a development node, addresses depend on the local deployment.
var Localhost = Profile{
	ChainID: 31337,
	Name:    "localhost",
	RPCURLs: []string{"http://127.0.0.1:8545"},
	Native:  ether,
}

// BuiltinProfiles returns all profiles that are always available.
func BuiltinProfiles() []Profile {
	return []Profile{ArbitrumSepolia, Localhost}
}
