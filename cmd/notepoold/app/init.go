package notepoold

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/crypto"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/x/currency"
	"github.com/tss-labs/notepool/x/vault"
)

// DefaultAssets are registered in every generated genesis.
var DefaultAssets = []currency.GenesisAsset{
	{Symbol: "TSS", Name: "TSS Token", Decimals: 18},
	{Symbol: "USDC", Name: "USD Coin", Decimals: 6},
}

// DefaultOwnerBalance is minted to the owner for each default asset, in
// whole units.
const DefaultOwnerBalance = "1000000"

type genesisConf struct {
	Vault vault.Configuration `json:"vault"`
}

type genesisVault struct {
	Balances []vault.GenesisBalance `json:"balances"`
}

type appState struct {
	Currencies []currency.GenesisAsset `json:"currencies"`
	Vault      genesisVault            `json:"vault"`
	Conf       genesisConf             `json:"conf"`
}

// GenInitOptions produces the genesis app_state with the default assets
// and one rich owner account. The owner address can be given as the first
// argument, otherwise a new key is generated and printed to out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner notepool.Address
	if len(args) > 0 {
		addr, err := notepool.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		if err := addr.Validate(); err != nil {
			return nil, errors.Wrap(err, "owner")
		}
		owner = addr
	} else {
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(keys)
	}
	return genesisFor(owner)
}

func genesisFor(owner notepool.Address) (json.RawMessage, error) {
	state := appState{
		Currencies: DefaultAssets,
		Conf:       genesisConf{Vault: vault.Configuration{Owner: owner}},
	}
	for _, a := range DefaultAssets {
		amount, err := coin.ParseUnits(DefaultOwnerBalance, uint8(a.Decimals))
		if err != nil {
			return nil, errors.Wrapf(err, "balance of %s", a.Symbol)
		}
		state.Vault.Balances = append(state.Vault.Balances, vault.GenesisBalance{
			Address: owner,
			Asset:   a.Symbol,
			Amount:  amount,
		})
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "notepool.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a new public key,
// along with a json representation of the keys, which can be
// imported by the cli.
func GenerateCoinKey() (notepool.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return pubKey.Address(), string(keys), nil
}
