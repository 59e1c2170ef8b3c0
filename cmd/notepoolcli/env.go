package main

import (
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool/client"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/config"
	"github.com/tss-labs/notepool/crypto"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/screening"
	"github.com/urfave/cli/v2"
)

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notepool"
	}
	return filepath.Join(home, ".notepool")
}

// loadConfig reads the configured file, or config.toml in the home
// directory if there is one.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String(flagCfg)
	if path == "" {
		candidate := filepath.Join(c.String(flagHome), "config.toml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	return config.Load(path)
}

func keyPath(c *cli.Context, cfg *config.Config) string {
	if p := c.String(flagKey); p != "" {
		return p
	}
	if cfg.Keys.Path != "" {
		return cfg.Keys.Path
	}
	return filepath.Join(c.String(flagHome), "key.json")
}

func loadKey(c *cli.Context, cfg *config.Config) (*crypto.PrivateKey, error) {
	key, err := client.LoadKey(keyPath(c, cfg))
	if errors.ErrNotFound.Is(err) {
		return nil, errors.Wrap(err, "create one with: keys new")
	}
	return key, err
}

func logger(cfg *config.Config) (log.Logger, error) {
	return cfg.Log.Logger(os.Stderr)
}

// session bundles what most commands need.
type session struct {
	cfg    *config.Config
	logger log.Logger
	client *client.Client
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	l, err := logger(cfg)
	if err != nil {
		return nil, err
	}
	cl := client.NewClient(client.NewHTTPConn(cfg.Node.URL)).WithLogger(l)
	return &session{cfg: cfg, logger: l, client: cl}, nil
}

// screener connects every activity source that is configured. Sources
// that cannot be reached are left out, screening then reports
// indeterminate results for their family.
func (s *session) screener(c *cli.Context) *screening.Screener {
	sc := screening.NewScreener(s.cfg.Screening.Timeout)
	if url := s.cfg.Screening.EVMURL; url != "" {
		q, err := screening.DialEVM(c.Context, url)
		if err != nil {
			s.logger.Error("evm activity source unavailable", "err", err)
		} else {
			sc.WithQuerier(screening.FamilyHex, q)
		}
	}
	if url := s.cfg.Screening.SolanaURL; url != "" {
		q, err := screening.DialSolana(c.Context, url)
		if err != nil {
			s.logger.Error("solana activity source unavailable", "err", err)
		} else {
			sc.WithQuerier(screening.FamilyBase58, q)
		}
	}
	return sc
}

// amount converts the human readable amount flag using the decimals the
// ledger registered for the asset.
func (s *session) amount(c *cli.Context, asset string) (coin.Amount, error) {
	a, err := s.client.Asset(c.Context, asset)
	if err != nil {
		return coin.Amount{}, err
	}
	return coin.ParseUnits(c.String(flagAmount), uint8(a.Decimals))
}

func (s *session) format(c *cli.Context, asset string, amount coin.Amount) string {
	a, err := s.client.Asset(c.Context, asset)
	if err != nil {
		return amount.String()
	}
	return amount.FormatUnits(uint8(a.Decimals)) + " " + asset
}

var assetFlag = &cli.StringFlag{
	Name:    flagAsset,
	Aliases: []string{"a"},
	Usage:   "asset `SYMBOL`",
	Value:   "USDC",
}

var amountFlag = &cli.StringFlag{
	Name:     flagAmount,
	Usage:    "`AMOUNT` in whole units, such as 12.5",
	Required: true,
}
