package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tss-labs/notepool/config"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/network"
	"github.com/tss-labs/notepool/screening"
	"github.com/urfave/cli/v2"
)

var screenCmd = &cli.Command{
	Name:      "screen",
	Usage:     "Check a destination address before sending funds",
	ArgsUsage: "ADDRESS",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  flagFamily,
			Usage: "address `FAMILY`: hex or base58",
			Value: "hex",
		},
	},
	Action: screen,
}

func screen(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "exactly one address is required")
	}
	family, err := screening.ParseFamily(c.String(flagFamily))
	if err != nil {
		return err
	}
	s, err := newSession(c)
	if err != nil {
		return err
	}
	res := s.screener(c).Screen(c.Context, c.Args().First(), family)
	fmt.Printf("%s: %s\n", res.Classification, res.Detail)
	if res.Blocks() {
		return errors.Wrap(errors.ErrInput, "destination rejected")
	}
	return nil
}

var networkCmd = &cli.Command{
	Name:  "network",
	Usage: "Inspect and select the settlement chain",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "List all known chains",
			Action: networkList,
		},
		{
			Name:      "switch",
			Usage:     "Switch the wallet to a chain, adding it if needed",
			ArgsUsage: "CHAIN_ID",
			Action:    networkSwitch,
		},
	},
}

func registry(c *cli.Context, cfg *config.Config) (*network.Registry, error) {
	var env network.Environment
	if url := cfg.Network.WalletURL; url != "" {
		w, err := network.DialWallet(c.Context, url)
		if err != nil {
			return nil, err
		}
		env = w
	}
	return network.NewRegistry(env, cfg.Network.Profiles...)
}

func networkList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	r, err := registry(c, cfg)
	if err != nil {
		return err
	}
	for _, p := range r.Profiles() {
		marker := " "
		if p.ChainID == cfg.Network.ChainID {
			marker = "*"
		}
		fmt.Printf("%s %-10s %-20s %s assets: %s\n", marker, p.HexChainID(), p.Name,
			strings.Join(p.RPCURLs, ","), strings.Join(p.Assets(), ","))
	}
	return nil
}

func networkSwitch(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "exactly one chain id is required")
	}
	chainID, err := strconv.ParseUint(c.Args().First(), 0, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "chain id %q", c.Args().First())
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	r, err := registry(c, cfg)
	if err != nil {
		return err
	}
	p, err := r.SwitchTo(c.Context, chainID)
	if err != nil {
		return err
	}
	fmt.Printf("switched to %s (%s)\n", p.Name, p.HexChainID())
	if p.ExplorerURL != "" {
		fmt.Printf("explorer: %s\n", p.ExplorerURL)
	}
	return nil
}
