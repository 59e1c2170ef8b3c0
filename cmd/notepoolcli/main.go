package main

import (
	"fmt"
	"os"

	"github.com/tss-labs/notepool"
	"github.com/urfave/cli/v2"
)

const (
	flagCfg     = "cfg"
	flagHome    = "home"
	flagKey     = "key"
	flagAsset   = "asset"
	flagAmount  = "amount"
	flagSecret  = "secret"
	flagTo      = "to"
	flagYes     = "yes"
	flagFamily  = "family"
	flagAddress = "address"
	flagSeed    = "seed"
	flagPath    = "derivation"
)

// appName is the name of the binary
const appName = "notepoolcli"

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "deposit into and redeem from the note pool"
	app.Version = notepool.Version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagCfg,
			Aliases: []string{"c"},
			Usage:   "Configuration `FILE`, defaults to config.toml in the home directory",
		},
		&cli.StringFlag{
			Name:  flagHome,
			Usage: "`DIR` holding the key and the configuration",
			Value: defaultHome(),
		},
		&cli.StringFlag{
			Name:  flagKey,
			Usage: "private key `FILE`, overrides the configuration",
		},
	}
	app.Commands = []*cli.Command{
		keysCmd,
		depositCmd,
		redeemCmd,
		noteCmd,
		balanceCmd,
		mintCmd,
		burnCmd,
		screenCmd,
		networkCmd,
		watchCmd,
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}
