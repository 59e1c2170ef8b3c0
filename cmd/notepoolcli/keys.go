package main

import (
	"encoding/hex"
	"fmt"

	"github.com/tss-labs/notepool/client"
	"github.com/tss-labs/notepool/crypto"
	"github.com/tss-labs/notepool/errors"
	"github.com/urfave/cli/v2"
)

// bech32Prefix is the human readable part of printed addresses.
const bech32Prefix = "np"

var keysCmd = &cli.Command{
	Name:  "keys",
	Usage: "Manage the signing key",
	Subcommands: []*cli.Command{
		{
			Name:  "new",
			Usage: "Create a new key, random or derived from a seed",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagSeed,
					Usage: "hex encoded `SEED` to derive the key from",
				},
				&cli.StringFlag{
					Name:  flagPath,
					Usage: "SLIP-10 derivation `PATH`, used with --seed",
					Value: client.DefaultKeyPath,
				},
			},
			Action: keysNew,
		},
		{
			Name:   "show",
			Usage:  "Print the address of the key",
			Action: keysShow,
		},
	},
}

func keysNew(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	key := client.GenerateKey()
	if s := c.String(flagSeed); s != "" {
		seed, err := hex.DecodeString(s)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "seed must be hex")
		}
		if key, err = client.DeriveKey(seed, c.String(flagPath)); err != nil {
			return err
		}
	}
	path := keyPath(c, cfg)
	if err := client.SaveKey(path, key); err != nil {
		return err
	}
	fmt.Printf("key written to %s\n", path)
	return printAddress(key)
}

func keysShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	key, err := loadKey(c, cfg)
	if err != nil {
		return err
	}
	return printAddress(key)
}

func printAddress(key *crypto.PrivateKey) error {
	addr := client.Address(key)
	b32, err := addr.Bech32(bech32Prefix)
	if err != nil {
		return err
	}
	fmt.Printf("address: 0x%s\n", hex.EncodeToString(addr))
	fmt.Printf("bech32:  %s\n", b32)
	return nil
}
