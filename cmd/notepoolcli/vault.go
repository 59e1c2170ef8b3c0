package main

import (
	"fmt"
	"strings"

	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/client"
	"github.com/urfave/cli/v2"
)

var balanceCmd = &cli.Command{
	Name:  "balance",
	Usage: "Show balances and the escrowed total",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    flagAsset,
			Aliases: []string{"a"},
			Usage:   "asset `SYMBOL`, can be repeated",
			Value:   cli.NewStringSlice("TSS", "USDC"),
		},
		&cli.StringFlag{
			Name:  flagAddress,
			Usage: "hex `ADDRESS` to show, defaults to the own key",
		},
	},
	Action: balance,
}

func balance(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	var addr notepool.Address
	if a := c.String(flagAddress); a != "" {
		if addr, err = client.ParseHexAddress(a); err != nil {
			return err
		}
	} else {
		key, err := loadKey(c, s.cfg)
		if err != nil {
			return err
		}
		addr = client.Address(key)
	}

	for _, asset := range c.StringSlice(flagAsset) {
		asset = strings.ToUpper(asset)
		bal, err := s.client.Balance(c.Context, asset, addr)
		if err != nil {
			return err
		}
		escrowed, err := s.client.Escrowed(c.Context, asset)
		if err != nil {
			return err
		}
		fmt.Printf("%-6s balance %s, escrowed in pool %s\n", asset,
			s.format(c, asset, bal), s.format(c, asset, escrowed))
	}
	return nil
}

var mintCmd = &cli.Command{
	Name:   "mint",
	Usage:  "Create new units, vault owner only",
	Flags:  []cli.Flag{assetFlag, amountFlag},
	Action: mint,
}

func mint(c *cli.Context) error {
	return ownerOp(c, "minted", func(s *session, asset string) (string, error) {
		key, err := loadKey(c, s.cfg)
		if err != nil {
			return "", err
		}
		amount, err := s.amount(c, asset)
		if err != nil {
			return "", err
		}
		total, err := s.client.Mint(c.Context, key, asset, amount)
		if err != nil {
			return "", err
		}
		return s.format(c, asset, total), nil
	})
}

var burnCmd = &cli.Command{
	Name:   "burn",
	Usage:  "Destroy units, vault owner only",
	Flags:  []cli.Flag{assetFlag, amountFlag},
	Action: burn,
}

func burn(c *cli.Context) error {
	return ownerOp(c, "burned", func(s *session, asset string) (string, error) {
		key, err := loadKey(c, s.cfg)
		if err != nil {
			return "", err
		}
		amount, err := s.amount(c, asset)
		if err != nil {
			return "", err
		}
		left, err := s.client.Burn(c.Context, key, asset, amount)
		if err != nil {
			return "", err
		}
		return s.format(c, asset, left), nil
	})
}

func ownerOp(c *cli.Context, verb string, fn func(*session, string) (string, error)) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	asset := strings.ToUpper(c.String(flagAsset))
	total, err := fn(s, asset)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %s, owner balance now %s\n", verb, c.String(flagAmount), asset, total)
	return nil
}
