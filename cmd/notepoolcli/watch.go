package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tss-labs/notepool/client"
	"github.com/urfave/cli/v2"
)

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Print balances and the escrowed total until interrupted",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    flagAsset,
			Aliases: []string{"a"},
			Usage:   "asset `SYMBOL`, can be repeated",
			Value:   cli.NewStringSlice("TSS", "USDC"),
		},
	},
	Action: watch,
}

func watch(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	key, err := loadKey(c, s.cfg)
	if err != nil {
		return err
	}
	p := client.NewPoller(s.client, s.cfg.Poll.Interval, s.logger)
	for _, asset := range c.StringSlice(flagAsset) {
		p.Watch(strings.ToUpper(asset), client.Address(key))
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = p.Run(ctx, func(snap client.Snapshot) {
		fmt.Printf("%s %-6s balance %s, escrowed in pool %s\n", snap.At.Format("15:04:05"), snap.Asset,
			s.format(c, snap.Asset, snap.Balance), s.format(c, snap.Asset, snap.Escrowed))
	})
	if err == context.Canceled {
		return nil
	}
	return err
}
