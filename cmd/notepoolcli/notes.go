package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/tss-labs/notepool/client"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/screening"
	"github.com/tss-labs/notepool/x/notes"
	"github.com/urfave/cli/v2"
)

var depositCmd = &cli.Command{
	Name:   "deposit",
	Usage:  "Lock funds behind a new secret note",
	Flags:  []cli.Flag{assetFlag, amountFlag},
	Action: deposit,
}

func deposit(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	key, err := loadKey(c, s.cfg)
	if err != nil {
		return err
	}
	asset := strings.ToUpper(c.String(flagAsset))
	amount, err := s.amount(c, asset)
	if err != nil {
		return err
	}
	dep, err := s.client.Deposit(c.Context, key, asset, amount)
	if err != nil {
		return err
	}
	fmt.Printf("deposited:  %s\n", s.format(c, asset, dep.Amount))
	fmt.Printf("note:       %X\n", dep.NoteID)
	fmt.Printf("commitment: %X\n", dep.Commitment)
	fmt.Printf("secret:     %s\n", hex.EncodeToString(dep.Secret))
	fmt.Println("Anyone holding the secret can redeem the note. It cannot be recovered if lost.")
	return nil
}

var redeemCmd = &cli.Command{
	Name:  "redeem",
	Usage: "Pay out a note to a destination",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     flagSecret,
			Usage:    "hex encoded `SECRET` of the note",
			Required: true,
		},
		&cli.StringFlag{
			Name:     flagTo,
			Usage:    "destination `ADDRESS`",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  flagYes,
			Usage: "redeem to unused addresses without asking",
		},
	},
	Action: redeem,
}

func redeem(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	secret, err := parseSecret(c.String(flagSecret))
	if err != nil {
		return err
	}
	s.client.WithScreener(s.screener(c))

	opts := client.RedeemOptions{Confirm: confirmPrompt}
	if c.Bool(flagYes) {
		opts.Confirm = func(screening.Result) bool { return true }
	}
	r, err := s.client.Redeem(c.Context, secret, c.String(flagTo), opts)
	if err != nil {
		return err
	}
	fmt.Printf("screening: %s\n", r.Screening.Classification)
	fmt.Printf("redeemed:  %s to 0x%s\n",
		s.format(c, r.Outcome.Asset, r.Outcome.Amount), hex.EncodeToString(r.Outcome.Destination))
	return nil
}

func confirmPrompt(r screening.Result) bool {
	fmt.Printf("Warning: %s. Funds sent to a mistyped address are lost.\n", r.Detail)
	fmt.Print("Redeem anyway? [y/N] ")
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

var noteCmd = &cli.Command{
	Name:  "note",
	Usage: "Show the state of a note",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  flagSecret,
			Usage: "hex encoded `SECRET` of the note",
		},
		&cli.StringFlag{
			Name:  "commitment",
			Usage: "hex encoded `COMMITMENT` of the note",
		},
	},
	Action: showNote,
}

func showNote(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	var commitment []byte
	switch {
	case c.String(flagSecret) != "":
		secret, err := parseSecret(c.String(flagSecret))
		if err != nil {
			return err
		}
		commitment = notes.Commitment(secret)
	case c.String("commitment") != "":
		if commitment, err = hex.DecodeString(c.String("commitment")); err != nil {
			return errors.Wrap(errors.ErrInput, "commitment must be hex")
		}
	default:
		return errors.Wrap(errors.ErrInput, "either --secret or --commitment is required")
	}

	note, err := s.client.Note(c.Context, commitment)
	if err != nil {
		return err
	}
	fmt.Printf("note:       %X\n", note.ID)
	fmt.Printf("commitment: %X\n", note.Commitment)
	fmt.Printf("amount:     %s\n", s.format(c, note.Asset, note.Amount))
	fmt.Printf("depositor:  0x%s\n", hex.EncodeToString(note.Depositor))
	fmt.Printf("status:     %s\n", note.Status)
	return nil
}

func parseSecret(s string) ([]byte, error) {
	secret, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "secret must be hex")
	}
	if len(secret) != notes.SecretLength {
		return nil, errors.Wrapf(errors.ErrInput, "secret must be %d bytes", notes.SecretLength)
	}
	return secret, nil
}
