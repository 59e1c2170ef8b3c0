package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool/errors"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisFile returns the path of the tendermint genesis file under home.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd adds the app_state generated by gen to the genesis file that
// `tendermint init` created under home. An existing app_state is only
// replaced with -f.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	force := len(args) > 0 && args[0] == "-f"
	if force {
		args = args[1:]
	}

	genFile := GenesisFile(home)
	doc, err := readGenesis(genFile)
	if err != nil {
		return err
	}
	if state, ok := doc["app_state"]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrapf(errors.ErrState, "app_state already set in %s, use -f to overwrite", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	doc["app_state"] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrapf(errors.ErrHuman, "write %s: %s", genFile, err)
	}
	logger.Info("App state written to genesis", "path", genFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func readGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", filename)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "read %s: %s", filename, err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse %s: %s", filename, err)
	}
	return doc, nil
}
