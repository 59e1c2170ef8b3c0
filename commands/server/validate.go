package server

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/store"
)

// ValidateGenesis loads the app_state of every genesis file into a
// throwaway store and returns the first error.
func ValidateGenesis(ini notepool.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "no genesis file given")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini notepool.Initializer, genesisPath string) error {
	doc, err := readGenesis(genesisPath)
	if err != nil {
		return err
	}
	var state notepool.Options
	if err := notepool.Options(doc).ReadOptions("app_state", &state); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(state) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(state, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
