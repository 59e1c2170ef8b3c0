package vault

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/gconf"
)

// Configuration is stored under the "vault" key of the genesis "conf"
// section.
type Configuration struct {
	// Owner is the only account allowed to mint and burn.
	Owner notepool.Address `json:"owner"`
}

// Validate checks the owner address.
func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner address")
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "vault", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// Owner returns the configured vault owner.
func Owner(db gconf.ReadStore) (notepool.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Owner, nil
}
