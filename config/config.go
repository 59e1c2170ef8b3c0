/*
Package config loads the client configuration.

Values come from the embedded defaults, then an optional TOML file, then
environment variables prefixed with NOTEPOOL_, for example
NOTEPOOL_NODE_URL or NOTEPOOL_POLL_INTERVAL.
*/
package config

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/network"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "NOTEPOOL"

// Config struct
type Config struct {
	Log       LogConfig
	Node      NodeConfig
	Keys      KeysConfig
	Network   NetworkConfig
	Screening ScreeningConfig
	Poll      PollConfig
}

// LogConfig sets the minimal level that is printed.
type LogConfig struct {
	Level string
}

// NodeConfig points to the ledger node.
type NodeConfig struct {
	URL string
	// ChainID is asked from the node when empty.
	ChainID string
}

// KeysConfig locates the signing key. An empty path means the default
// file in the home directory.
type KeysConfig struct {
	Path string
}

// NetworkConfig selects the settlement chain and adds custom profiles.
type NetworkConfig struct {
	ChainID   uint64
	WalletURL string
	Profiles  []network.Profile
}

// ScreeningConfig configures the destination screening.
type ScreeningConfig struct {
	Timeout   time.Duration
	EVMURL    string
	SolanaURL string
}

// PollConfig configures the balance refresh.
type PollConfig struct {
	Interval time.Duration
}

// Load reads the defaults and overrides them with the file at path, if
// given, and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewBufferString(DefaultValues)); err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "defaults: %s", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "config file %s: %s", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode config: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.Node.URL == "" {
		return errors.Wrap(errors.ErrEmpty, "node url")
	}
	if c.Screening.Timeout <= 0 {
		return errors.Wrap(errors.ErrInput, "screening timeout must be positive")
	}
	if c.Poll.Interval <= 0 {
		return errors.Wrap(errors.ErrInput, "poll interval must be positive")
	}
	for _, p := range c.Network.Profiles {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "network profile %d", p.ChainID)
		}
	}
	return nil
}

// Logger returns a logger writing to w at the configured level.
func (c LogConfig) Logger(w io.Writer) (log.Logger, error) {
	level, err := log.AllowLevel(strings.ToLower(c.Level))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), level), nil
}
