package client

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/stellar/go/exp/crypto/derivation"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/crypto"
	"github.com/tss-labs/notepool/errors"
)

// DefaultKeyPath is the SLIP-10 path used when none is given.
const DefaultKeyPath = "m/44'/1'/0'"

// GenerateKey returns a new random private key.
func GenerateKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// DeriveKey derives a private key from a seed along a hardened SLIP-10
// path, such as "m/44'/1'/0'".
func DeriveKey(seed []byte, path string) (*crypto.PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return crypto.PrivKeyEd25519FromSeed(k.Key), nil
}

// Address returns the ledger address controlled by the key.
func Address(key *crypto.PrivateKey) notepool.Address {
	return key.PublicKey().Address()
}

type keyFile struct {
	Secret *crypto.PrivateKey `json:"secret"`
}

// LoadKey reads a private key written by SaveKey.
func LoadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "key file %s", path)
		}
		return nil, errors.Wrapf(errors.ErrInput, "read key file: %s", err)
	}
	var f keyFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key file %s: %s", path, err)
	}
	if f.Secret == nil {
		return nil, errors.Wrapf(errors.ErrEmpty, "key file %s", path)
	}
	return f.Secret, nil
}

// SaveKey writes the key to path, readable by the owner only. An existing
// file is never overwritten.
func SaveKey(path string, key *crypto.PrivateKey) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "key file %s", path)
	}
	raw, err := json.MarshalIndent(keyFile{Secret: key}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "key dir: %s", err)
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "write key file: %s", err)
	}
	return nil
}
