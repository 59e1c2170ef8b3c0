package notes

import (
	"crypto/rand"

	"github.com/tss-labs/notepool/errors"
	"golang.org/x/crypto/sha3"
)

const (
	// SecretLength is the size of a note secret in bytes.
	SecretLength = 16
	// CommitmentLength is the size of a commitment in bytes.
	CommitmentLength = 32
)

// Commitment returns keccak256(secret).
func Commitment(secret []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(secret)
	return h.Sum(nil)
}

// NewSecret returns a fresh random secret.
func NewSecret() ([]byte, error) {
	secret := make([]byte, SecretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot read randomness")
	}
	return secret, nil
}

func validateSecret(secret []byte) error {
	if len(secret) != SecretLength {
		return errors.Wrapf(errors.ErrInput, "secret must be %d bytes", SecretLength)
	}
	return nil
}

func validateCommitment(commitment []byte) error {
	if len(commitment) != CommitmentLength {
		return errors.Wrapf(errors.ErrInput, "commitment must be %d bytes", CommitmentLength)
	}
	return nil
}
