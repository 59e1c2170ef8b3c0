package notes

import "github.com/tss-labs/notepool/errors"

var (
	ErrDuplicateCommitment = errors.Register(300, "duplicate commitment")
	ErrUnknownNote         = errors.Register(301, "unknown note")
	ErrAlreadyRedeemed     = errors.Register(302, "note already redeemed")
)
