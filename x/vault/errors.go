package vault

import "github.com/tss-labs/notepool/errors"

var (
	ErrInsufficientAllowance = errors.Register(200, "insufficient allowance")
	ErrInsufficientBalance   = errors.Register(201, "insufficient balance")
	ErrInsufficientEscrow    = errors.Register(202, "insufficient escrow")
)
