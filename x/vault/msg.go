package vault

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
)

const (
	pathApproveMsg  = "vault/approve"
	pathTransferMsg = "vault/transfer"
	pathMintMsg     = "vault/mint"
	pathBurnMsg     = "vault/burn"
)

// ApproveMsg sets how much of the owner's asset the spender may pull.
type ApproveMsg struct {
	Owner   notepool.Address `json:"owner"`
	Asset   string           `json:"asset"`
	Spender notepool.Address `json:"spender"`
	Amount  coin.Amount      `json:"amount"`
}

var _ notepool.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "owner: "+err.Error())
	}
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "spender: "+err.Error())
	}
	return validateAsset(m.Asset)
}

// TransferMsg moves funds between two accounts.
type TransferMsg struct {
	Asset  string           `json:"asset"`
	From   notepool.Address `json:"from"`
	To     notepool.Address `json:"to"`
	Amount coin.Amount      `json:"amount"`
}

var _ notepool.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "from: "+err.Error())
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "to: "+err.Error())
	}
	if err := validateAsset(m.Asset); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MintMsg credits the vault owner.
type MintMsg struct {
	Asset  string      `json:"asset"`
	Amount coin.Amount `json:"amount"`
}

var _ notepool.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string {
	return pathMintMsg
}

func (m *MintMsg) Validate() error {
	if err := validateAsset(m.Asset); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// BurnMsg debits the vault owner.
type BurnMsg struct {
	Asset  string      `json:"asset"`
	Amount coin.Amount `json:"amount"`
}

var _ notepool.Msg = (*BurnMsg)(nil)

func (BurnMsg) Path() string {
	return pathBurnMsg
}

func (m *BurnMsg) Validate() error {
	if err := validateAsset(m.Asset); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

func validateAsset(asset string) error {
	if !coin.IsTicker(asset) {
		return errors.Wrapf(errors.ErrMsg, "invalid asset %q", asset)
	}
	return nil
}

func validateAmount(amount coin.Amount) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	return nil
}
