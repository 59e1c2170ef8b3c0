package notes

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/x/vault"
)

const (
	pathCommitMsg = "notes/commit"
	pathRedeemMsg = "notes/redeem"
)

// CommitMsg locks funds of the depositor behind a commitment.
type CommitMsg struct {
	Depositor  notepool.Address `json:"depositor"`
	Asset      string           `json:"asset"`
	Amount     coin.Amount      `json:"amount"`
	Commitment []byte           `json:"commitment"`
}

var _ notepool.Msg = (*CommitMsg)(nil)

func (CommitMsg) Path() string {
	return pathCommitMsg
}

func (m *CommitMsg) Validate() error {
	if err := m.Depositor.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "depositor: "+err.Error())
	}
	if !coin.IsTicker(m.Asset) {
		return errors.Wrapf(errors.ErrMsg, "invalid asset %q", m.Asset)
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	if err := validateCommitment(m.Commitment); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}

// RedeemMsg reveals the secret of a note and names where to pay it.
type RedeemMsg struct {
	Secret      []byte           `json:"secret"`
	Destination notepool.Address `json:"destination"`
}

var _ notepool.Msg = (*RedeemMsg)(nil)

func (RedeemMsg) Path() string {
	return pathRedeemMsg
}

func (m *RedeemMsg) Validate() error {
	if err := validateSecret(m.Secret); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "destination: "+err.Error())
	}
	if m.Destination.Equals(vault.PoolAddress) {
		return errors.Wrap(errors.ErrInput, "destination is the vault pool")
	}
	return nil
}
