package client

import (
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/screening"
	"github.com/tss-labs/notepool/x/notes"
)

// ErrAborted is returned when the user declines to redeem to a destination
// flagged by screening.
var ErrAborted = errors.Register(600, "aborted by user")

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// ResponseQuery is used for the query interface to mirror the abci query interface
type ResponseQuery = abci.ResponseQuery

// CommitResult is returned from the block (DeliverTx)
// Result is only set on success codes, Err is set if it was a failure code
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *notepool.DeliverResult
	Err    error
}

// Status is the current status of the node we connect to.
type Status struct {
	ChainID    string
	Height     int64
	CatchingUp bool
}

// Deposit is everything needed to redeem a freshly committed note. Secret
// is the only way to spend the note and is never sent to the ledger until
// redemption.
type Deposit struct {
	Secret     []byte
	Commitment []byte
	NoteID     []byte
	Asset      string
	Amount     coin.Amount
}

// Redemption is the result of a redeem call. Screening is the zero value if
// no screener is configured.
type Redemption struct {
	Outcome   *notes.Outcome
	Screening screening.Result
}

// RedeemOptions tunes a single redemption.
type RedeemOptions struct {
	// Confirm is asked when screening returns a warning. A false answer
	// aborts the redemption. With a nil Confirm the warning is only logged.
	Confirm func(screening.Result) bool
}
