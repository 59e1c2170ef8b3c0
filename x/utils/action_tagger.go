package utils

import (
	"github.com/tss-labs/notepool"
)

// ActionKey is used by ActionTagger as the Key in the Tag it appends
const ActionKey = "action"

// ActionTagger adds a tag `action = msg.Path()` to every successful
// delivery, so clients have a standard way to search the history, for
// example for all redemptions.
type ActionTagger struct{}

var _ notepool.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Checker) (*notepool.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Deliverer) (*notepool.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tag(ActionKey, msg.Path())
	return res, nil
}
