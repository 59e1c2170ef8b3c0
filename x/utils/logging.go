package utils

import (
	"time"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ notepool.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs everything at debug level. Rejected checks are expected
// during normal operation.
func (Logging) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Checker) (*notepool.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logger := txLogger(ctx, tx, start, err)
	logger.Debug(msg)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Deliverer) (*notepool.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start, err)
	if err != nil {
		logger.Error("deliver failed")
	} else {
		logger.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx notepool.Context, tx notepool.Tx, start time.Time, err error) log.Logger {
	l := notepool.GetLogger(ctx).With(
		"path", notepool.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	if err != nil {
		l = l.With("err", err)
	}
	return l
}
