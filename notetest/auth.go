package notetest

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/tss-labs/notepool"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer notepool.Condition

	// Signers represents an authentication of multiple signers.
	Signers []notepool.Condition
}

func (a *Auth) GetConditions(notepool.Context) []notepool.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx notepool.Context, addr notepool.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx notepool.Context, permissions ...notepool.Condition) notepool.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx notepool.Context) []notepool.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]notepool.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []notepool.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx notepool.Context, addr notepool.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

var condCounter uint64

// NewCondition returns a condition that is unique within the test process.
func NewCondition() notepool.Condition {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, atomic.AddUint64(&condCounter, 1))
	return notepool.NewCondition("test", "mock", data)
}
