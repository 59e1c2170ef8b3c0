package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/notetest"
	"github.com/tss-labs/notepool/store"
	"github.com/tss-labs/notepool/x/utils"
)

// panicAtHeight panics when the block height is above the limit.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Checker) (*notepool.CheckResult, error) {
	if h, _ := notepool.GetHeight(ctx); h > int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Deliverer) (*notepool.DeliverResult, error) {
	if h, _ := notepool.GetHeight(ctx); h > int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	c1 := &notetest.Decorator{}
	c2 := &notetest.Decorator{}
	c3 := &notetest.Decorator{}
	h := &notetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	db := store.MemStore()
	tx := &notetest.Tx{Msg: &notetest.Msg{}}

	_, err := stack.Check(notepool.WithHeight(context.Background(), 4), db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(notepool.WithHeight(context.Background(), 4), db, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// panics are recovered into errors and stop the chain
	ctx := notepool.WithHeight(context.Background(), 8)
	_, err = stack.Check(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainNilDecorators(t *testing.T) {
	var missing *notetest.Decorator
	d := &notetest.Decorator{}
	h := &notetest.Handler{}

	stack := ChainDecorators(nil, d, missing).Chain(nil).WithHandler(h)
	_, err := stack.Deliver(context.Background(), store.MemStore(), &notetest.Tx{Msg: &notetest.Msg{}})
	require.NoError(t, err)
	assert.Equal(t, 1, d.CallCount())
	assert.Equal(t, 1, h.CallCount())
}

func TestChainStopsOnDecoratorError(t *testing.T) {
	d := &notetest.Decorator{CheckErr: errors.ErrUnauthorized}
	h := &notetest.Handler{}

	stack := ChainDecorators(d).WithHandler(h)
	_, err := stack.Check(context.Background(), store.MemStore(), &notetest.Tx{Msg: &notetest.Msg{}})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, h.CallCount())
}
