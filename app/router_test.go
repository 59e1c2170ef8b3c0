package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool/errors"
	"github.com/tss-labs/notepool/notetest"
	"github.com/tss-labs/notepool/store"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &notetest.Handler{}
	bad := &notetest.Handler{CheckErr: errors.ErrAmount, DeliverErr: errors.ErrAmount}
	r.Handle("test/good", good)
	r.Handle("test/bad", bad)

	assert.Panics(t, func() { r.Handle("test/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })
	assert.Panics(t, func() { r.Handle("", good) })

	cases := map[string]struct {
		tx      *notetest.Tx
		wantErr *errors.Error
	}{
		"registered path": {
			tx: &notetest.Tx{Msg: &notetest.Msg{RoutePath: "test/good"}},
		},
		"handler error is returned": {
			tx:      &notetest.Tx{Msg: &notetest.Msg{RoutePath: "test/bad"}},
			wantErr: errors.ErrAmount,
		},
		"unknown path": {
			tx:      &notetest.Tx{Msg: &notetest.Msg{RoutePath: "test/missing"}},
			wantErr: errors.ErrNotFound,
		},
		"message cannot be loaded": {
			tx:      &notetest.Tx{Err: errors.ErrType},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			_, err := r.Check(context.Background(), db, tc.tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("check: want %+v error, got %+v", tc.wantErr, err)
			}
			_, err = r.Deliver(context.Background(), db, tc.tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: want %+v error, got %+v", tc.wantErr, err)
			}
		})
	}

	require.Equal(t, 2, good.CallCount())
	require.Equal(t, 2, bad.CallCount())
}
