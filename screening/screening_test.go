package screening

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-labs/notepool/errors"
)

type staticQuerier struct {
	n   uint64
	err error
}

func (q staticQuerier) Activity(context.Context, string) (uint64, error) {
	return q.n, q.err
}

// stallingQuerier blocks until the context is done.
type stallingQuerier struct{}

func (stallingQuerier) Activity(ctx context.Context, _ string) (uint64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

const (
	hexAddr    = "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d"
	base58Addr = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
)

func TestCheckFormat(t *testing.T) {
	cases := map[string]struct {
		address string
		family  Family
		wantErr *errors.Error
	}{
		"hex with prefix": {
			address: hexAddr,
			family:  FamilyHex,
		},
		"hex without prefix": {
			address: hexAddr[2:],
			family:  FamilyHex,
		},
		"hex too short": {
			address: hexAddr[:40],
			family:  FamilyHex,
			wantErr: ErrFormat,
		},
		"hex with invalid digit": {
			address: "0x75faf114eafb1BDbe2F0316DF893fd58CE46AAzz",
			family:  FamilyHex,
			wantErr: ErrFormat,
		},
		"base58 key": {
			address: base58Addr,
			family:  FamilyBase58,
		},
		"base58 too short": {
			address: "4Nd1mBQtrMJVYVfKf2PJy9",
			family:  FamilyBase58,
			wantErr: ErrFormat,
		},
		"base58 with forbidden character": {
			address: "0Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T",
			family:  FamilyBase58,
			wantErr: ErrFormat,
		},
		"hex address is not base58": {
			address: hexAddr,
			family:  FamilyBase58,
			wantErr: ErrFormat,
		},
		"unknown family": {
			address: hexAddr,
			family:  Family(42),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := CheckFormat(tc.address, tc.family)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestScreen(t *testing.T) {
	cases := map[string]struct {
		address string
		querier ActivityQuerier
		want    Classification
		blocks  bool
	}{
		"active address is safe": {
			address: hexAddr,
			querier: staticQuerier{n: 7},
			want:    Safe,
		},
		"unused address warns": {
			address: hexAddr,
			querier: staticQuerier{n: 0},
			want:    Warning,
		},
		"malformed address blocks": {
			address: "0x1234",
			querier: staticQuerier{n: 7},
			want:    FormatError,
			blocks:  true,
		},
		"lookup failure is indeterminate": {
			address: hexAddr,
			querier: staticQuerier{err: errors.ErrNetwork},
			want:    Indeterminate,
		},
		"timeout is indeterminate": {
			address: hexAddr,
			querier: stallingQuerier{},
			want:    Indeterminate,
		},
		"no querier is indeterminate": {
			address: hexAddr,
			want:    Indeterminate,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := NewScreener(20 * time.Millisecond)
			if tc.querier != nil {
				s.WithQuerier(FamilyHex, tc.querier)
			}
			res := s.Screen(context.Background(), tc.address, FamilyHex)
			assert.Equal(t, tc.want, res.Classification, res.Detail)
			assert.Equal(t, tc.blocks, res.Blocks())
		})
	}
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("solana")
	require.NoError(t, err)
	assert.Equal(t, FamilyBase58, f)

	f, err = ParseFamily("EVM")
	require.NoError(t, err)
	assert.Equal(t, FamilyHex, f)

	_, err = ParseFamily("morse")
	assert.True(t, errors.ErrInput.Is(err))
}

// jsonRPC serves canned results per method and echoes request ids.
func jsonRPC(t *testing.T, results map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, ok := results[req.Method]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  res,
		})
	}))
}

func TestEVMQuerier(t *testing.T) {
	srv := jsonRPC(t, map[string]interface{}{
		"eth_getTransactionCount": "0x5",
	})
	defer srv.Close()

	ctx := context.Background()
	q, err := DialEVM(ctx, srv.URL)
	require.NoError(t, err)
	defer q.Close()

	n, err := q.Activity(ctx, hexAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
}

func TestSolanaQuerier(t *testing.T) {
	used := jsonRPC(t, map[string]interface{}{
		"getSignaturesForAddress": []map[string]string{{"signature": "5h6xBEauJ3PK6SWC"}},
	})
	defer used.Close()
	unused := jsonRPC(t, map[string]interface{}{
		"getSignaturesForAddress": []map[string]string{},
	})
	defer unused.Close()

	ctx := context.Background()

	q, err := DialSolana(ctx, used.URL)
	require.NoError(t, err)
	defer q.Close()
	res := NewScreener(time.Second).WithQuerier(FamilyBase58, q).Screen(ctx, base58Addr, FamilyBase58)
	assert.Equal(t, Safe, res.Classification, res.Detail)

	q, err = DialSolana(ctx, unused.URL)
	require.NoError(t, err)
	defer q.Close()
	res = NewScreener(time.Second).WithQuerier(FamilyBase58, q).Screen(ctx, base58Addr, FamilyBase58)
	assert.Equal(t, Warning, res.Classification, res.Detail)
}
