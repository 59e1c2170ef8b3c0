package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWallet knows no chain until it is added.
type fakeWallet struct {
	mu      sync.Mutex
	known   map[string]bool
	methods []string
}

func (f *fakeWallet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var param struct {
		ChainID string `json:"chainId"`
	}
	if len(req.Params) == 1 {
		_ = json.Unmarshal(req.Params[0], &param)
	}

	f.mu.Lock()
	f.methods = append(f.methods, req.Method)
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	switch req.Method {
	case "wallet_addEthereumChain":
		f.known[param.ChainID] = true
		resp["result"] = nil
	case "wallet_switchEthereumChain":
		if f.known[param.ChainID] {
			resp["result"] = nil
		} else {
			resp["error"] = map[string]interface{}{"code": 4902, "message": "Unrecognized chain ID"}
		}
	default:
		resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestWalletEnvironment(t *testing.T) {
	wallet := &fakeWallet{known: map[string]bool{}}
	srv := httptest.NewServer(wallet)
	defer srv.Close()

	ctx := context.Background()
	env, err := DialWallet(ctx, srv.URL)
	require.NoError(t, err)
	defer env.Close()

	err = env.SwitchChain(ctx, ArbitrumSepolia)
	require.True(t, ErrUnknownChain.Is(err), "unexpected error: %+v", err)

	r, err := NewRegistry(env)
	require.NoError(t, err)
	p, err := r.SwitchTo(ctx, ArbitrumSepolia.ChainID)
	require.NoError(t, err)
	assert.Equal(t, ArbitrumSepolia.Name, p.Name)

	assert.Equal(t, []string{
		"wallet_switchEthereumChain",
		"wallet_switchEthereumChain",
		"wallet_addEthereumChain",
		"wallet_switchEthereumChain",
	}, wallet.methods)

	// once known the chain switches at the first attempt
	_, err = r.SwitchTo(ctx, ArbitrumSepolia.ChainID)
	require.NoError(t, err)
	assert.Len(t, wallet.methods, 5)
}
