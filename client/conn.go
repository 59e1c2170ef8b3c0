package client

import (
	"context"
	"sync"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	tmtypes "github.com/tendermint/tendermint/types"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

// Conn is the minimal access to a node the client needs. Once a
// transaction is handed to BroadcastTxCommit it cannot be cancelled, the
// context is only checked before submission.
type Conn interface {
	Status(ctx context.Context) (*Status, error)
	BroadcastTxCommit(ctx context.Context, tx []byte) (*CommitResult, error)
	AbciQuery(ctx context.Context, path string, data []byte) (ResponseQuery, error)
}

// HTTPConn talks to a tendermint node over its RPC endpoint.
type HTTPConn struct {
	rpc *rpcclient.HTTP
}

var _ Conn = (*HTTPConn)(nil)

// NewHTTPConn takes a URL and sends all requests to the remote node.
func NewHTTPConn(remote string) *HTTPConn {
	return &HTTPConn{rpc: rpcclient.NewHTTP(remote, "/websocket")}
}

// Status returns the chain id and the latest height of the node.
func (c *HTTPConn) Status(ctx context.Context) (*Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	status, err := c.rpc.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err.Error())
	}
	return &Status{
		ChainID:    status.NodeInfo.Network,
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// BroadcastTxCommit submits the transaction and waits until it is part of a
// block. A transaction rejected by CheckTx never makes it into a block and is
// returned as an error.
func (c *HTTPConn) BroadcastTxCommit(ctx context.Context, tx []byte) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.rpc.BroadcastTxCommit(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast tx: %s", err.Error())
	}
	if _, err := notepool.ParseCheckOrError(res.CheckTx); err != nil {
		return nil, err
	}
	result, err := notepool.ParseDeliverOrError(res.DeliverTx)
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Result: result,
		Err:    err,
	}, nil
}

// AbciQuery runs a query against the latest committed state.
func (c *HTTPConn) AbciQuery(ctx context.Context, path string, data []byte) (ResponseQuery, error) {
	if err := ctx.Err(); err != nil {
		return ResponseQuery{}, err
	}
	res, err := c.rpc.ABCIQuery(path, data)
	if err != nil {
		return ResponseQuery{}, errors.Wrapf(errors.ErrNetwork, "query %s: %s", path, err.Error())
	}
	return res.Response, nil
}

// LocalConn drives an in-process application. Every transaction is put in
// its own block: check, begin block, deliver, end block and commit all run
// under one lock, the way a consensus engine feeds the application one call
// at a time.
type LocalConn struct {
	chainID string
	now     func() time.Time

	mu     sync.Mutex
	app    abci.Application
	height int64
}

var _ Conn = (*LocalConn)(nil)

// NewLocalConn wraps an application that already went through InitChain.
func NewLocalConn(app abci.Application, chainID string) *LocalConn {
	info := app.Info(abci.RequestInfo{})
	return &LocalConn{
		chainID: chainID,
		now:     func() time.Time { return time.Now().UTC() },
		app:     app,
		height:  info.LastBlockHeight,
	}
}

// Status returns the chain id and the height of the last block.
func (c *LocalConn) Status(ctx context.Context) (*Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Status{ChainID: c.chainID, Height: c.height}, nil
}

// BroadcastTxCommit runs the transaction through a full block.
func (c *LocalConn) BroadcastTxCommit(ctx context.Context, tx []byte) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := notepool.ParseCheckOrError(c.app.CheckTx(tx)); err != nil {
		return nil, err
	}

	height := c.height + 1
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: c.chainID,
		Height:  height,
		Time:    c.now(),
	}})
	dres := c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: height})
	c.app.Commit()
	c.height = height

	result, err := notepool.ParseDeliverOrError(dres)
	return &CommitResult{
		ID:     tmtypes.Tx(tx).Hash(),
		Height: height,
		Result: result,
		Err:    err,
	}, nil
}

// AbciQuery runs a query against the latest committed state.
func (c *LocalConn) AbciQuery(ctx context.Context, path string, data []byte) (ResponseQuery, error) {
	if err := ctx.Err(); err != nil {
		return ResponseQuery{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app.Query(abci.RequestQuery{Path: path, Data: data}), nil
}
