package client

import (
	"context"
	"sync"
	"time"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/coin"
)

// DefaultPollInterval is how often a Poller refreshes if not told otherwise.
const DefaultPollInterval = 10 * time.Second

// Snapshot is one refreshed view of an account.
type Snapshot struct {
	Asset    string
	Address  notepool.Address
	Balance  coin.Amount
	Escrowed coin.Amount
	At       time.Time
}

type watch struct {
	asset string
	addr  notepool.Address
}

// Poller refreshes balances and escrow totals at a fixed interval. It only
// reads. A failed read is logged and skipped until the next tick.
type Poller struct {
	client   *Client
	interval time.Duration
	logger   log.Logger

	mu      sync.Mutex
	watches []watch
}

// NewPoller returns a poller over c. A non positive interval means
// DefaultPollInterval.
func NewPoller(c *Client, interval time.Duration, logger log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Poller{
		client:   c,
		interval: interval,
		logger:   logger.With("module", "poller"),
	}
}

// Watch adds the balance of addr in asset to every refresh.
func (p *Poller) Watch(asset string, addr notepool.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watches = append(p.watches, watch{asset: asset, addr: addr})
}

// Run refreshes right away and then at every tick, passing each successful
// snapshot to fn. It returns when ctx is done.
func (p *Poller) Run(ctx context.Context, fn func(Snapshot)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		for _, s := range p.Poll(ctx) {
			fn(s)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll does a single refresh of all watches and returns the snapshots that
// could be read.
func (p *Poller) Poll(ctx context.Context) []Snapshot {
	p.mu.Lock()
	watches := append([]watch(nil), p.watches...)
	p.mu.Unlock()

	var snaps []Snapshot
	for _, w := range watches {
		bal, err := p.client.Balance(ctx, w.asset, w.addr)
		if err != nil {
			p.logger.Error("cannot read balance", "asset", w.asset, "address", w.addr.String(), "err", err)
			continue
		}
		escrowed, err := p.client.Escrowed(ctx, w.asset)
		if err != nil {
			p.logger.Error("cannot read escrow", "asset", w.asset, "err", err)
			continue
		}
		snaps = append(snaps, Snapshot{
			Asset:    w.asset,
			Address:  w.addr,
			Balance:  bal,
			Escrowed: escrowed,
			At:       time.Now().UTC(),
		})
	}
	return snaps
}
