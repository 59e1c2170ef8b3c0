package notetest

import (
	"github.com/tss-labs/notepool"
)

// Handler is a mock that counts calls and returns configured results.
type Handler struct {
	checkCall   int
	CheckResult notepool.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult notepool.DeliverResult
	DeliverErr    error

	// Write, if set, is stored in the database on every call.
	Write *notepool.Model
}

var _ notepool.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db notepool.KVStore) error {
	if h.Write == nil {
		return nil
	}
	return db.Set(h.Write.Key, h.Write.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a mock that counts calls and may fail before calling next.
type Decorator struct {
	checkCall   int
	CheckErr    error
	deliverCall int
	DeliverErr  error
}

var _ notepool.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Checker) (*notepool.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx, next notepool.Deliverer) (*notepool.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls d before h.
func Decorate(h notepool.Handler, d notepool.Decorator) notepool.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn notepool.Handler
	dc notepool.Decorator
}

func (d *decoratedHandler) Check(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx notepool.Context, db notepool.KVStore, tx notepool.Tx) (*notepool.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
