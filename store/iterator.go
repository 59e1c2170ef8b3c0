package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/tss-labs/notepool/errors"
)

// collectRange returns a snapshot of all btree items within [start, end)
// in ascending order. A nil bound is open.
func collectRange(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// source marks where the next item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// itemIter joins the cached items with those of the parent,
// taking into consideration overwrites and deletes.
type itemIter struct {
	parent    Iterator
	ascending bool

	// one item lookahead over the parent
	pKey, pValue []byte
	pLoaded      bool
	pDone        bool

	items []keyer
	idx   int
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(parent Iterator, items []keyer, ascending bool) *itemIter {
	return &itemIter{
		parent:    parent,
		ascending: ascending,
		items:     items,
	}
}

// Next returns the next visible key, skipping deleted entries.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.loadParent(); err != nil {
			return nil, nil, err
		}
		switch i.firstKey() {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case parent:
			key, value = i.pKey, i.pValue
			i.pLoaded = false
			return key, value, nil
		case both:
			// cached value shadows the parent
			i.pLoaded = false
			fallthrough
		case us:
			item := i.items[i.idx]
			i.idx++
			if set, ok := item.(setItem); ok {
				return set.key, set.value, nil
			}
			// deleted, move on
		}
	}
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	i.parent.Release()
	i.items = nil
}

func (i *itemIter) loadParent() error {
	if i.pLoaded || i.pDone {
		return nil
	}
	k, v, err := i.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		i.pDone = true
		return nil
	case err != nil:
		return err
	}
	i.pKey, i.pValue, i.pLoaded = k, v, true
	return nil
}

// firstKey selects the source holding the next key in iteration order.
func (i *itemIter) firstKey() source {
	hasUs := i.idx < len(i.items)
	switch {
	case !i.pLoaded && !hasUs:
		return none
	case !i.pLoaded:
		return us
	case !hasUs:
		return parent
	}

	cmp := bytes.Compare(i.pKey, i.items[i.idx].Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
