package orm

import (
	"github.com/tss-labs/notepool"
	"github.com/tss-labs/notepool/errors"
)

// queryPrefix returns all models stored under the given prefix.
func queryPrefix(db notepool.ReadOnlyKVStore, prefix []byte) ([]notepool.Model, error) {
	itr, err := db.Iterator(prefix, prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// ConsumeIterator will read all remaining data into an
// array and release the iterator
func ConsumeIterator(itr notepool.Iterator) ([]notepool.Model, error) {
	defer itr.Release()

	var res []notepool.Model
	for {
		key, value, err := itr.Next()
		switch {
		case err == nil:
			res = append(res, notepool.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// prefixRange returns the exclusive end of an iteration over all keys
// starting with prefix, or nil when there is no upper bound.
func prefixRange(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
