package store

import "github.com/tss-labs/notepool"

// The store interfaces are declared in the root package so that handlers can
// name them without importing this one. The aliases below let the
// implementations in this package and its tests use short names.
type (
	ReadOnlyKVStore  = notepool.ReadOnlyKVStore
	SetDeleter       = notepool.SetDeleter
	KVStore          = notepool.KVStore
	Batch            = notepool.Batch
	Iterator         = notepool.Iterator
	CacheableKVStore = notepool.CacheableKVStore
	KVCacheWrap      = notepool.KVCacheWrap
	CommitKVStore    = notepool.CommitKVStore
	CommitID         = notepool.CommitID
	Model            = notepool.Model
)
