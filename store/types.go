package store

import (
	feeroute "github.com/meteorroute/feeroute"
)

// Aliases for the storage interfaces defined in the root package, so
// that implementations can be written without the extra import.
type (
	ReadOnlyKVStore  = feeroute.ReadOnlyKVStore
	KVStore          = feeroute.KVStore
	CacheableKVStore = feeroute.CacheableKVStore
	KVCacheWrap      = feeroute.KVCacheWrap
	Iterator         = feeroute.Iterator
)
