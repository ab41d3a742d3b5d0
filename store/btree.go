package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/meteorroute/feeroute/errors"
)

const defaultBTreeDegree = 32

// item is a btree node holding either a value for a key or, in a cache
// wrap, a pending delete of that key.
type item struct {
	key     []byte
	value   []byte
	deleted bool
}

func (i item) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(item).key) < 0
}

// BTreeCacheable adds a btree-based CacheWrap to any KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a wrapper around the current store that buffers all
// modifications until Write is called on it.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore)
}

// BTreeCacheWrap buffers writes and deletes in a btree and applies them
// to the backing store on Write. Reads consult the buffer first and
// fall through to the backing store.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	back KVStore
}

var (
	_ KVStore     = (*BTreeCacheWrap)(nil)
	_ KVCacheWrap = (*BTreeCacheWrap)(nil)
)

// NewBTreeCacheWrap initializes a cache wrap on top of the given
// backing store.
func NewBTreeCacheWrap(back KVStore) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:   btree.New(defaultBTreeDegree),
		back: back,
	}
}

// CacheWrap layers another cache on top of this one, so speculative
// changes can be nested.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b)
}

// Write flushes all buffered operations to the backing store in key
// order and resets the buffer. On the first error the flush is aborted,
// which may leave the backing store with a partial write. Use a durable
// transaction below this wrap when that matters.
func (b *BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(bi btree.Item) bool {
		i := bi.(item)
		if i.deleted {
			err = b.back.Delete(i.key)
		} else {
			err = b.back.Set(i.key, i.value)
		}
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "cannot flush cache")
	}
	b.Discard()
	return nil
}

// Discard drops all buffered operations. The backing store is never
// touched.
func (b *BTreeCacheWrap) Discard() {
	b.bt.Clear(false)
}

func (b *BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(item{key: ckey(key), value: value})
	return nil
}

func (b *BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(item{key: ckey(key), deleted: true})
	return nil
}

func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if res := b.bt.Get(item{key: key}); res != nil {
		i := res.(item)
		if i.deleted {
			return nil, nil
		}
		return i.value, nil
	}
	return b.back.Get(key)
}

func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	if res := b.bt.Get(item{key: key}); res != nil {
		return !res.(item).deleted, nil
	}
	return b.back.Has(key)
}

// Iterator walks over the merged view of the buffer and the backing
// store in the half-open range [start, end). Nil start or end means an
// open boundary.
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	back, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &cacheIterator{
		cached: b.rangeSnapshot(start, end),
		back:   back,
	}, nil
}

// rangeSnapshot copies the buffered items within [start, end) into a
// slice, so that the iterator is not invalidated by later writes.
func (b *BTreeCacheWrap) rangeSnapshot(start, end []byte) []item {
	var items []item
	collect := func(bi btree.Item) bool {
		items = append(items, bi.(item))
		return true
	}
	if end == nil {
		b.bt.AscendGreaterOrEqual(item{key: start}, collect)
	} else {
		b.bt.AscendRange(item{key: start}, item{key: end}, collect)
	}
	return items
}

// ckey copies the key so that later mutation of the caller's slice
// cannot corrupt the btree ordering.
func ckey(key []byte) []byte {
	out := make([]byte, len(key))
	copy(out, key)
	return out
}

// MemStore returns an in-memory CacheableKVStore. It is the storage of
// choice for tests and for staging state that is never persisted.
func MemStore() CacheableKVStore {
	return &memStore{bt: btree.New(defaultBTreeDegree)}
}

type memStore struct {
	bt *btree.BTree
}

var _ CacheableKVStore = (*memStore)(nil)

func (m *memStore) Set(key, value []byte) error {
	m.bt.ReplaceOrInsert(item{key: ckey(key), value: value})
	return nil
}

func (m *memStore) Delete(key []byte) error {
	m.bt.Delete(item{key: key})
	return nil
}

func (m *memStore) Get(key []byte) ([]byte, error) {
	if res := m.bt.Get(item{key: key}); res != nil {
		return res.(item).value, nil
	}
	return nil, nil
}

func (m *memStore) Has(key []byte) (bool, error) {
	return m.bt.Has(item{key: key}), nil
}

func (m *memStore) Iterator(start, end []byte) (Iterator, error) {
	var items []item
	collect := func(bi btree.Item) bool {
		items = append(items, bi.(item))
		return true
	}
	if end == nil {
		m.bt.AscendGreaterOrEqual(item{key: start}, collect)
	} else {
		m.bt.AscendRange(item{key: start}, item{key: end}, collect)
	}
	return &sliceIterator{items: items}, nil
}

func (m *memStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(m)
}
