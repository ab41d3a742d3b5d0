/*
Package bolt provides a bbolt backed KVStore, used to keep engine state
durable across process restarts. CacheWrap buffers a whole state
transition and commits it in a single bolt transaction, so a crash can
never leave a half-written call behind.
*/
package bolt

import (
	"bytes"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/store"
)

var bucketState = []byte("state")

// Store is a CacheableKVStore persisted in a bbolt file.
type Store struct {
	db *bbolt.DB
}

var _ feeroute.CacheableKVStore = (*Store)(nil)

// Open opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, errors.Wrap(err, "cannot create directory")
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// Bolt memory is only valid inside the transaction, so the
		// value must be copied out.
		if raw := tx.Bucket(bucketState).Get(key); raw != nil {
			value = make([]byte, len(raw))
			copy(value, raw)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return value, nil
}

func (s *Store) Has(key []byte) (bool, error) {
	var has bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		has = tx.Bucket(bucketState).Get(key) != nil
		return nil
	})
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return has, nil
}

func (s *Store) Set(key, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Put(key, value)
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s *Store) Delete(key []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Delete(key)
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Iterator snapshots all keys within [start, end) in a single view
// transaction and iterates over the copy. Nil start or end means an
// open boundary.
func (s *Store) Iterator(start, end []byte) (feeroute.Iterator, error) {
	var keys, values [][]byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketState).Cursor()

		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if end != nil && bytes.Compare(k, end) >= 0 {
				break
			}
			kc := make([]byte, len(k))
			copy(kc, k)
			vc := make([]byte, len(v))
			copy(vc, v)
			keys = append(keys, kc)
			values = append(values, vc)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &snapshotIterator{keys: keys, values: values}, nil
}

// CacheWrap returns a btree cache on top of this store. Writing the
// cache applies all buffered operations in one bolt transaction.
func (s *Store) CacheWrap() feeroute.KVCacheWrap {
	batch := &batchStore{store: s}
	return &cacheWrap{
		BTreeCacheWrap: store.NewBTreeCacheWrap(batch),
		batch:          batch,
		db:             s.db,
	}
}

type cacheWrap struct {
	*store.BTreeCacheWrap
	batch *batchStore
	db    *bbolt.DB
}

// Write drains the btree buffer into the batch recorder and commits
// the whole batch atomically.
func (c *cacheWrap) Write() error {
	if err := c.BTreeCacheWrap.Write(); err != nil {
		return err
	}
	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketState)
		for _, op := range c.batch.ops {
			var err error
			if op.deleted {
				err = b.Delete(op.key)
			} else {
				err = b.Put(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	c.batch.ops = nil
	return nil
}

type batchOp struct {
	key, value []byte
	deleted    bool
}

// batchStore records writes in order and reads through to the backing
// store. The cache wrap above it answers reads from its own buffer, so
// recorded operations are never read back before the commit.
type batchStore struct {
	store *Store
	ops   []batchOp
}

var _ feeroute.KVStore = (*batchStore)(nil)

func (b *batchStore) Get(key []byte) ([]byte, error) { return b.store.Get(key) }

func (b *batchStore) Has(key []byte) (bool, error) { return b.store.Has(key) }

func (b *batchStore) Iterator(start, end []byte) (feeroute.Iterator, error) {
	return b.store.Iterator(start, end)
}

func (b *batchStore) Set(key, value []byte) error {
	b.ops = append(b.ops, batchOp{key: key, value: value})
	return nil
}

func (b *batchStore) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: key, deleted: true})
	return nil
}

type snapshotIterator struct {
	keys   [][]byte
	values [][]byte
}

func (it *snapshotIterator) Next() (key, value []byte, err error) {
	if len(it.keys) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	key, value = it.keys[0], it.values[0]
	it.keys, it.values = it.keys[1:], it.values[1:]
	return key, value, nil
}

func (it *snapshotIterator) Release() {
	it.keys, it.values = nil, nil
}
