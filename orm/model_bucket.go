package orm

import (
	"fmt"
	"reflect"
	"regexp"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using a
// ModelBucket.
type Model interface {
	feeroute.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operate on Models rather
// than raw bytes.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in
	// the database.
	One(db feeroute.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database under the given key. The
	// model is validated before being written.
	Put(db feeroute.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the
	// database. It returns ErrNotFound if an entity with given key does
	// not exist.
	Delete(db feeroute.KVStore, key []byte) error

	// Has returns whether an entity with given primary key exists.
	Has(db feeroute.ReadOnlyKVStore, key []byte) (bool, error)

	// Iterate walks all entities of this bucket in ascending key
	// order, calling fn with the entity key (without the bucket
	// prefix) and the raw serialized value.
	Iterate(db feeroute.ReadOnlyKVStore, fn func(key, value []byte) error) error
}

// NewModelBucket returns a ModelBucket instance operating directly on
// the KVStore. All keys are prefixed with the bucket name.
//
// Given model type is used to ensure that only entities of a single
// type are stored in this bucket.
func NewModelBucket(name string, model Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(model),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

// dbKey is the full key we store in the db, including prefix. We copy
// into a new array rather than use append, as we don't want consecutive
// calls to overwrite the same byte array.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) assertType(m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "%v bucket cannot hold %T", mb.name, m)
	}
	return nil
}

func (mb *modelBucket) One(db feeroute.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.assertType(dest); err != nil {
		return err
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot deserialize %T", dest)
	}
	return nil
}

func (mb *modelBucket) Put(db feeroute.KVStore, key []byte, m Model) error {
	if err := mb.assertType(m); err != nil {
		return err
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot serialize %T", m)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db feeroute.KVStore, key []byte) error {
	dbkey := mb.dbKey(key)
	ok, err := db.Has(dbkey)
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "no entity under this key")
	}
	return db.Delete(dbkey)
}

func (mb *modelBucket) Has(db feeroute.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(mb.dbKey(key))
}

func (mb *modelBucket) Iterate(db feeroute.ReadOnlyKVStore, fn func(key, value []byte) error) error {
	start, end := prefixRange(mb.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return errors.Wrap(err, "cannot create iterator")
	}
	defer it.Release()

	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			if err := fn(key[len(mb.prefix):], value); err != nil {
				return err
			}
		case errors.ErrIteratorDone.Is(err):
			return nil
		default:
			return errors.Wrap(err, "iterator")
		}
	}
}

var _ ModelBucket = (*modelBucket)(nil)

// prefixRange turns a prefix into (start, end) to create a range. In
// the case of a maxed out prefix the end is nil, meaning an open right
// boundary.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
