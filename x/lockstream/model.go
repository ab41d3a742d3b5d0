package lockstream

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
)

var _ orm.Model = (*LockRecord)(nil)

// Validate ensures the record can be persisted.
func (l *LockRecord) Validate() error {
	if err := l.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := feeroute.Address(l.Owner).Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Locked returns the currently vesting amount. A record where more was
// withdrawn than deposited is corrupt and rejected.
func (l *LockRecord) Locked() (uint64, error) {
	if l.Withdrawn > l.Deposited {
		return 0, errors.Wrap(errors.ErrOverflow, "withdrawn exceeds deposited")
	}
	return l.Deposited - l.Withdrawn, nil
}

// Oracle answers locked-amount queries for stream references. The
// distribution engine depends on this interface only, the storage
// behind it is an implementation detail.
type Oracle interface {
	// ReadLockRecord returns the vesting record behind the given
	// stream reference, or ErrNotFound for an unknown reference.
	ReadLockRecord(db feeroute.ReadOnlyKVStore, streamRef []byte) (*LockRecord, error)
}

// NewLockBucket returns the bucket holding all lock records, keyed by
// stream reference.
func NewLockBucket() orm.ModelBucket {
	return orm.NewModelBucket("lock", &LockRecord{})
}

// BucketOracle reads lock records from the local lock bucket.
type BucketOracle struct {
	bucket orm.ModelBucket
}

var _ Oracle = BucketOracle{}

// NewOracle returns an Oracle over the standard lock bucket.
func NewOracle() BucketOracle {
	return BucketOracle{bucket: NewLockBucket()}
}

func (o BucketOracle) ReadLockRecord(db feeroute.ReadOnlyKVStore, streamRef []byte) (*LockRecord, error) {
	if len(streamRef) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "stream reference")
	}
	var rec LockRecord
	if err := o.bucket.One(db, streamRef, &rec); err != nil {
		return nil, errors.Wrap(err, "cannot load lock record")
	}
	return &rec, nil
}

// SaveLockRecord persists a vesting record under the given stream
// reference. Used by provisioning and by tests.
func (o BucketOracle) SaveLockRecord(db feeroute.KVStore, streamRef []byte, rec *LockRecord) error {
	return o.bucket.Put(db, streamRef, rec)
}
