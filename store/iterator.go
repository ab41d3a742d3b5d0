package store

import (
	"bytes"

	"github.com/meteorroute/feeroute/errors"
)

// sliceIterator walks over an in-memory snapshot of items.
type sliceIterator struct {
	items []item
}

var _ Iterator = (*sliceIterator)(nil)

func (s *sliceIterator) Next() (key, value []byte, err error) {
	if len(s.items) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	i := s.items[0]
	s.items = s.items[1:]
	return i.key, i.value, nil
}

func (s *sliceIterator) Release() {
	s.items = nil
}

// cacheIterator merges a snapshot of buffered items with a backing
// store iterator. A buffered item always shadows a backing entry under
// the same key, and buffered deletes hide backing entries entirely.
type cacheIterator struct {
	cached []item
	back   Iterator

	// One backing entry read ahead, valid until consumed.
	bkey, bval []byte
	bloaded    bool
	bdone      bool
}

var _ Iterator = (*cacheIterator)(nil)

func (c *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if !c.bloaded && !c.bdone {
			k, v, err := c.back.Next()
			switch {
			case err == nil:
				c.bkey, c.bval = k, v
				c.bloaded = true
			case errors.ErrIteratorDone.Is(err):
				c.bdone = true
			default:
				return nil, nil, err
			}
		}

		switch {
		case len(c.cached) == 0 && c.bdone:
			return nil, nil, errors.ErrIteratorDone
		case len(c.cached) == 0:
			c.bloaded = false
			return c.bkey, c.bval, nil
		case c.bdone:
			i := c.popCached()
			if i.deleted {
				continue
			}
			return i.key, i.value, nil
		}

		switch cmp := bytes.Compare(c.cached[0].key, c.bkey); {
		case cmp < 0:
			i := c.popCached()
			if i.deleted {
				continue
			}
			return i.key, i.value, nil
		case cmp == 0:
			// Buffered entry shadows the backing one.
			c.bloaded = false
			i := c.popCached()
			if i.deleted {
				continue
			}
			return i.key, i.value, nil
		default:
			c.bloaded = false
			return c.bkey, c.bval, nil
		}
	}
}

func (c *cacheIterator) popCached() item {
	i := c.cached[0]
	c.cached = c.cached[1:]
	return i
}

func (c *cacheIterator) Release() {
	c.cached = nil
	c.back.Release()
}
