package feeroute

import (
	"github.com/meteorroute/feeroute/errors"
)

// Validate returns an error if the metadata is not valid. Nil metadata
// is not valid either, every persisted entity must carry one.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "no metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version missing")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing orm.Model interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
