package feeroutetest

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
)

// Tx is a mock implementing the feeroute.Tx interface.
type Tx struct {
	// Msg is the message held by this transaction.
	Msg feeroute.Msg

	// Err, if set, is returned by both GetMsg and the serialization
	// methods.
	Err error
}

var _ feeroute.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (feeroute.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	if tx.Msg == nil {
		return errors.Wrap(errors.ErrState, "no message to deserialize into")
	}
	return tx.Msg.Unmarshal(raw)
}

// Msg is a mock implementing the feeroute.Msg interface.
type Msg struct {
	// RoutePath is returned by Path.
	RoutePath string

	// Serialized is the raw representation returned by Marshal.
	Serialized []byte

	// Err, if set, is returned by Marshal, Unmarshal and Validate.
	Err error
}

var _ feeroute.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	if m.Err == nil {
		m.Serialized = raw
	}
	return m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}
