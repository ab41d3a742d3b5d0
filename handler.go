package feeroute

import (
	"reflect"

	"github.com/meteorroute/feeroute/errors"
)

// Msg is a request to make a state transition. It is just the payload;
// all authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path. This is used by the router to
	// locate the proper Handler. Must be alphanumeric [0-9A-Za-z_/]+
	Path() string

	// Validate returns an error if the message content is not valid.
	// This is a stateless check, run before any handler logic.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshaller, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the caller to the engine. It
// includes the actual message, along with information needed to
// authenticate the sender.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a
// transaction. It is its own interface to allow better type controls.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of
// a router.
type Registry interface {
	Handle(path string, h Handler)
}

// LoadMsg extracts the message from the transaction, validates it and
// loads it into given destination. Destination must be a non-nil
// pointer of the same type as the transported message.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dval := reflect.ValueOf(destination)
	if dval.Kind() != reflect.Ptr || dval.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non-nil pointer")
	}
	mval := reflect.ValueOf(msg)
	if dval.Type() != mval.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dval.Elem().Set(mval.Elem())
	return nil
}
