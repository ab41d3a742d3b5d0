package feeroute

// Event is implemented by all observable facts a handler can emit.
// Events are collected on the DeliverResult and published by the
// surrounding application after the call state was committed. A failed
// call publishes nothing.
type Event interface {
	// EventType returns a short, stable identifier of this event kind.
	EventType() string
}

// CheckResult is the result of a call dry-run.
type CheckResult struct {
	// GasAllocated is the maximum units of work we allow this call to
	// perform.
	GasAllocated int64
}

// DeliverResult captures any non-error effect of an executed call.
type DeliverResult struct {
	// Data is a machine-parseable return value, like an ID of the
	// created entity.
	Data []byte

	// Log is a human readable success message.
	Log string

	// GasUsed is the units of work consumed by the call.
	GasUsed int64

	// Events lists every observable fact produced by this call, in
	// emission order. Either all of them happened, or the call failed
	// and none did.
	Events []Event
}
