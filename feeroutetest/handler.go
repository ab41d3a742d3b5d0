package feeroutetest

import (
	"sync"

	feeroute "github.com/meteorroute/feeroute"
)

// Handler implements the feeroute.Handler interface, remembering how
// many times it was called and returning declared results.
type Handler struct {
	mu sync.Mutex

	checkCall   int
	deliverCall int

	// CheckResult is returned by every Check call.
	CheckResult feeroute.CheckResult
	// CheckErr if set is returned by every Check call.
	CheckErr error

	// DeliverResult is returned by every Deliver call.
	DeliverResult feeroute.DeliverResult
	// DeliverErr if set is returned by every Deliver call.
	DeliverErr error
}

var _ feeroute.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.CheckResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.checkCall++
	return &h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.DeliverResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.deliverCall++
	return &h.DeliverResult, h.DeliverErr
}

// CheckCallCount returns the number of times Check was called.
func (h *Handler) CheckCallCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.checkCall
}

// DeliverCallCount returns the number of times Deliver was called.
func (h *Handler) DeliverCallCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deliverCall
}

// CallCount returns the total number of calls of both kinds.
func (h *Handler) CallCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.checkCall + h.deliverCall
}
