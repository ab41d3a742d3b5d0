package app

import (
	"regexp"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
)

var isRoute = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router maps a message path to exactly one handler.
type Router struct {
	handlers map[string]feeroute.Handler
}

var _ feeroute.Registry = (*Router)(nil)

func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]feeroute.Handler),
	}
}

// Handle registers a handler under the given path. Registering twice
// for the same path or using an invalid path is a programmer error and
// panics during setup.
func (r *Router) Handle(path string, h feeroute.Handler) {
	if !isRoute(path) {
		panic("route must be alphanumeric with optional underscore and slash: " + path)
	}
	if _, ok := r.handlers[path]; ok {
		panic("re-registering route: " + path)
	}
	r.handlers[path] = h
}

// Handler returns the handler registered for the path, or a handler
// that fails every call with ErrNotFound.
func (r *Router) Handler(path string) feeroute.Handler {
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

type notFoundHandler string

func (h notFoundHandler) Check(feeroute.Context, feeroute.KVStore, feeroute.Tx) (*feeroute.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(h))
}

func (h notFoundHandler) Deliver(feeroute.Context, feeroute.KVStore, feeroute.Tx) (*feeroute.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(h))
}
