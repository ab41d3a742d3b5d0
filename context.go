package feeroute

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/meteorroute/feeroute/errors"
)

type contextKey int // local to the feeroute module

const (
	contextKeyTime contextKey = iota
	contextKeyLogger
	contextKeyHeight
)

// Context is just a typedef for easy of use, and to keep the door open
// for a custom implementation.
type Context = context.Context

// DefaultLogger is used for all context that have not set anything
// themselves
var DefaultLogger = log.NewNopLogger()

// WithBlockTime sets the call execution time on the context. There is
// no way to modify it once set, every call operates on one immutable
// "now".
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t.UTC())
}

// BlockTime returns the timestamp the currently executed call is bound
// to. An error is returned when the time was not set.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrState, "block time not present in the context")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to
// the "now" declared for the call. Expiration is inclusive.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic("block time is not present in the context")
	}
	return t <= AsUnixTime(now)
}

// WithHeight sets the execution sequence number (block height
// equivalent) on the context.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current execution sequence number if set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger stored in the context, or the
// DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}
