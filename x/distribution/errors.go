package distribution

import (
	"github.com/meteorroute/feeroute/errors"
)

var (
	// ErrBaseFeeDetected is returned when a claim yields any amount of
	// the non-distributable currency. This aborts the whole call
	// unconditionally, it is the core safety guarantee of the engine.
	ErrBaseFeeDetected = errors.Register(1000, "base fee detected")

	// ErrDayGateNotPassed is returned when a new day is opened before
	// 24 hours have passed since the last distribution.
	ErrDayGateNotPassed = errors.Register(1001, "day gate not passed")

	// ErrDayFinalized is returned when pages arrive for a day that was
	// already sealed.
	ErrDayFinalized = errors.Register(1002, "day already finalized")

	// ErrInvalidPagination is returned on any cursor, page hash or
	// expected page count mismatch.
	ErrInvalidPagination = errors.Register(1003, "invalid pagination state")

	// ErrMissingInput is returned when a referenced external record is
	// missing or inconsistent with the page declaration.
	ErrMissingInput = errors.Register(1004, "missing required input")

	// ErrInvalidY0 is returned when distribution math runs against a
	// zero total allocation baseline.
	ErrInvalidY0 = errors.Register(1005, "total allocation baseline is zero")

	// ErrLockedExceedsAllocation is returned when the summed locked
	// amount is larger than the configured baseline.
	ErrLockedExceedsAllocation = errors.Register(1006, "locked amount exceeds allocation")

	// ErrInvalidFeeShare is returned for fee share values above 100%.
	ErrInvalidFeeShare = errors.Register(1007, "invalid fee share")

	// ErrTransferFailed is returned when a payout cannot be executed,
	// for example the destination wallet is missing and the policy
	// forbids funding it.
	ErrTransferFailed = errors.Register(1008, "transfer failed")
)
