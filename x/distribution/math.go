package distribution

import (
	"math/bits"

	"github.com/meteorroute/feeroute/errors"
)

// maxBps is 100% expressed in basis points.
const maxBps = 10_000

// EligibleBps returns the investor share of the day in basis points:
// the fraction of the allocation still locked, floored to bps and
// clamped by the policy ceiling.
func EligibleBps(totalLocked, y0 uint64, shareCeilingBps uint32) (uint32, error) {
	if y0 == 0 {
		return 0, ErrInvalidY0
	}
	if totalLocked > y0 {
		return 0, errors.Wrapf(ErrLockedExceedsAllocation, "%d > %d", totalLocked, y0)
	}

	hi, lo := bits.Mul64(totalLocked, maxBps)
	lockedBps, _ := bits.Div64(hi, lo, y0)
	if lockedBps > maxBps {
		lockedBps = maxBps
	}
	if uint64(shareCeilingBps) < lockedBps {
		return shareCeilingBps, nil
	}
	return uint32(lockedBps), nil
}

// InvestorFeeQuote returns floor(claimed * bps / 10000), the part of a
// claim owed to investors before the daily cap.
func InvestorFeeQuote(claimedQuote uint64, eligibleBps uint32) (uint64, error) {
	if eligibleBps > maxBps {
		return 0, errors.Wrapf(ErrInvalidFeeShare, "%d bps", eligibleBps)
	}
	hi, lo := bits.Mul64(claimedQuote, uint64(eligibleBps))
	quo, _ := bits.Div64(hi, lo, maxBps)
	return quo, nil
}

// ApplyDailyCap clamps the investor pool to what is left of the daily
// cap. A zero cap means uncapped. An already exhausted cap saturates
// to zero rather than failing.
func ApplyDailyCap(investorFeeQuote, dailyCap, distributedToday uint64) uint64 {
	if dailyCap == 0 {
		return investorFeeQuote
	}
	var remaining uint64
	if dailyCap > distributedToday {
		remaining = dailyCap - distributedToday
	}
	if investorFeeQuote < remaining {
		return investorFeeQuote
	}
	return remaining
}

// CheckedAdd returns a+b, failing instead of wrapping around.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrap(errors.ErrOverflow, "addition")
	}
	return sum, nil
}

// InvestorPayout returns floor(locked * pool / totalLocked), the pro
// rata share of one investor. A zero denominator pays zero.
//
// The division result always fits in 64 bits because locked can never
// exceed totalLocked, so no overflow is possible here.
func InvestorPayout(locked, totalLocked, investorPool uint64) (uint64, error) {
	if totalLocked == 0 {
		return 0, nil
	}
	if locked > totalLocked {
		return 0, errors.Wrap(errors.ErrOverflow, "locked exceeds day total")
	}
	hi, lo := bits.Mul64(locked, investorPool)
	quo, _ := bits.Div64(hi, lo, totalLocked)
	return quo, nil
}
