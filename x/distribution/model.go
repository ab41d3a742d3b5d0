package distribution

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
	"github.com/meteorroute/feeroute/x/cash"
)

// secondsPerDay is the length of one accounting window.
const secondsPerDay = 86_400

var (
	_ orm.Model = (*Policy)(nil)
	_ orm.Model = (*Progress)(nil)
)

// Validate ensures the policy can be persisted.
func (p *Policy) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := feeroute.Address(p.Authority).Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := feeroute.Address(p.CreatorAddress).Validate(); err != nil {
		return errors.Wrap(err, "creator address")
	}
	if p.InvestorFeeShareBps > 10000 {
		return errors.Wrapf(ErrInvalidFeeShare, "%d bps", p.InvestorFeeShareBps)
	}
	if !cash.ValidTicker(p.QuoteToken) {
		return errors.Wrapf(errors.ErrState, "invalid quote token %q", p.QuoteToken)
	}
	if !cash.ValidTicker(p.BaseToken) {
		return errors.Wrapf(errors.ErrState, "invalid base token %q", p.BaseToken)
	}
	if p.QuoteToken == p.BaseToken {
		return errors.Wrap(errors.ErrState, "quote and base token must differ")
	}
	return nil
}

// Validate ensures the progress record can be persisted.
func (p *Progress) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if p.DayInvestorPoolTarget > 0 && p.DayInvestorDistributed > p.DayInvestorPoolTarget {
		return errors.Wrap(errors.ErrState, "distributed more than the day target")
	}
	return nil
}

// IsNewDay returns true when the call time falls into a later day
// than the one currently tracked.
func (p *Progress) IsNewDay(now feeroute.UnixTime) bool {
	return uint64(now)/secondsPerDay > p.DayEpoch
}

// CanStartNewDay returns true when the 24h gate has passed, or no
// distribution ever happened.
func (p *Progress) CanStartNewDay(now feeroute.UnixTime) bool {
	return p.LastDistributionTs == 0 || now-p.LastDistributionTs >= secondsPerDay
}

// StartNewDay opens a new accounting window. All day-scoped state is
// reset. CarryOver and TotalPagesExpected survive: the dust compounds
// until paid and the page count of a stable investor set stays valid
// across days.
func (p *Progress) StartNewDay(now feeroute.UnixTime) {
	p.DayEpoch = uint64(now) / secondsPerDay
	p.CumulativeDistributedToday = 0
	p.PaginationCursor = 0
	p.DayFinalized = false
	p.PagesProcessedToday = 0
	p.DayClaimedTotal = 0
	p.DayTotalLocked = 0
	p.DayInvestorPoolTarget = 0
	p.DayInvestorDistributed = 0
	p.DayCreatorRemainderTarget = 0
	p.UpdatedAt = now
}

// SetDayTargets freezes the proportional basis for the rest of the
// day. Called exactly once, by the first page of the day.
func (p *Progress) SetDayTargets(totalLocked, investorPool, creatorRemainder uint64) {
	p.DayTotalLocked = totalLocked
	p.DayInvestorPoolTarget = investorPool
	p.DayCreatorRemainderTarget = creatorRemainder
}

// AddInvestorDistribution accounts a paid out amount against the day
// target.
func (p *Progress) AddInvestorDistribution(amount uint64) error {
	sum := p.DayInvestorDistributed + amount
	if sum < p.DayInvestorDistributed {
		return errors.Wrap(errors.ErrOverflow, "day investor distributed")
	}
	p.DayInvestorDistributed = sum
	return nil
}

// FinalizeDay seals the current day. The cursor returns to zero so the
// next day starts its own page sequence.
func (p *Progress) FinalizeDay(now feeroute.UnixTime) {
	p.DayFinalized = true
	p.LastDistributionTs = now
	p.PaginationCursor = 0
	p.UpdatedAt = now
}

// NewPolicyBucket returns the bucket holding all policies, keyed by
// vault ID.
func NewPolicyBucket() orm.ModelBucket {
	return orm.NewModelBucket("policy", &Policy{})
}

// NewProgressBucket returns the bucket holding all progress records,
// keyed by vault ID.
func NewProgressBucket() orm.ModelBucket {
	return orm.NewModelBucket("progress", &Progress{})
}
