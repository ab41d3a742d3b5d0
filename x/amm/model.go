package amm

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
	"github.com/meteorroute/feeroute/x/cash"
)

var _ orm.Model = (*Position)(nil)

// Validate ensures the position can be persisted.
func (p *Position) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(p.Pool) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pool")
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
	if p.TickLower >= p.TickUpper {
		return errors.Wrap(errors.ErrState, "tick range is empty")
	}
	return nil
}

// NewPositionBucket returns the bucket holding all positions, keyed by
// vault ID.
func NewPositionBucket() orm.ModelBucket {
	return orm.NewModelBucket("position", &Position{})
}

// QuoteHolding is the holding account that receives claimed quote fees
// for this vault, before they are moved to the treasury.
func QuoteHolding(vaultID []byte) feeroute.Condition {
	return feeroute.NewCondition("feedist", "holdq", vaultID)
}

// BaseHolding is the holding account for any claimed base fees. By the
// position's designed constraint it should never receive anything.
func BaseHolding(vaultID []byte) feeroute.Condition {
	return feeroute.NewCondition("feedist", "holdb", vaultID)
}
