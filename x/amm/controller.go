package amm

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
	"github.com/meteorroute/feeroute/x/cash"
)

// Controller operates on the honorary positions: it lets fees accrue
// and claims them into the holding accounts.
type Controller struct {
	bucket orm.ModelBucket
	cash   cash.Controller
}

// NewController returns a position controller crediting claimed fees
// through the given cash controller.
func NewController(cashCtrl cash.Controller) Controller {
	return Controller{
		bucket: NewPositionBucket(),
		cash:   cashCtrl,
	}
}

// AccrueFees records trading fees collected by the pool for this
// vault's position. This is the external fee feed of the engine.
func (c Controller) AccrueFees(db feeroute.KVStore, vaultID []byte, quote, base uint64) error {
	var pos Position
	if err := c.bucket.One(db, vaultID, &pos); err != nil {
		return errors.Wrap(err, "cannot load position")
	}
	qsum := pos.AccruedQuote + quote
	if qsum < pos.AccruedQuote {
		return errors.Wrap(errors.ErrOverflow, "accrued quote")
	}
	bsum := pos.AccruedBase + base
	if bsum < pos.AccruedBase {
		return errors.Wrap(errors.ErrOverflow, "accrued base")
	}
	pos.AccruedQuote = qsum
	pos.AccruedBase = bsum
	return c.bucket.Put(db, vaultID, &pos)
}

// Claim collects all fees accrued by the vault's position, credits
// them to the per-currency holding accounts and reports both amounts.
// Judging the base amount is the caller's job, claiming never fails on
// a nonzero base.
func (c Controller) Claim(db feeroute.KVStore, vaultID []byte) (quote uint64, base uint64, err error) {
	var pos Position
	if err := c.bucket.One(db, vaultID, &pos); err != nil {
		return 0, 0, errors.Wrap(err, "cannot load position")
	}

	quote, base = pos.AccruedQuote, pos.AccruedBase
	if quote == 0 && base == 0 {
		return 0, 0, nil
	}

	if quote > 0 {
		if err := c.cash.IssueCoins(db, QuoteHolding(vaultID).Address(), quote, pos.QuoteToken); err != nil {
			return 0, 0, errors.Wrap(err, "cannot credit quote holding")
		}
	}
	if base > 0 {
		if err := c.cash.IssueCoins(db, BaseHolding(vaultID).Address(), base, pos.BaseToken); err != nil {
			return 0, 0, errors.Wrap(err, "cannot credit base holding")
		}
	}

	pos.AccruedQuote = 0
	pos.AccruedBase = 0
	if err := c.bucket.Put(db, vaultID, &pos); err != nil {
		return 0, 0, errors.Wrap(err, "cannot store position")
	}
	return quote, base, nil
}

// Position returns the registered position of a vault.
func (c Controller) Position(db feeroute.ReadOnlyKVStore, vaultID []byte) (*Position, error) {
	var pos Position
	if err := c.bucket.One(db, vaultID, &pos); err != nil {
		return nil, errors.Wrap(err, "cannot load position")
	}
	return &pos, nil
}
