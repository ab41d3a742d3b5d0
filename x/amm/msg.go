package amm

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/x/cash"
)

var _ feeroute.Msg = (*RegisterPositionMsg)(nil)

// Path returns the routing path for this message.
func (RegisterPositionMsg) Path() string {
	return "amm/register_position"
}

// Validate ensures the message makes sense without access to the
// database state.
func (m *RegisterPositionMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.VaultID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "vault id")
	}
	if len(m.Pool) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pool")
	}
	if !cash.ValidTicker(m.QuoteToken) {
		return errors.Wrapf(errors.ErrMsg, "invalid quote token %q", m.QuoteToken)
	}
	if !cash.ValidTicker(m.BaseToken) {
		return errors.Wrapf(errors.ErrMsg, "invalid base token %q", m.BaseToken)
	}
	if m.QuoteToken == m.BaseToken {
		return errors.Wrap(errors.ErrMsg, "quote and base token must differ")
	}
	if m.TickLower >= m.TickUpper {
		return errors.Wrap(errors.ErrMsg, "tick range is empty")
	}
	return nil
}
