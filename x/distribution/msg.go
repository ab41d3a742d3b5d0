package distribution

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/x/cash"
)

var (
	_ feeroute.Msg = (*CreatePolicyMsg)(nil)
	_ feeroute.Msg = (*UpdatePolicyMsg)(nil)
	_ feeroute.Msg = (*InitProgressMsg)(nil)
	_ feeroute.Msg = (*DistributeMsg)(nil)
)

func (CreatePolicyMsg) Path() string { return "distribution/create_policy" }
func (UpdatePolicyMsg) Path() string { return "distribution/update_policy" }
func (InitProgressMsg) Path() string { return "distribution/init_progress" }
func (DistributeMsg) Path() string   { return "distribution/distribute" }

func (m *CreatePolicyMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.VaultID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "vault id")
	}
	if err := feeroute.Address(m.CreatorAddress).Validate(); err != nil {
		return errors.Wrap(err, "creator address")
	}
	if m.InvestorFeeShareBps > 10000 {
		return errors.Wrapf(ErrInvalidFeeShare, "%d bps", m.InvestorFeeShareBps)
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
	return nil
}

func (m *UpdatePolicyMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.VaultID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "vault id")
	}
	if m.SetInvestorFeeShareBps && m.InvestorFeeShareBps > 10000 {
		return errors.Wrapf(ErrInvalidFeeShare, "%d bps", m.InvestorFeeShareBps)
	}
	if !m.SetInvestorFeeShareBps && !m.SetDailyCapQuote && !m.SetMinPayoutQuote &&
		!m.SetFundMissingWallets && !m.SetY0TotalAllocation {
		return errors.Wrap(errors.ErrEmpty, "no changes")
	}
	return nil
}

func (m *InitProgressMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.VaultID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "vault id")
	}
	return nil
}

func (m *DistributeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.VaultID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "vault id")
	}
	for _, page := range m.Pages {
		if len(page.PageHash) != 32 {
			return errors.Wrapf(ErrInvalidPagination, "page %d: malformed hash", page.PageIndex)
		}
		for _, inv := range page.Investors {
			if len(inv.Stream) == 0 {
				return errors.Wrap(ErrMissingInput, "stream reference")
			}
			if err := feeroute.Address(inv.Investor).Validate(); err != nil {
				return errors.Wrap(err, "investor address")
			}
		}
	}
	return nil
}
