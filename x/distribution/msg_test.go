package distribution

import (
	"testing"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/feeroutetest"
	"github.com/meteorroute/feeroute/feeroutetest/assert"
)

func TestCreatePolicyMsgValidate(t *testing.T) {
	valid := func() CreatePolicyMsg {
		return CreatePolicyMsg{
			Metadata:            &feeroute.Metadata{Schema: 1},
			VaultID:             []byte("vault-1"),
			CreatorAddress:      feeroutetest.NewCondition().Address(),
			InvestorFeeShareBps: 9000,
			Y0TotalAllocation:   1000,
			QuoteToken:          "USDQ",
			BaseToken:           "MTR",
		}
	}

	cases := map[string]struct {
		mutate  func(*CreatePolicyMsg)
		wantErr *errors.Error
	}{
		"valid": {
			mutate: func(*CreatePolicyMsg) {},
		},
		"missing metadata": {
			mutate:  func(m *CreatePolicyMsg) { m.Metadata = nil },
			wantErr: errors.ErrMetadata,
		},
		"missing vault id": {
			mutate:  func(m *CreatePolicyMsg) { m.VaultID = nil },
			wantErr: errors.ErrEmpty,
		},
		"malformed creator address": {
			mutate:  func(m *CreatePolicyMsg) { m.CreatorAddress = []byte("short") },
			wantErr: errors.ErrInput,
		},
		"fee share above 100 percent": {
			mutate:  func(m *CreatePolicyMsg) { m.InvestorFeeShareBps = 10001 },
			wantErr: ErrInvalidFeeShare,
		},
		"invalid quote token": {
			mutate:  func(m *CreatePolicyMsg) { m.QuoteToken = "x" },
			wantErr: errors.ErrMsg,
		},
		"same quote and base token": {
			mutate:  func(m *CreatePolicyMsg) { m.BaseToken = m.QuoteToken },
			wantErr: errors.ErrMsg,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			msg := valid()
			tc.mutate(&msg)
			if tc.wantErr == nil {
				assert.Nil(t, msg.Validate())
			} else {
				assert.IsErr(t, tc.wantErr, msg.Validate())
			}
		})
	}
}

func TestUpdatePolicyMsgValidate(t *testing.T) {
	msg := UpdatePolicyMsg{
		Metadata: &feeroute.Metadata{Schema: 1},
		VaultID:  []byte("vault-1"),
	}
	// An update changing nothing is pointless and rejected.
	assert.IsErr(t, errors.ErrEmpty, msg.Validate())

	msg.SetDailyCapQuote = true
	msg.DailyCapQuote = 500
	assert.Nil(t, msg.Validate())

	msg.SetInvestorFeeShareBps = true
	msg.InvestorFeeShareBps = 10001
	assert.IsErr(t, ErrInvalidFeeShare, msg.Validate())

	// An out of range value behind a disabled flag is ignored.
	msg.SetInvestorFeeShareBps = false
	assert.Nil(t, msg.Validate())
}

func TestDistributeMsgValidate(t *testing.T) {
	investor := feeroutetest.NewCondition().Address()
	valid := func() DistributeMsg {
		investors := []*InvestorRef{{Stream: []byte("stream-1"), Investor: investor}}
		return DistributeMsg{
			Metadata: &feeroute.Metadata{Schema: 1},
			VaultID:  []byte("vault-1"),
			Pages: []*Page{{
				PageIndex: 0,
				PageHash:  PageHash(0, investors),
				Investors: investors,
			}},
		}
	}

	msg := valid()
	assert.Nil(t, msg.Validate())

	msg = valid()
	msg.Pages[0].PageHash = []byte("too short")
	assert.IsErr(t, ErrInvalidPagination, msg.Validate())

	msg = valid()
	msg.Pages[0].Investors[0].Stream = nil
	assert.IsErr(t, ErrMissingInput, msg.Validate())

	msg = valid()
	msg.Pages[0].Investors[0].Investor = []byte("short")
	assert.IsErr(t, errors.ErrInput, msg.Validate())

	// A crank call without pages is a valid bookkeeping call.
	msg = valid()
	msg.Pages = nil
	assert.Nil(t, msg.Validate())
}
