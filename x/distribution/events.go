package distribution

import (
	feeroute "github.com/meteorroute/feeroute"
)

// QuoteFeesClaimed is emitted once per crank call, after the claim and
// the currency guard.
type QuoteFeesClaimed struct {
	VaultID      []byte
	ClaimedQuote uint64
	ClaimedBase  uint64
	Timestamp    feeroute.UnixTime
}

func (QuoteFeesClaimed) EventType() string { return "quote_fees_claimed" }

// InvestorPayoutPage is emitted for every processed page.
type InvestorPayoutPage struct {
	VaultID            []byte
	PageIndex          uint64
	InvestorsProcessed uint32
	TotalDistributed   uint64
	Dust               uint64
	Timestamp          feeroute.UnixTime
}

func (InvestorPayoutPage) EventType() string { return "investor_payout_page" }

// CreatorPayoutDayClosed is emitted when a day is finalized.
type CreatorPayoutDayClosed struct {
	VaultID          []byte
	DayEpoch         uint64
	TotalClaimed     uint64
	TotalDistributed uint64
	CreatorPayout    uint64
	CarryOver        uint64
	Timestamp        feeroute.UnixTime
}

func (CreatorPayoutDayClosed) EventType() string { return "creator_payout_day_closed" }

// PolicyUpdated is emitted on policy creation and every update.
type PolicyUpdated struct {
	VaultID             []byte
	InvestorFeeShareBps uint32
	DailyCapQuote       uint64
	MinPayoutQuote      uint64
	FundMissingWallets  bool
	Timestamp           feeroute.UnixTime
}

func (PolicyUpdated) EventType() string { return "policy_updated" }
