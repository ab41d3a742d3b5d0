package distribution

import (
	proto "github.com/gogo/protobuf/proto"

	feeroute "github.com/meteorroute/feeroute"
)

// Policy is the per-vault distribution configuration. It is created
// once and rarely mutated, and is read only during distribution.
type Policy struct {
	Metadata *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Authority may update this policy.
	Authority []byte `protobuf:"bytes,2,opt,name=authority,proto3" json:"authority,omitempty"`
	// CreatorAddress receives the daily remainder.
	CreatorAddress []byte `protobuf:"bytes,3,opt,name=creator_address,json=creatorAddress,proto3" json:"creator_address,omitempty"`
	// InvestorFeeShareBps is the ceiling of the investor share, in
	// basis points (0-10000).
	InvestorFeeShareBps uint32 `protobuf:"varint,4,opt,name=investor_fee_share_bps,json=investorFeeShareBps,proto3" json:"investor_fee_share_bps,omitempty"`
	// DailyCapQuote limits the quote amount paid to investors per day.
	// Zero means uncapped.
	DailyCapQuote uint64 `protobuf:"varint,5,opt,name=daily_cap_quote,json=dailyCapQuote,proto3" json:"daily_cap_quote,omitempty"`
	// MinPayoutQuote is the dust threshold. Payouts below it are
	// rolled into the carry over instead of transferred.
	MinPayoutQuote uint64 `protobuf:"varint,6,opt,name=min_payout_quote,json=minPayoutQuote,proto3" json:"min_payout_quote,omitempty"`
	// FundMissingWallets decides whether a payout may create the
	// destination wallet or must fail.
	FundMissingWallets bool `protobuf:"varint,7,opt,name=fund_missing_wallets,json=fundMissingWallets,proto3" json:"fund_missing_wallets,omitempty"`
	// Y0TotalAllocation is the total investor allocation baseline.
	// Must be positive before the first distribution.
	Y0TotalAllocation uint64 `protobuf:"varint,8,opt,name=y0_total_allocation,json=y0TotalAllocation,proto3" json:"y0_total_allocation,omitempty"`
	// QuoteToken is the only currency ever distributed.
	QuoteToken string `protobuf:"bytes,9,opt,name=quote_token,json=quoteToken,proto3" json:"quote_token,omitempty"`
	// BaseToken is the currency that must never show up in a claim.
	BaseToken string            `protobuf:"bytes,10,opt,name=base_token,json=baseToken,proto3" json:"base_token,omitempty"`
	CreatedAt feeroute.UnixTime `protobuf:"varint,11,opt,name=created_at,json=createdAt,proto3,casttype=github.com/meteorroute/feeroute.UnixTime" json:"created_at,omitempty"`
	UpdatedAt feeroute.UnixTime `protobuf:"varint,12,opt,name=updated_at,json=updatedAt,proto3,casttype=github.com/meteorroute/feeroute.UnixTime" json:"updated_at,omitempty"`
}

func (p *Policy) Reset()         { *p = Policy{} }
func (p *Policy) String() string { return proto.CompactTextString((*policyAlias)(p)) }
func (*Policy) ProtoMessage()    {}

type policyAlias Policy

func (p *policyAlias) Reset()         { *p = policyAlias{} }
func (p *policyAlias) String() string { return proto.CompactTextString(p) }
func (*policyAlias) ProtoMessage()    {}

func (p *Policy) Marshal() ([]byte, error) {
	return proto.Marshal((*policyAlias)(p))
}

func (p *Policy) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*policyAlias)(p))
}

// Progress is the engine state of a vault, mutated once per crank
// call. All day-scoped fields reset when a new day opens, except
// CarryOver which compounds until paid out.
type Progress struct {
	Metadata           *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	LastDistributionTs feeroute.UnixTime  `protobuf:"varint,2,opt,name=last_distribution_ts,json=lastDistributionTs,proto3,casttype=github.com/meteorroute/feeroute.UnixTime" json:"last_distribution_ts,omitempty"`
	// DayEpoch is floor(unix time / 86400) of the open day.
	DayEpoch                   uint64 `protobuf:"varint,3,opt,name=day_epoch,json=dayEpoch,proto3" json:"day_epoch,omitempty"`
	CumulativeDistributedToday uint64 `protobuf:"varint,4,opt,name=cumulative_distributed_today,json=cumulativeDistributedToday,proto3" json:"cumulative_distributed_today,omitempty"`
	// CarryOver is the accumulated dust. It survives day boundaries.
	CarryOver uint64 `protobuf:"varint,5,opt,name=carry_over,json=carryOver,proto3" json:"carry_over,omitempty"`
	// PaginationCursor is the next expected page index.
	PaginationCursor uint64 `protobuf:"varint,6,opt,name=pagination_cursor,json=paginationCursor,proto3" json:"pagination_cursor,omitempty"`
	DayFinalized     bool   `protobuf:"varint,7,opt,name=day_finalized,json=dayFinalized,proto3" json:"day_finalized,omitempty"`
	// TotalPagesExpected is fixed by the first finalized day and
	// validated against ever after. Zero means not yet known.
	TotalPagesExpected  uint64 `protobuf:"varint,8,opt,name=total_pages_expected,json=totalPagesExpected,proto3" json:"total_pages_expected,omitempty"`
	PagesProcessedToday uint64 `protobuf:"varint,9,opt,name=pages_processed_today,json=pagesProcessedToday,proto3" json:"pages_processed_today,omitempty"`
	// LastClaimedQuote and LastClaimedBase record the most recent
	// claim for auditing.
	LastClaimedQuote uint64 `protobuf:"varint,10,opt,name=last_claimed_quote,json=lastClaimedQuote,proto3" json:"last_claimed_quote,omitempty"`
	LastClaimedBase  uint64 `protobuf:"varint,11,opt,name=last_claimed_base,json=lastClaimedBase,proto3" json:"last_claimed_base,omitempty"`
	// DayClaimedTotal sums all quote claimed since the day opened. The
	// creator remainder is computed from it at finalization.
	DayClaimedTotal uint64 `protobuf:"varint,12,opt,name=day_claimed_total,json=dayClaimedTotal,proto3" json:"day_claimed_total,omitempty"`
	// Frozen day targets, set by the first page of the day.
	DayTotalLocked            uint64 `protobuf:"varint,13,opt,name=day_total_locked,json=dayTotalLocked,proto3" json:"day_total_locked,omitempty"`
	DayInvestorPoolTarget     uint64 `protobuf:"varint,14,opt,name=day_investor_pool_target,json=dayInvestorPoolTarget,proto3" json:"day_investor_pool_target,omitempty"`
	DayInvestorDistributed    uint64 `protobuf:"varint,15,opt,name=day_investor_distributed,json=dayInvestorDistributed,proto3" json:"day_investor_distributed,omitempty"`
	DayCreatorRemainderTarget uint64 `protobuf:"varint,16,opt,name=day_creator_remainder_target,json=dayCreatorRemainderTarget,proto3" json:"day_creator_remainder_target,omitempty"`

	CreatedAt feeroute.UnixTime `protobuf:"varint,17,opt,name=created_at,json=createdAt,proto3,casttype=github.com/meteorroute/feeroute.UnixTime" json:"created_at,omitempty"`
	UpdatedAt feeroute.UnixTime `protobuf:"varint,18,opt,name=updated_at,json=updatedAt,proto3,casttype=github.com/meteorroute/feeroute.UnixTime" json:"updated_at,omitempty"`
}

func (p *Progress) Reset()         { *p = Progress{} }
func (p *Progress) String() string { return proto.CompactTextString((*progressAlias)(p)) }
func (*Progress) ProtoMessage()    {}

type progressAlias Progress

func (p *progressAlias) Reset()         { *p = progressAlias{} }
func (p *progressAlias) String() string { return proto.CompactTextString(p) }
func (*progressAlias) ProtoMessage()    {}

func (p *Progress) Marshal() ([]byte, error) {
	return proto.Marshal((*progressAlias)(p))
}

func (p *Progress) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*progressAlias)(p))
}

// InvestorRef names one investor inside a page: the vesting stream to
// read the locked amount from and the address to pay out to.
type InvestorRef struct {
	Stream   []byte `protobuf:"bytes,1,opt,name=stream,proto3" json:"stream,omitempty"`
	Investor []byte `protobuf:"bytes,2,opt,name=investor,proto3" json:"investor,omitempty"`
}

func (r *InvestorRef) Reset()         { *r = InvestorRef{} }
func (r *InvestorRef) String() string { return proto.CompactTextString((*investorRefAlias)(r)) }
func (*InvestorRef) ProtoMessage()    {}

type investorRefAlias InvestorRef

func (r *investorRefAlias) Reset()         { *r = investorRefAlias{} }
func (r *investorRefAlias) String() string { return proto.CompactTextString(r) }
func (*investorRefAlias) ProtoMessage()    {}

func (r *InvestorRef) Marshal() ([]byte, error) {
	return proto.Marshal((*investorRefAlias)(r))
}

func (r *InvestorRef) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*investorRefAlias)(r))
}

// Page is one bounded batch of investors. PageHash commits to the
// index and the exact investor order, it is produced off the hot path
// when the page set is built.
type Page struct {
	PageIndex uint64         `protobuf:"varint,1,opt,name=page_index,json=pageIndex,proto3" json:"page_index,omitempty"`
	PageHash  []byte         `protobuf:"bytes,2,opt,name=page_hash,json=pageHash,proto3" json:"page_hash,omitempty"`
	Investors []*InvestorRef `protobuf:"bytes,3,rep,name=investors,proto3" json:"investors,omitempty"`
}

func (p *Page) Reset()         { *p = Page{} }
func (p *Page) String() string { return proto.CompactTextString((*pageAlias)(p)) }
func (*Page) ProtoMessage()    {}

type pageAlias Page

func (p *pageAlias) Reset()         { *p = pageAlias{} }
func (p *pageAlias) String() string { return proto.CompactTextString(p) }
func (*pageAlias) ProtoMessage()    {}

func (p *Page) Marshal() ([]byte, error) {
	return proto.Marshal((*pageAlias)(p))
}

func (p *Page) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*pageAlias)(p))
}

// CreatePolicyMsg creates the distribution policy of a vault.
type CreatePolicyMsg struct {
	Metadata            *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID             []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	CreatorAddress      []byte             `protobuf:"bytes,3,opt,name=creator_address,json=creatorAddress,proto3" json:"creator_address,omitempty"`
	InvestorFeeShareBps uint32             `protobuf:"varint,4,opt,name=investor_fee_share_bps,json=investorFeeShareBps,proto3" json:"investor_fee_share_bps,omitempty"`
	DailyCapQuote       uint64             `protobuf:"varint,5,opt,name=daily_cap_quote,json=dailyCapQuote,proto3" json:"daily_cap_quote,omitempty"`
	MinPayoutQuote      uint64             `protobuf:"varint,6,opt,name=min_payout_quote,json=minPayoutQuote,proto3" json:"min_payout_quote,omitempty"`
	FundMissingWallets  bool               `protobuf:"varint,7,opt,name=fund_missing_wallets,json=fundMissingWallets,proto3" json:"fund_missing_wallets,omitempty"`
	Y0TotalAllocation   uint64             `protobuf:"varint,8,opt,name=y0_total_allocation,json=y0TotalAllocation,proto3" json:"y0_total_allocation,omitempty"`
	QuoteToken          string             `protobuf:"bytes,9,opt,name=quote_token,json=quoteToken,proto3" json:"quote_token,omitempty"`
	BaseToken           string             `protobuf:"bytes,10,opt,name=base_token,json=baseToken,proto3" json:"base_token,omitempty"`
}

func (m *CreatePolicyMsg) Reset()         { *m = CreatePolicyMsg{} }
func (m *CreatePolicyMsg) String() string { return proto.CompactTextString((*createPolicyAlias)(m)) }
func (*CreatePolicyMsg) ProtoMessage()    {}

type createPolicyAlias CreatePolicyMsg

func (m *createPolicyAlias) Reset()         { *m = createPolicyAlias{} }
func (m *createPolicyAlias) String() string { return proto.CompactTextString(m) }
func (*createPolicyAlias) ProtoMessage()    {}

func (m *CreatePolicyMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createPolicyAlias)(m))
}

func (m *CreatePolicyMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createPolicyAlias)(m))
}

// UpdatePolicyMsg partially updates a policy. Only fields with the
// matching Set flag enabled are applied, mirroring optional update
// arguments.
type UpdatePolicyMsg struct {
	Metadata *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`

	SetInvestorFeeShareBps bool   `protobuf:"varint,3,opt,name=set_investor_fee_share_bps,json=setInvestorFeeShareBps,proto3" json:"set_investor_fee_share_bps,omitempty"`
	InvestorFeeShareBps    uint32 `protobuf:"varint,4,opt,name=investor_fee_share_bps,json=investorFeeShareBps,proto3" json:"investor_fee_share_bps,omitempty"`

	SetDailyCapQuote bool   `protobuf:"varint,5,opt,name=set_daily_cap_quote,json=setDailyCapQuote,proto3" json:"set_daily_cap_quote,omitempty"`
	DailyCapQuote    uint64 `protobuf:"varint,6,opt,name=daily_cap_quote,json=dailyCapQuote,proto3" json:"daily_cap_quote,omitempty"`

	SetMinPayoutQuote bool   `protobuf:"varint,7,opt,name=set_min_payout_quote,json=setMinPayoutQuote,proto3" json:"set_min_payout_quote,omitempty"`
	MinPayoutQuote    uint64 `protobuf:"varint,8,opt,name=min_payout_quote,json=minPayoutQuote,proto3" json:"min_payout_quote,omitempty"`

	SetFundMissingWallets bool `protobuf:"varint,9,opt,name=set_fund_missing_wallets,json=setFundMissingWallets,proto3" json:"set_fund_missing_wallets,omitempty"`
	FundMissingWallets    bool `protobuf:"varint,10,opt,name=fund_missing_wallets,json=fundMissingWallets,proto3" json:"fund_missing_wallets,omitempty"`

	SetY0TotalAllocation bool   `protobuf:"varint,11,opt,name=set_y0_total_allocation,json=setY0TotalAllocation,proto3" json:"set_y0_total_allocation,omitempty"`
	Y0TotalAllocation    uint64 `protobuf:"varint,12,opt,name=y0_total_allocation,json=y0TotalAllocation,proto3" json:"y0_total_allocation,omitempty"`
}

func (m *UpdatePolicyMsg) Reset()         { *m = UpdatePolicyMsg{} }
func (m *UpdatePolicyMsg) String() string { return proto.CompactTextString((*updatePolicyAlias)(m)) }
func (*UpdatePolicyMsg) ProtoMessage()    {}

type updatePolicyAlias UpdatePolicyMsg

func (m *updatePolicyAlias) Reset()         { *m = updatePolicyAlias{} }
func (m *updatePolicyAlias) String() string { return proto.CompactTextString(m) }
func (*updatePolicyAlias) ProtoMessage()    {}

func (m *UpdatePolicyMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updatePolicyAlias)(m))
}

func (m *UpdatePolicyMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updatePolicyAlias)(m))
}

// InitProgressMsg creates the zeroed progress record of a vault. Must
// run once before the first distribute call.
type InitProgressMsg struct {
	Metadata *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
}

func (m *InitProgressMsg) Reset()         { *m = InitProgressMsg{} }
func (m *InitProgressMsg) String() string { return proto.CompactTextString((*initProgressAlias)(m)) }
func (*InitProgressMsg) ProtoMessage()    {}

type initProgressAlias InitProgressMsg

func (m *initProgressAlias) Reset()         { *m = initProgressAlias{} }
func (m *initProgressAlias) String() string { return proto.CompactTextString(m) }
func (*initProgressAlias) ProtoMessage()    {}

func (m *InitProgressMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initProgressAlias)(m))
}

func (m *InitProgressMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initProgressAlias)(m))
}

// DistributeMsg is the permissionless crank call: claim today's fees
// and pay out the given pages of investors.
type DistributeMsg struct {
	Metadata *feeroute.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Pages    []*Page            `protobuf:"bytes,3,rep,name=pages,proto3" json:"pages,omitempty"`
	// IsFinalPage signals that after these pages the day is complete
	// and the creator remainder should be paid.
	IsFinalPage bool `protobuf:"varint,4,opt,name=is_final_page,json=isFinalPage,proto3" json:"is_final_page,omitempty"`
}

func (m *DistributeMsg) Reset()         { *m = DistributeMsg{} }
func (m *DistributeMsg) String() string { return proto.CompactTextString((*distributeAlias)(m)) }
func (*DistributeMsg) ProtoMessage()    {}

type distributeAlias DistributeMsg

func (m *distributeAlias) Reset()         { *m = distributeAlias{} }
func (m *distributeAlias) String() string { return proto.CompactTextString(m) }
func (*distributeAlias) ProtoMessage()    {}

func (m *DistributeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*distributeAlias)(m))
}

func (m *DistributeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*distributeAlias)(m))
}

func init() {
	proto.RegisterType((*policyAlias)(nil), "distribution.Policy")
	proto.RegisterType((*progressAlias)(nil), "distribution.Progress")
	proto.RegisterType((*investorRefAlias)(nil), "distribution.InvestorRef")
	proto.RegisterType((*pageAlias)(nil), "distribution.Page")
	proto.RegisterType((*createPolicyAlias)(nil), "distribution.CreatePolicyMsg")
	proto.RegisterType((*updatePolicyAlias)(nil), "distribution.UpdatePolicyMsg")
	proto.RegisterType((*initProgressAlias)(nil), "distribution.InitProgressMsg")
	proto.RegisterType((*distributeAlias)(nil), "distribution.DistributeMsg")
}
