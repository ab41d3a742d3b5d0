package distribution

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
	"github.com/meteorroute/feeroute/x"
	"github.com/meteorroute/feeroute/x/amm"
	"github.com/meteorroute/feeroute/x/cash"
	"github.com/meteorroute/feeroute/x/lockstream"
)

const (
	createPolicyCost = 0
	updatePolicyCost = 0
	initProgressCost = 0
	distributeCost   = 0
)

// Claimer is the fee-source boundary: claim whatever the vault's
// position accrued into the holding accounts and report both currency
// amounts.
type Claimer interface {
	Claim(db feeroute.KVStore, vaultID []byte) (quote uint64, base uint64, err error)
}

// RegisterRoutes registers handlers for all distribution messages.
func RegisterRoutes(r feeroute.Registry, auth x.Authenticator, cashCtrl cash.Controller, claimer Claimer, oracle lockstream.Oracle) {
	policies := NewPolicyBucket()
	progress := NewProgressBucket()

	r.Handle(CreatePolicyMsg{}.Path(), &createPolicyHandler{auth: auth, policies: policies})
	r.Handle(UpdatePolicyMsg{}.Path(), &updatePolicyHandler{auth: auth, policies: policies})
	r.Handle(InitProgressMsg{}.Path(), &initProgressHandler{auth: auth, policies: policies, progress: progress})
	r.Handle(DistributeMsg{}.Path(), &distributeHandler{
		policies: policies,
		progress: progress,
		cash:     cashCtrl,
		claimer:  claimer,
		oracle:   oracle,
	})
}

// --- create policy

type createPolicyHandler struct {
	auth     x.Authenticator
	policies orm.ModelBucket
}

var _ feeroute.Handler = (*createPolicyHandler)(nil)

func (h *createPolicyHandler) Check(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &feeroute.CheckResult{GasAllocated: createPolicyCost}, nil
}

func (h *createPolicyHandler) Deliver(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := feeroute.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	now := feeroute.AsUnixTime(blockTime)

	policy := Policy{
		Metadata:            &feeroute.Metadata{Schema: 1},
		Authority:           x.MainSigner(ctx, h.auth).Address(),
		CreatorAddress:      msg.CreatorAddress,
		InvestorFeeShareBps: msg.InvestorFeeShareBps,
		DailyCapQuote:       msg.DailyCapQuote,
		MinPayoutQuote:      msg.MinPayoutQuote,
		FundMissingWallets:  msg.FundMissingWallets,
		Y0TotalAllocation:   msg.Y0TotalAllocation,
		QuoteToken:          msg.QuoteToken,
		BaseToken:           msg.BaseToken,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := h.policies.Put(db, msg.VaultID, &policy); err != nil {
		return nil, errors.Wrap(err, "cannot store policy")
	}
	return &feeroute.DeliverResult{
		Data: msg.VaultID,
		Events: []feeroute.Event{PolicyUpdated{
			VaultID:             msg.VaultID,
			InvestorFeeShareBps: policy.InvestorFeeShareBps,
			DailyCapQuote:       policy.DailyCapQuote,
			MinPayoutQuote:      policy.MinPayoutQuote,
			FundMissingWallets:  policy.FundMissingWallets,
			Timestamp:           now,
		}},
	}, nil
}

func (h *createPolicyHandler) validate(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*CreatePolicyMsg, error) {
	var msg CreatePolicyMsg
	if err := feeroute.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	switch has, err := h.policies.Has(db, msg.VaultID); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check policy")
	case has:
		return nil, errors.Wrap(errors.ErrDuplicate, "policy exists")
	}
	return &msg, nil
}

// --- update policy

type updatePolicyHandler struct {
	auth     x.Authenticator
	policies orm.ModelBucket
}

var _ feeroute.Handler = (*updatePolicyHandler)(nil)

func (h *updatePolicyHandler) Check(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &feeroute.CheckResult{GasAllocated: updatePolicyCost}, nil
}

func (h *updatePolicyHandler) Deliver(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.DeliverResult, error) {
	msg, policy, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := feeroute.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	now := feeroute.AsUnixTime(blockTime)

	if msg.SetInvestorFeeShareBps {
		policy.InvestorFeeShareBps = msg.InvestorFeeShareBps
	}
	if msg.SetDailyCapQuote {
		policy.DailyCapQuote = msg.DailyCapQuote
	}
	if msg.SetMinPayoutQuote {
		policy.MinPayoutQuote = msg.MinPayoutQuote
	}
	if msg.SetFundMissingWallets {
		policy.FundMissingWallets = msg.FundMissingWallets
	}
	if msg.SetY0TotalAllocation {
		policy.Y0TotalAllocation = msg.Y0TotalAllocation
	}
	policy.UpdatedAt = now

	if err := h.policies.Put(db, msg.VaultID, policy); err != nil {
		return nil, errors.Wrap(err, "cannot store policy")
	}
	return &feeroute.DeliverResult{
		Events: []feeroute.Event{PolicyUpdated{
			VaultID:             msg.VaultID,
			InvestorFeeShareBps: policy.InvestorFeeShareBps,
			DailyCapQuote:       policy.DailyCapQuote,
			MinPayoutQuote:      policy.MinPayoutQuote,
			FundMissingWallets:  policy.FundMissingWallets,
			Timestamp:           now,
		}},
	}, nil
}

func (h *updatePolicyHandler) validate(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*UpdatePolicyMsg, *Policy, error) {
	var msg UpdatePolicyMsg
	if err := feeroute.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	var policy Policy
	if err := h.policies.One(db, msg.VaultID, &policy); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load policy")
	}
	if !h.auth.HasAddress(ctx, policy.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the policy authority")
	}
	return &msg, &policy, nil
}

// --- init progress

type initProgressHandler struct {
	auth     x.Authenticator
	policies orm.ModelBucket
	progress orm.ModelBucket
}

var _ feeroute.Handler = (*initProgressHandler)(nil)

func (h *initProgressHandler) Check(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &feeroute.CheckResult{GasAllocated: initProgressCost}, nil
}

func (h *initProgressHandler) Deliver(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := feeroute.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	now := feeroute.AsUnixTime(blockTime)

	progress := Progress{
		Metadata:  &feeroute.Metadata{Schema: 1},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.progress.Put(db, msg.VaultID, &progress); err != nil {
		return nil, errors.Wrap(err, "cannot store progress")
	}
	return &feeroute.DeliverResult{Data: msg.VaultID}, nil
}

func (h *initProgressHandler) validate(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*InitProgressMsg, error) {
	var msg InitProgressMsg
	if err := feeroute.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	var policy Policy
	if err := h.policies.One(db, msg.VaultID, &policy); err != nil {
		return nil, errors.Wrap(err, "cannot load policy")
	}
	if !h.auth.HasAddress(ctx, policy.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the policy authority")
	}
	switch has, err := h.progress.Has(db, msg.VaultID); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check progress")
	case has:
		return nil, errors.Wrap(errors.ErrDuplicate, "progress exists")
	}
	return &msg, nil
}

// --- distribute

type distributeHandler struct {
	policies orm.ModelBucket
	progress orm.ModelBucket
	cash     cash.Controller
	claimer  Claimer
	oracle   lockstream.Oracle
}

var _ feeroute.Handler = (*distributeHandler)(nil)

// Check only validates the message. Distribution is permissionless,
// any account may turn the crank.
func (h *distributeHandler) Check(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.CheckResult, error) {
	var msg DistributeMsg
	if err := feeroute.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &feeroute.CheckResult{GasAllocated: distributeCost}, nil
}

func (h *distributeHandler) Deliver(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.DeliverResult, error) {
	var msg DistributeMsg
	if err := feeroute.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	blockTime, err := feeroute.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	now := feeroute.AsUnixTime(blockTime)

	var policy Policy
	if err := h.policies.One(db, msg.VaultID, &policy); err != nil {
		return nil, errors.Wrap(err, "cannot load policy")
	}
	var progress Progress
	if err := h.progress.One(db, msg.VaultID, &progress); err != nil {
		return nil, errors.Wrap(err, "cannot load progress")
	}

	// Day state machine. A finalized day only blocks until the next
	// day index, then the gate decides.
	if progress.IsNewDay(now) {
		if !progress.CanStartNewDay(now) {
			return nil, errors.Wrapf(ErrDayGateNotPassed,
				"last distribution at %d", progress.LastDistributionTs)
		}
		progress.StartNewDay(now)
	} else if progress.DayFinalized {
		return nil, errors.Wrapf(ErrDayFinalized, "epoch %d", progress.DayEpoch)
	}

	// Exactly one claim per call, before any page work. Nonzero base
	// is the poison pill: fail everything, commit nothing.
	claimedQuote, claimedBase, err := h.claimer.Claim(db, msg.VaultID)
	if err != nil {
		return nil, errors.Wrap(err, "claim")
	}
	if claimedBase > 0 {
		return nil, errors.Wrapf(ErrBaseFeeDetected, "%d base units claimed", claimedBase)
	}
	progress.LastClaimedQuote = claimedQuote
	progress.LastClaimedBase = claimedBase

	treasury := TreasuryAddress(msg.VaultID)
	if claimedQuote > 0 {
		progress.DayClaimedTotal, err = CheckedAdd(progress.DayClaimedTotal, claimedQuote)
		if err != nil {
			return nil, errors.Wrap(err, "day claimed total")
		}
		holding := amm.QuoteHolding(msg.VaultID).Address()
		if err := h.cash.MoveCoins(db, holding, treasury, claimedQuote, policy.QuoteToken); err != nil {
			return nil, errors.Wrap(err, "treasury intake")
		}
	}

	events := []feeroute.Event{QuoteFeesClaimed{
		VaultID:      msg.VaultID,
		ClaimedQuote: claimedQuote,
		ClaimedBase:  claimedBase,
		Timestamp:    now,
	}}

	// Nothing claimed means no math and no payouts this call. The
	// cursor does not move, so skipped pages can be resubmitted.
	// Finalization may still be requested to seal the day.
	if claimedQuote == 0 {
		if msg.IsFinalPage {
			ev, err := h.finalizeDay(db, &policy, &progress, msg.VaultID, treasury, now)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
		progress.UpdatedAt = now
		if err := h.progress.Put(db, msg.VaultID, &progress); err != nil {
			return nil, errors.Wrap(err, "cannot store progress")
		}
		return &feeroute.DeliverResult{Events: events}, nil
	}

	newCursor, err := validatePages(progress.PaginationCursor, msg.Pages)
	if err != nil {
		return nil, err
	}

	// Lock accounting: read every referenced stream fresh, validate
	// the declared owner, sum the locked amounts.
	locked, totalLocked, err := h.readLockedAmounts(db, msg.Pages)
	if err != nil {
		return nil, err
	}

	// The first page of the day freezes the proportional basis. Every
	// later page weighs against these numbers, never a page-local
	// recomputation.
	if progress.PagesProcessedToday == 0 && len(msg.Pages) > 0 {
		eligibleBps, err := EligibleBps(totalLocked, policy.Y0TotalAllocation, policy.InvestorFeeShareBps)
		if err != nil {
			return nil, err
		}
		pool, err := InvestorFeeQuote(progress.DayClaimedTotal, eligibleBps)
		if err != nil {
			return nil, err
		}
		capped := ApplyDailyCap(pool, policy.DailyCapQuote, progress.CumulativeDistributedToday)
		var remainder uint64
		if progress.DayClaimedTotal > capped {
			remainder = progress.DayClaimedTotal - capped
		}
		progress.SetDayTargets(totalLocked, capped, remainder)
	}

	var distributed, dust uint64
	idx := 0
	for _, page := range msg.Pages {
		var pageDistributed, pageDust uint64
		for _, inv := range page.Investors {
			amount := locked[idx]
			idx++
			if amount == 0 {
				// Processed but unpaid.
				continue
			}
			payout, err := InvestorPayout(amount, progress.DayTotalLocked, progress.DayInvestorPoolTarget)
			if err != nil {
				return nil, err
			}
			if payout == 0 {
				continue
			}
			if payout < policy.MinPayoutQuote {
				pageDust, err = CheckedAdd(pageDust, payout)
				if err != nil {
					return nil, errors.Wrap(err, "page dust")
				}
				continue
			}
			dest := feeroute.Address(inv.Investor)
			if !policy.FundMissingWallets {
				switch has, err := h.cash.HasWallet(db, dest); {
				case err != nil:
					return nil, errors.Wrap(err, "cannot check wallet")
				case !has:
					return nil, errors.Wrapf(ErrTransferFailed,
						"wallet %s missing and funding is disabled", dest)
				}
			}
			if err := h.cash.MoveCoins(db, treasury, dest, payout, policy.QuoteToken); err != nil {
				return nil, errors.Wrap(err, "investor payout")
			}
			pageDistributed, err = CheckedAdd(pageDistributed, payout)
			if err != nil {
				return nil, errors.Wrap(err, "page distributed")
			}
		}

		events = append(events, InvestorPayoutPage{
			VaultID:            msg.VaultID,
			PageIndex:          page.PageIndex,
			InvestorsProcessed: uint32(len(page.Investors)),
			TotalDistributed:   pageDistributed,
			Dust:               pageDust,
			Timestamp:          now,
		})
		if distributed, err = CheckedAdd(distributed, pageDistributed); err != nil {
			return nil, errors.Wrap(err, "distributed total")
		}
		if dust, err = CheckedAdd(dust, pageDust); err != nil {
			return nil, errors.Wrap(err, "dust total")
		}
	}

	if progress.CumulativeDistributedToday, err = CheckedAdd(progress.CumulativeDistributedToday, distributed); err != nil {
		return nil, errors.Wrap(err, "cumulative distributed")
	}
	if progress.CarryOver, err = CheckedAdd(progress.CarryOver, dust); err != nil {
		return nil, errors.Wrap(err, "carry over")
	}
	if err := progress.AddInvestorDistribution(distributed); err != nil {
		return nil, err
	}
	if progress.DayInvestorDistributed > progress.DayInvestorPoolTarget {
		return nil, errors.Wrap(errors.ErrOverflow, "day investor pool target exceeded")
	}
	progress.PagesProcessedToday += uint64(len(msg.Pages))
	progress.PaginationCursor = newCursor
	progress.UpdatedAt = now

	if msg.IsFinalPage {
		// Fix the expected page count on the first finalization, hold
		// every later one to it.
		if progress.TotalPagesExpected == 0 {
			progress.TotalPagesExpected = progress.PaginationCursor
		} else if progress.TotalPagesExpected != progress.PaginationCursor {
			return nil, errors.Wrapf(ErrInvalidPagination,
				"cursor %d, expected %d pages", progress.PaginationCursor, progress.TotalPagesExpected)
		}
		ev, err := h.finalizeDay(db, &policy, &progress, msg.VaultID, treasury, now)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := h.progress.Put(db, msg.VaultID, &progress); err != nil {
		return nil, errors.Wrap(err, "cannot store progress")
	}
	return &feeroute.DeliverResult{Events: events}, nil
}

// readLockedAmounts resolves every investor reference in page order
// into a locked amount, and their checked sum.
func (h *distributeHandler) readLockedAmounts(db feeroute.KVStore, pages []*Page) ([]uint64, uint64, error) {
	var amounts []uint64
	var total uint64
	for _, page := range pages {
		for _, inv := range page.Investors {
			rec, err := h.oracle.ReadLockRecord(db, inv.Stream)
			if err != nil {
				if errors.ErrNotFound.Is(err) {
					return nil, 0, errors.Wrapf(ErrMissingInput, "unknown stream %x", inv.Stream)
				}
				return nil, 0, errors.Wrap(err, "lock oracle")
			}
			if !feeroute.Address(rec.Owner).Equals(inv.Investor) {
				return nil, 0, errors.Wrapf(ErrMissingInput,
					"stream %x owner mismatch", inv.Stream)
			}
			amount, err := rec.Locked()
			if err != nil {
				return nil, 0, err
			}
			if total, err = CheckedAdd(total, amount); err != nil {
				return nil, 0, errors.Wrap(err, "total locked")
			}
			amounts = append(amounts, amount)
		}
	}
	return amounts, total, nil
}

// finalizeDay pays the creator remainder and seals the day.
func (h *distributeHandler) finalizeDay(db feeroute.KVStore, policy *Policy, progress *Progress, vaultID []byte, treasury feeroute.Address, now feeroute.UnixTime) (feeroute.Event, error) {
	var remainder uint64
	spoken := progress.CumulativeDistributedToday + progress.CarryOver
	if spoken >= progress.CumulativeDistributedToday && progress.DayClaimedTotal > spoken {
		remainder = progress.DayClaimedTotal - spoken
	}
	if remainder > 0 {
		if err := h.cash.MoveCoins(db, treasury, policy.CreatorAddress, remainder, policy.QuoteToken); err != nil {
			return nil, errors.Wrap(err, "creator payout")
		}
	}
	progress.FinalizeDay(now)
	return CreatorPayoutDayClosed{
		VaultID:          vaultID,
		DayEpoch:         progress.DayEpoch,
		TotalClaimed:     progress.DayClaimedTotal,
		TotalDistributed: progress.CumulativeDistributedToday,
		CreatorPayout:    remainder,
		CarryOver:        progress.CarryOver,
		Timestamp:        now,
	}, nil
}
