package distribution

import (
	"context"
	"testing"
	"time"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/feeroutetest"
	"github.com/meteorroute/feeroute/feeroutetest/assert"
	"github.com/meteorroute/feeroute/store"
	"github.com/meteorroute/feeroute/x/amm"
	"github.com/meteorroute/feeroute/x/cash"
	"github.com/meteorroute/feeroute/x/lockstream"
)

// day0 is a timestamp exactly at a day boundary, which keeps epoch
// arithmetic in the tests easy to follow.
const day0 = 19676 * secondsPerDay

type routes map[string]feeroute.Handler

func (r routes) Handle(path string, h feeroute.Handler) { r[path] = h }

type testEnv struct {
	t        *testing.T
	db       feeroute.CacheableKVStore
	handlers routes
	auth     *feeroutetest.Auth
	cash     cash.CashController
	pools    amm.Controller
	oracle   lockstream.BucketOracle

	vaultID   []byte
	authority feeroute.Condition
	creator   feeroute.Condition
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	e := &testEnv{
		t:         t,
		db:        store.MemStore(),
		handlers:  routes{},
		auth:      &feeroutetest.Auth{Signer: feeroutetest.NewCondition()},
		cash:      cash.NewController(),
		vaultID:   []byte("vault-1"),
		creator:   feeroutetest.NewCondition(),
	}
	e.authority = e.auth.Signer
	e.pools = amm.NewController(e.cash)
	e.oracle = lockstream.NewOracle()
	RegisterRoutes(e.handlers, e.auth, e.cash, e.pools, e.oracle)

	positions := amm.NewPositionBucket()
	err := positions.Put(e.db, e.vaultID, &amm.Position{
		Metadata:          &feeroute.Metadata{Schema: 1},
		Pool:              []byte("pool-1"),
		QuoteToken:        "USDQ",
		BaseToken:         "MTR",
		TickLower:         -100,
		TickUpper:         100,
		VerifiedQuoteOnly: true,
	})
	assert.Nil(t, err)

	e.deliverOK(day0, &CreatePolicyMsg{
		Metadata:            &feeroute.Metadata{Schema: 1},
		VaultID:             e.vaultID,
		CreatorAddress:      e.creator.Address(),
		InvestorFeeShareBps: 9000,
		Y0TotalAllocation:   1000,
		QuoteToken:          "USDQ",
		BaseToken:           "MTR",
		FundMissingWallets:  true,
	})
	e.deliverOK(day0, &InitProgressMsg{
		Metadata: &feeroute.Metadata{Schema: 1},
		VaultID:  e.vaultID,
	})
	return e
}

// deliver runs a message the way the application does: on a cache wrap
// that is written on success and discarded on failure.
func (e *testEnv) deliver(ts int64, msg feeroute.Msg) (*feeroute.DeliverResult, error) {
	e.t.Helper()
	h, ok := e.handlers[msg.Path()]
	if !ok {
		e.t.Fatalf("no handler registered for %q", msg.Path())
	}
	ctx := feeroute.WithBlockTime(context.Background(), time.Unix(ts, 0))
	cache := e.db.CacheWrap()
	res, err := h.Deliver(ctx, cache, &feeroutetest.Tx{Msg: msg})
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		e.t.Fatalf("cannot write cache: %+v", err)
	}
	return res, nil
}

func (e *testEnv) deliverOK(ts int64, msg feeroute.Msg) *feeroute.DeliverResult {
	e.t.Helper()
	res, err := e.deliver(ts, msg)
	assert.Nil(e.t, err)
	return res
}

func (e *testEnv) accrue(quote, base uint64) {
	e.t.Helper()
	assert.Nil(e.t, e.pools.AccrueFees(e.db, e.vaultID, quote, base))
}

// addInvestor provisions a vesting stream with the given locked amount
// and returns the page reference to it.
func (e *testEnv) addInvestor(stream string, locked uint64) *InvestorRef {
	e.t.Helper()
	owner := feeroutetest.NewCondition().Address()
	err := e.oracle.SaveLockRecord(e.db, []byte(stream), &lockstream.LockRecord{
		Metadata:  &feeroute.Metadata{Schema: 1},
		Owner:     owner,
		Deposited: locked,
	})
	assert.Nil(e.t, err)
	return &InvestorRef{Stream: []byte(stream), Investor: owner}
}

func (e *testEnv) balance(addr feeroute.Address) uint64 {
	e.t.Helper()
	amount, err := e.cash.Balance(e.db, addr, "USDQ")
	assert.Nil(e.t, err)
	return amount
}

func (e *testEnv) progress() Progress {
	e.t.Helper()
	var p Progress
	assert.Nil(e.t, NewProgressBucket().One(e.db, e.vaultID, &p))
	return p
}

func (e *testEnv) distribute(pages []*Page, final bool) *DistributeMsg {
	return &DistributeMsg{
		Metadata:    &feeroute.Metadata{Schema: 1},
		VaultID:     e.vaultID,
		Pages:       pages,
		IsFinalPage: final,
	}
}

func makePage(index uint64, investors ...*InvestorRef) *Page {
	return &Page{
		PageIndex: index,
		PageHash:  PageHash(index, investors),
		Investors: investors,
	}
}

func TestCreatePolicy(t *testing.T) {
	e := newTestEnv(t)

	// The vault was configured during setup, a second policy must be
	// rejected.
	_, err := e.deliver(day0, &CreatePolicyMsg{
		Metadata:            &feeroute.Metadata{Schema: 1},
		VaultID:             e.vaultID,
		CreatorAddress:      e.creator.Address(),
		InvestorFeeShareBps: 100,
		Y0TotalAllocation:   1,
		QuoteToken:          "USDQ",
		BaseToken:           "MTR",
	})
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Without a signer there is nobody to become the authority.
	e.auth.Signer = nil
	_, err = e.deliver(day0, &CreatePolicyMsg{
		Metadata:            &feeroute.Metadata{Schema: 1},
		VaultID:             []byte("vault-2"),
		CreatorAddress:      e.creator.Address(),
		InvestorFeeShareBps: 100,
		Y0TotalAllocation:   1,
		QuoteToken:          "USDQ",
		BaseToken:           "MTR",
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestUpdatePolicy(t *testing.T) {
	e := newTestEnv(t)

	e.deliverOK(day0, &UpdatePolicyMsg{
		Metadata:         &feeroute.Metadata{Schema: 1},
		VaultID:          e.vaultID,
		SetDailyCapQuote: true,
		DailyCapQuote:    800_000,
	})
	var policy Policy
	assert.Nil(t, NewPolicyBucket().One(e.db, e.vaultID, &policy))
	assert.Equal(t, uint64(800_000), policy.DailyCapQuote)
	// Untouched fields keep their values.
	assert.Equal(t, uint32(9000), policy.InvestorFeeShareBps)

	// Only the authority may update.
	e.auth.Signer = feeroutetest.NewCondition()
	_, err := e.deliver(day0, &UpdatePolicyMsg{
		Metadata:         &feeroute.Metadata{Schema: 1},
		VaultID:          e.vaultID,
		SetDailyCapQuote: true,
		DailyCapQuote:    1,
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = e.deliver(day0, &UpdatePolicyMsg{
		Metadata:         &feeroute.Metadata{Schema: 1},
		VaultID:          []byte("no-such-vault"),
		SetDailyCapQuote: true,
		DailyCapQuote:    1,
	})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitProgressDuplicate(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.deliver(day0, &InitProgressMsg{
		Metadata: &feeroute.Metadata{Schema: 1},
		VaultID:  e.vaultID,
	})
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestDistributeSingleFinalPage(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	b := e.addInvestor("stream-b", 400)
	idle := e.addInvestor("stream-idle", 0)
	e.accrue(1_000_000, 0)

	now := int64(day0 + 100)
	res := e.deliverOK(now, e.distribute([]*Page{makePage(0, a, b, idle)}, true))

	// All 1000 tokens are locked, so eligibility hits the 9000 bps
	// ceiling: a 900_000 investor pool, split 60/40, and the remaining
	// 100_000 to the creator.
	assert.Equal(t, uint64(540_000), e.balance(feeroute.Address(a.Investor)))
	assert.Equal(t, uint64(360_000), e.balance(feeroute.Address(b.Investor)))
	assert.Equal(t, uint64(0), e.balance(feeroute.Address(idle.Investor)))
	assert.Equal(t, uint64(100_000), e.balance(e.creator.Address()))
	assert.Equal(t, uint64(0), e.balance(TreasuryAddress(e.vaultID)))

	assert.Equal(t, 3, len(res.Events))
	assert.Equal(t, "quote_fees_claimed", res.Events[0].EventType())
	assert.Equal(t, "investor_payout_page", res.Events[1].EventType())
	assert.Equal(t, "creator_payout_day_closed", res.Events[2].EventType())
	page := res.Events[1].(InvestorPayoutPage)
	assert.Equal(t, uint32(3), page.InvestorsProcessed)
	assert.Equal(t, uint64(900_000), page.TotalDistributed)

	p := e.progress()
	assert.Equal(t, true, p.DayFinalized)
	assert.Equal(t, uint64(now)/secondsPerDay, p.DayEpoch)
	assert.Equal(t, uint64(1_000_000), p.DayClaimedTotal)
	assert.Equal(t, uint64(900_000), p.CumulativeDistributedToday)
	assert.Equal(t, uint64(1000), p.DayTotalLocked)
	assert.Equal(t, uint64(900_000), p.DayInvestorPoolTarget)
	assert.Equal(t, uint64(1), p.TotalPagesExpected)
	assert.Equal(t, uint64(0), p.PaginationCursor)
	assert.Equal(t, feeroute.UnixTime(now), p.LastDistributionTs)
}

func TestDistributeConservesEveryUnit(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	b := e.addInvestor("stream-b", 1)
	e.deliverOK(day0, &UpdatePolicyMsg{
		Metadata:          &feeroute.Metadata{Schema: 1},
		VaultID:           e.vaultID,
		SetMinPayoutQuote: true,
		MinPayoutQuote:    2000,
	})
	e.accrue(1_000_000, 0)

	e.deliverOK(day0+100, e.distribute([]*Page{makePage(0, a, b)}, true))

	// 601 of 1000 locked gives 6010 bps and a 601_000 pool. The small
	// holder's 1000 falls under the threshold and becomes carry over.
	paidA := e.balance(feeroute.Address(a.Investor))
	paidB := e.balance(feeroute.Address(b.Investor))
	paidCreator := e.balance(e.creator.Address())
	assert.Equal(t, uint64(600_000), paidA)
	assert.Equal(t, uint64(0), paidB)
	assert.Equal(t, uint64(399_000), paidCreator)

	p := e.progress()
	assert.Equal(t, uint64(1000), p.CarryOver)

	// Every claimed unit is either paid out or carried over.
	assert.Equal(t, uint64(1_000_000), paidA+paidB+paidCreator+p.CarryOver)
	// The withheld dust stays in the treasury for later days.
	assert.Equal(t, uint64(1000), e.balance(TreasuryAddress(e.vaultID)))
}

func TestDistributeDailyCap(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	b := e.addInvestor("stream-b", 400)
	e.deliverOK(day0, &UpdatePolicyMsg{
		Metadata:         &feeroute.Metadata{Schema: 1},
		VaultID:          e.vaultID,
		SetDailyCapQuote: true,
		DailyCapQuote:    800_000,
	})
	e.accrue(1_000_000, 0)

	e.deliverOK(day0+100, e.distribute([]*Page{makePage(0, a, b)}, true))

	// The 900_000 pool is capped to 800_000 before splitting.
	assert.Equal(t, uint64(480_000), e.balance(feeroute.Address(a.Investor)))
	assert.Equal(t, uint64(320_000), e.balance(feeroute.Address(b.Investor)))
	assert.Equal(t, uint64(200_000), e.balance(e.creator.Address()))

	p := e.progress()
	assert.Equal(t, uint64(800_000), p.CumulativeDistributedToday)
	assert.Equal(t, uint64(800_000), p.DayInvestorPoolTarget)
}

func TestDistributeBaseFeeAborts(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	e.accrue(1_000_000, 7)

	_, err := e.deliver(day0+100, e.distribute([]*Page{makePage(0, a)}, true))
	assert.IsErr(t, ErrBaseFeeDetected, err)

	// The discarded call must leave no trace: no balances moved, no
	// progress mutated, and the accrued fees still claimable.
	assert.Equal(t, uint64(0), e.balance(feeroute.Address(a.Investor)))
	assert.Equal(t, uint64(0), e.balance(TreasuryAddress(e.vaultID)))
	p := e.progress()
	assert.Equal(t, uint64(0), p.DayClaimedTotal)
	assert.Equal(t, uint64(0), p.PaginationCursor)
	assert.Equal(t, uint64(0), p.DayEpoch)
	pos, err := e.pools.Position(e.db, e.vaultID)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1_000_000), pos.AccruedQuote)
	assert.Equal(t, uint64(7), pos.AccruedBase)
}

func TestDistributeHashMismatchAborts(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	b := e.addInvestor("stream-b", 400)
	e.accrue(1_000_000, 0)

	// Commit to one investor set, deliver another.
	page := makePage(0, a, b)
	page.Investors = []*InvestorRef{a}
	_, err := e.deliver(day0+100, e.distribute([]*Page{page}, true))
	assert.IsErr(t, ErrInvalidPagination, err)

	assert.Equal(t, uint64(0), e.balance(feeroute.Address(a.Investor)))
	assert.Equal(t, uint64(0), e.balance(TreasuryAddress(e.vaultID)))
	assert.Equal(t, uint64(0), e.progress().DayClaimedTotal)
}

func TestDistributeReplayRejected(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	b := e.addInvestor("stream-b", 400)
	e.accrue(1_000_000, 0)

	e.deliverOK(day0+100, e.distribute([]*Page{makePage(0, a, b)}, false))
	paid := e.balance(feeroute.Address(a.Investor))
	assert.Equal(t, uint64(1), e.progress().PaginationCursor)

	// Resubmitting the processed page must not pay anyone twice.
	e.accrue(5000, 0)
	_, err := e.deliver(day0+200, e.distribute([]*Page{makePage(0, a, b)}, false))
	assert.IsErr(t, ErrInvalidPagination, err)
	assert.Equal(t, paid, e.balance(feeroute.Address(a.Investor)))
	assert.Equal(t, uint64(1), e.progress().PaginationCursor)
}

func TestDistributeMultiPageDay(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	b := e.addInvestor("stream-b", 400)
	c := e.addInvestor("stream-c", 0)
	e.accrue(1_000_000, 0)

	// Both funded investors fit the first call, which freezes the day
	// basis. A later call continues the cursor and seals the day.
	e.deliverOK(day0+100, e.distribute([]*Page{makePage(0, a), makePage(1, b)}, false))

	p := e.progress()
	assert.Equal(t, uint64(2), p.PaginationCursor)
	assert.Equal(t, uint64(2), p.PagesProcessedToday)
	assert.Equal(t, false, p.DayFinalized)
	assert.Equal(t, uint64(1000), p.DayTotalLocked)
	assert.Equal(t, uint64(540_000), e.balance(feeroute.Address(a.Investor)))
	assert.Equal(t, uint64(360_000), e.balance(feeroute.Address(b.Investor)))

	// More fees accrued between the cranks. The day basis stays frozen
	// and the extra claim only grows the creator remainder.
	e.accrue(100_000, 0)
	res := e.deliverOK(day0+200, e.distribute([]*Page{makePage(2, c)}, true))

	p = e.progress()
	assert.Equal(t, true, p.DayFinalized)
	assert.Equal(t, uint64(3), p.TotalPagesExpected)
	assert.Equal(t, uint64(1000), p.DayTotalLocked)
	assert.Equal(t, uint64(200_000), e.balance(e.creator.Address()))
	assert.Equal(t, uint64(0), e.balance(TreasuryAddress(e.vaultID)))
	closed := res.Events[len(res.Events)-1].(CreatorPayoutDayClosed)
	assert.Equal(t, uint64(1_100_000), closed.TotalClaimed)
	assert.Equal(t, uint64(900_000), closed.TotalDistributed)
	assert.Equal(t, uint64(200_000), closed.CreatorPayout)
}

func TestDistributeDayGate(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	e.accrue(1_000_000, 0)

	first := int64(day0 + 3600)
	e.deliverOK(first, e.distribute([]*Page{makePage(0, a)}, true))

	// The sealed day rejects further cranking.
	_, err := e.deliver(first+100, e.distribute(nil, false))
	assert.IsErr(t, ErrDayFinalized, err)

	// The calendar flipped but 24h have not passed since finalization.
	early := int64(day0 + secondsPerDay + 1800)
	_, err = e.deliver(early, e.distribute(nil, false))
	assert.IsErr(t, ErrDayGateNotPassed, err)

	// Exactly 24h after finalization a new day opens.
	e.deliverOK(first+secondsPerDay, e.distribute(nil, false))
	p := e.progress()
	assert.Equal(t, false, p.DayFinalized)
	assert.Equal(t, uint64(first+secondsPerDay)/secondsPerDay, p.DayEpoch)
}

func TestDistributeCarryOverSurvivesDays(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	b := e.addInvestor("stream-b", 1)
	e.deliverOK(day0, &UpdatePolicyMsg{
		Metadata:          &feeroute.Metadata{Schema: 1},
		VaultID:           e.vaultID,
		SetMinPayoutQuote: true,
		MinPayoutQuote:    2000,
	})

	e.accrue(1_000_000, 0)
	first := int64(day0 + 100)
	e.deliverOK(first, e.distribute([]*Page{makePage(0, a, b)}, true))
	assert.Equal(t, uint64(1000), e.progress().CarryOver)

	// The next day starts with the dust intact and deducts it from
	// the creator remainder.
	e.accrue(1_000_000, 0)
	second := first + secondsPerDay
	e.deliverOK(second, e.distribute([]*Page{makePage(0, a, b)}, true))

	p := e.progress()
	assert.Equal(t, uint64(2000), p.CarryOver)
	// Day two remainder: 1_000_000 - 600_000 - 2000 carried.
	assert.Equal(t, uint64(399_000+398_000), e.balance(e.creator.Address()))
}

func TestDistributeMissingWallet(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	e.deliverOK(day0, &UpdatePolicyMsg{
		Metadata:              &feeroute.Metadata{Schema: 1},
		VaultID:               e.vaultID,
		SetFundMissingWallets: true,
		FundMissingWallets:    false,
	})
	e.accrue(1_000_000, 0)

	_, err := e.deliver(day0+100, e.distribute([]*Page{makePage(0, a)}, true))
	assert.IsErr(t, ErrTransferFailed, err)

	// Once the investor owns a wallet the same call goes through.
	assert.Nil(t, e.cash.IssueCoins(e.db, feeroute.Address(a.Investor), 1, "USDQ"))
	e.deliverOK(day0+200, e.distribute([]*Page{makePage(0, a)}, true))
	assert.Equal(t, uint64(600_001), e.balance(feeroute.Address(a.Investor)))
}

func TestDistributeZeroClaimSkipsPages(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)

	// No fees accrued. Pages are ignored, the cursor stays put and
	// nobody is paid.
	res := e.deliverOK(day0+100, e.distribute([]*Page{makePage(0, a)}, false))
	assert.Equal(t, 1, len(res.Events))
	assert.Equal(t, "quote_fees_claimed", res.Events[0].EventType())

	p := e.progress()
	assert.Equal(t, uint64(0), p.PaginationCursor)
	assert.Equal(t, uint64(0), p.PagesProcessedToday)
	assert.Equal(t, uint64(0), e.balance(feeroute.Address(a.Investor)))

	// Once fees exist the same page goes through.
	e.accrue(1_000_000, 0)
	e.deliverOK(day0+200, e.distribute([]*Page{makePage(0, a)}, true))
	assert.Equal(t, uint64(600_000), e.balance(feeroute.Address(a.Investor)))
}

func TestDistributeUnknownStream(t *testing.T) {
	e := newTestEnv(t)
	e.accrue(1_000_000, 0)

	ref := &InvestorRef{
		Stream:   []byte("no-such-stream"),
		Investor: feeroutetest.NewCondition().Address(),
	}
	_, err := e.deliver(day0+100, e.distribute([]*Page{makePage(0, ref)}, true))
	assert.IsErr(t, ErrMissingInput, err)
}

func TestDistributeOwnerMismatch(t *testing.T) {
	e := newTestEnv(t)
	a := e.addInvestor("stream-a", 600)
	e.accrue(1_000_000, 0)

	// Declared payout target differs from the stream owner.
	ref := &InvestorRef{
		Stream:   a.Stream,
		Investor: feeroutetest.NewCondition().Address(),
	}
	_, err := e.deliver(day0+100, e.distribute([]*Page{makePage(0, ref)}, true))
	assert.IsErr(t, ErrMissingInput, err)
	assert.Equal(t, uint64(0), e.balance(feeroute.Address(a.Investor)))
}

func TestDistributeWithoutProgress(t *testing.T) {
	e := newTestEnv(t)
	msg := e.distribute(nil, false)
	msg.VaultID = []byte("no-such-vault")
	_, err := e.deliver(day0+100, msg)
	assert.IsErr(t, errors.ErrNotFound, err)
}
