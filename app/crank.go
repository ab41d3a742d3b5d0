package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/tendermint/tendermint/libs/log"

	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
)

// CrankService executes calls against a durable store. Each delivered
// call is an all-or-nothing transaction: handler writes are buffered on
// a cache wrap and flushed only on success.
type CrankService struct {
	db     feeroute.CacheableKVStore
	router *Router
	logger log.Logger
	now    func() time.Time
}

func NewCrankService(db feeroute.CacheableKVStore, router *Router, logger log.Logger) *CrankService {
	if logger == nil {
		logger = feeroute.DefaultLogger
	}
	return &CrankService{
		db:     db,
		router: router,
		logger: logger,
		now:    time.Now,
	}
}

// Check dry-runs a call. State written by the handler is always
// discarded.
func (s *CrankService) Check(ctx feeroute.Context, tx feeroute.Tx) (*feeroute.CheckResult, error) {
	path, err := msgPath(tx)
	if err != nil {
		return nil, err
	}
	ctx = s.prepare(ctx, path)

	cache := s.db.CacheWrap()
	defer cache.Discard()
	return s.router.Handler(path).Check(ctx, cache, tx)
}

// Deliver executes a call. On success all handler writes are committed
// and the result with its events is returned. On failure nothing is
// committed.
func (s *CrankService) Deliver(ctx feeroute.Context, tx feeroute.Tx) (*feeroute.DeliverResult, error) {
	path, err := msgPath(tx)
	if err != nil {
		return nil, err
	}
	ctx = s.prepare(ctx, path)
	logger := feeroute.GetLogger(ctx)

	start := time.Now()
	cache := s.db.CacheWrap()
	res, err := s.router.Handler(path).Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		mtxCalls.WithLabelValues(path, "err").Inc()
		mtxCallDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		logger.Error("call failed", "err", err)
		return nil, err
	}
	if err := cache.Write(); err != nil {
		mtxCalls.WithLabelValues(path, "err").Inc()
		mtxCallDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		logger.Error("cannot write call state", "err", err)
		return nil, errors.Wrap(err, "cannot write call state")
	}
	mtxCalls.WithLabelValues(path, "ok").Inc()
	mtxCallDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	for _, ev := range res.Events {
		mtxEvents.WithLabelValues(ev.EventType()).Inc()
	}
	logger.Info("call executed", "events", len(res.Events))
	return res, nil
}

// prepare stamps the call context with an execution time when none is
// set and a correlation ID for the logs.
func (s *CrankService) prepare(ctx feeroute.Context, path string) feeroute.Context {
	if _, err := feeroute.BlockTime(ctx); err != nil {
		ctx = feeroute.WithBlockTime(ctx, s.now())
	}
	logger := s.logger.With("call", uuid.NewString(), "path", path)
	return feeroute.WithLogger(ctx, logger)
}

func msgPath(tx feeroute.Tx) (string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return "", errors.Wrap(err, "cannot get message")
	}
	return msg.Path(), nil
}
