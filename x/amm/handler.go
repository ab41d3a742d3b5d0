package amm

import (
	feeroute "github.com/meteorroute/feeroute"
	"github.com/meteorroute/feeroute/errors"
	"github.com/meteorroute/feeroute/orm"
	"github.com/meteorroute/feeroute/x"
)

const registerPositionCost = 0

// RegisterRoutes registers handlers for position messages.
func RegisterRoutes(r feeroute.Registry, auth x.Authenticator) {
	r.Handle(RegisterPositionMsg{}.Path(), &registerPositionHandler{
		auth:   auth,
		bucket: NewPositionBucket(),
	})
}

type registerPositionHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ feeroute.Handler = (*registerPositionHandler)(nil)

func (h *registerPositionHandler) Check(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &feeroute.CheckResult{GasAllocated: registerPositionCost}, nil
}

func (h *registerPositionHandler) Deliver(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*feeroute.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	now, err := feeroute.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	pos := Position{
		Metadata:   &feeroute.Metadata{Schema: 1},
		Pool:       msg.Pool,
		QuoteToken: msg.QuoteToken,
		BaseToken:  msg.BaseToken,
		TickLower:  msg.TickLower,
		TickUpper:  msg.TickUpper,
		// A fresh position starts empty, so at registration time the
		// single-sided range is all it takes to be quote only.
		VerifiedQuoteOnly: true,
		CreatedAt:         feeroute.AsUnixTime(now),
	}
	if err := h.bucket.Put(db, msg.VaultID, &pos); err != nil {
		return nil, errors.Wrap(err, "cannot store position")
	}
	return &feeroute.DeliverResult{Data: msg.VaultID}, nil
}

// validate extracts the message and ensures registration is allowed.
func (h *registerPositionHandler) validate(ctx feeroute.Context, db feeroute.KVStore, tx feeroute.Tx) (*RegisterPositionMsg, error) {
	var msg RegisterPositionMsg
	if err := feeroute.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	switch has, err := h.bucket.Has(db, msg.VaultID); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check position")
	case has:
		return nil, errors.Wrap(errors.ErrDuplicate, "position already registered")
	}
	return &msg, nil
}
