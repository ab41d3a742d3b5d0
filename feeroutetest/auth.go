package feeroutetest

import (
	"encoding/binary"
	"sync/atomic"

	feeroute "github.com/meteorroute/feeroute"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// Set a single condition via Signer or many via Signers. Both can be
// used at once.
type Auth struct {
	// Signer is the main signer.
	Signer feeroute.Condition

	// Signers are additional signers.
	Signers []feeroute.Condition
}

func (a *Auth) GetConditions(feeroute.Context) []feeroute.Condition {
	var conds []feeroute.Condition
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx feeroute.Context, addr feeroute.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

var condCnt uint64

// NewCondition returns a mocked condition. Each call returns a
// different value.
func NewCondition() feeroute.Condition {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&condCnt, 1))
	return feeroute.NewCondition("mock", "cond", raw)
}
