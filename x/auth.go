package x

import (
	feeroute "github.com/meteorroute/feeroute"
)

// Authenticator is an interface we can use to extract authentication
// info from the context. This should be passed into the constructor of
// handlers, so another authentication system can be plugged in without
// changing the extensions.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled by the current
	// context.
	GetConditions(feeroute.Context) []feeroute.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(feeroute.Context, feeroute.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetConditions combines the conditions from all chained
// Authenticators.
func (m MultiAuth) GetConditions(ctx feeroute.Context) []feeroute.Condition {
	var res []feeroute.Condition
	for _, impl := range m.impls {
		if add := impl.GetConditions(ctx); len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any chained Authenticator fulfills this
// address.
func (m MultiAuth) HasAddress(ctx feeroute.Context, addr feeroute.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx feeroute.Context, auth Authenticator) []feeroute.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]feeroute.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first fulfilled condition if any, otherwise
// nil.
func MainSigner(ctx feeroute.Context, auth Authenticator) feeroute.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all required addresses are fulfilled
// in the context.
func HasAllAddresses(ctx feeroute.Context, auth Authenticator, required []feeroute.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
