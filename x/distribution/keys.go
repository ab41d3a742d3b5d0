package distribution

import (
	feeroute "github.com/meteorroute/feeroute"
)

// VaultAuthority is the deterministic sub-identity that owns the
// vault's treasury and signs all outgoing transfers.
func VaultAuthority(vaultID []byte) feeroute.Condition {
	return feeroute.NewCondition("feedist", "vault", vaultID)
}

// TreasuryAddress is where claimed quote fees sit between intake and
// payout. It is simply the vault authority's own account.
func TreasuryAddress(vaultID []byte) feeroute.Address {
	return VaultAuthority(vaultID).Address()
}
