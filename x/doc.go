/*
Package x contains the extensions of the fee routing engine.

Subpackages implement the business modules: cash holds token balances,
lockstream tracks investor lock records, amm models the honorary pool
position that accrues fees, and distribution runs the daily payout
crank. This package itself only declares contracts that all of them
share, most importantly the Authenticator used to check transaction
authorization.
*/
package x
