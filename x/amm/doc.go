/*
Package amm models the honorary pool position that accrues trading
fees on behalf of the investors.

The position is registered once per vault and accrues fees in two
currencies. Claiming moves whatever accrued into per-currency holding
accounts and reports both amounts, so the distribution engine can
enforce its quote-only guarantee before touching any of the money.
*/
package amm
