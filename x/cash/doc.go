/*
Package cash defines a simple token ledger.

Every address owns at most one wallet holding whole-unit token amounts
per ticker. The Controller is the value-transfer primitive of the
engine: treasury intake, investor payouts and the creator remainder all
go through MoveCoins under the vault authority.
*/
package cash
