/*
Package distribution implements the daily fee distribution engine.

Once per day the engine claims the trading fees accrued by a vault's
honorary position and routes them pro rata to the investors that still
have tokens locked, with the remainder going to the project creator.
Because the investor set can be too large for a single call, a day is
processed as a sequence of hash-committed pages resumable across
crank calls. Every call either commits completely or leaves no trace;
the whole design leans on that all-or-nothing property.

The engine keeps two records per vault: the rarely changing Policy and
the Progress record that carries the day state machine, the pagination
cursor and the running totals.
*/
package distribution
