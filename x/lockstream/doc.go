/*
Package lockstream tracks investor vesting records and answers the one
question the distribution engine asks: how much does this investor have
locked right now.

Locked amounts decay as investors withdraw, so the engine never caches
them. Every crank call reads the records again.
*/
package lockstream
