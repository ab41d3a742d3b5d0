/*
Package feeroute defines the common interfaces that tie the fee routing
engine together: the key-value store abstractions, the message and
handler contracts, and the small value objects (addresses, conditions,
timestamps) shared by every extension under x/.

Implementations of the simpler pieces live here as well, when an
interface would be more overhead than help.
*/
package feeroute
