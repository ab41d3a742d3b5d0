/*
Package app wires the engine together: a message router that maps
message paths to their handlers, and the CrankService that executes
calls against a durable store.

Every call runs on a cache wrap of the backing store. A successful call
writes the whole wrap, a failed one discards it, so a call can never
leave partial state behind regardless of where inside a handler it
failed.
*/
package app
