/*
Package errors implements custom error interfaces for the feeroute
engine.

The idea is to reuse as many errors declared here as possible and
declare custom errors only when an extension owns a whole class of
failures (see x/distribution). Errors are registered with a unique
numeric code so a caller can match on the failure class without string
comparison, and every error instance carries a stack trace attached at
the lowest possible frame.
*/
package errors
