/*
Package feeroutetest provides mocked implementations of the core
interfaces, to be used when testing the engine extensions.

Mocks are substitutes for the real implementations. Use them freely in
tests, but never in production code.
*/
package feeroutetest
