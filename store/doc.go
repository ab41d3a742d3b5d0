/*
Package store provides the key-value storage layer of the engine.

The central building block is the BTreeCacheWrap, which buffers all
writes in an in-memory btree and only pushes them to the backing store
when Write is called. Wrapping every state transition in a cache wrap
gives us all-or-nothing semantics: either a distribution step commits
completely, or the store is left untouched.
*/
package store
