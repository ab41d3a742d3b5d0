/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets. Each bucket
contains only one type of object, stored under an explicit composite
key (bucket prefix + entity key). This keeps the full key space
auditable: there is no hidden derivation between an entity and the
bytes it lives under.
*/
package orm
