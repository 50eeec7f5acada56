// Package record holds the read-only budget record store.
//
// The store is a SQLite file produced by the offline CSV normalization
// batch. It is loaded exactly once into an immutable in-memory Dataset;
// the engine never writes to it. All name lookups go through CanonicalName
// so that NFKC variants of the same ministry/project/recipient name match.
package record
