// Package history records cross-validation runs in a SQLite file so that
// trainers and settings can be compared across invocations.
//
// The store uses modernc.org/sqlite, a cgo-free driver, so the binary stays
// statically linked. Each run keeps its per-fold values next to the
// aggregate of every metric field.
package history
