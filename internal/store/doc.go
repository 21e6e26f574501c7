// Package store provides access to the remote key-value store behind the
// scoring methods. Backend abstracts the storage technology; Client adds
// the retry policy and separates best-effort cache calls from required
// reads.
package store
