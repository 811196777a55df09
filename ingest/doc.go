// Package ingest provides bulk loading of atoms into a store.
//
// The Loader type reads atoms from s-expression text and interns them
// concurrently:
//   - Parsing happens synchronously on the caller's goroutine
//   - Interning runs in batches on a worker pool
//
// Errors during async interning are logged but do not fail the load; call
// Wait to drain in-flight batches before closing the store.
package ingest
