package ticket

import "errors"

// The rendering error taxonomy. Callers distinguish the three kinds with
// errors.Is; everything below a kind is wrapped detail.
var (
	// ErrNotFound - the reference has no cached record. Client error, never
	// retried.
	ErrNotFound = errors.New("ticket record not found")

	// ErrCacheUnavailable - the cache could not be reached. Safe to retry,
	// the read is idempotent.
	ErrCacheUnavailable = errors.New("ticket cache unavailable")

	// ErrRender - composition or protection failed. Deterministic for a
	// given record, so not retried.
	ErrRender = errors.New("receipt render failed")
)
