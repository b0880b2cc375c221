package repositories

import "context"

// ReportCache stores computed reports keyed by their parameters.
//
// Callers scope keys by Generation: a value computed while the ledger changed is stored
// under the old generation and never read again.
type ReportCache interface {
	// Generation returns the current cache generation.
	Generation(ctx context.Context) (int64, error)

	// Get decodes the cached value into dest. found is false on a miss.
	Get(ctx context.Context, key string, dest any) (found bool, err error)

	Set(ctx context.Context, key string, value any) error

	// Invalidate starts a new generation and drops what it can of the old one.
	Invalidate(ctx context.Context) error
}
