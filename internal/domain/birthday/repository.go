package birthday

import (
	"context"
)

// Repository defines the operations for persisting and retrieving birthdays.
type Repository interface {
	// Set stores or overwrites the subject's birthday (last write wins).
	Set(ctx context.Context, subjectID string, d Date) error
	// Get returns the stored date or ErrBirthdayNotFound (defined by the
	// implementation's package) when absent.
	Get(ctx context.Context, subjectID string) (Date, error)
	// ListAll enumerates every stored record. Order is unspecified.
	// Records that fail to decode are skipped, not fatal.
	ListAll(ctx context.Context) ([]Record, error)
}
