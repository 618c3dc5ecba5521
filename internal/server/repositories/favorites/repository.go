// Package favorites persists the (user, job) bookmark pairs. A pair exists
// at most once; the table's primary key enforces it.
package favorites

import (
	"context"
)

type Repository interface {
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	// Add inserts the pair; adding an existing pair is not an error.
	Add(ctx context.Context, userID, jobID string) error
	// Remove deletes the pair; removing an absent pair is not an error.
	Remove(ctx context.Context, userID, jobID string) error
	// ListJobIDs returns the user's favorite job ids whose job is still
	// active, oldest first.
	ListJobIDs(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context) (int, error)
}
