package screenings

import "context"

// Repo defines persistence operations for screenings.
type Repo interface {
	// CreateBatch stores every screening of an upload or none of them.
	CreateBatch(ctx context.Context, items []Screening) error
	GetByID(ctx context.Context, id string) (Screening, error)
	// List returns screenings newest first.
	List(ctx context.Context, limit, offset int) ([]Screening, error)
}
