package deadline

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists deadline records.
//
// List orders results open-first, then by ascending due date, then newest
// created first, so the most pressing items always lead.  GetByID returns a
// not-found coded error for unknown identifiers.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	List(ctx context.Context, f Filter) ([]Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}
