package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("candidate not found")

// Store is the candidate persistence collaborator. Implementations do not
// retry failed calls.
type Store interface {
	List(ctx context.Context, order Order) ([]Candidate, error)
	ListByPosition(ctx context.Context, position string) ([]Candidate, error)
	Get(ctx context.Context, id string) (*Candidate, error)
	Create(ctx context.Context, c Candidate) (*Candidate, error)
	BulkCreate(ctx context.Context, cs []Candidate) ([]Candidate, error)
	Update(ctx context.Context, id string, u Update) (*Candidate, error)
	Delete(ctx context.Context, id string) error
}
