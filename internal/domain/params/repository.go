package params

import "context"

type Repository interface {
	// Get returns the singleton row. Stores are seeded on open, so a
	// missing row is an infrastructure error.
	Get(ctx context.Context) (*ParameterSet, error)
	Save(ctx context.Context, p *ParameterSet) error
}
