package domain

import "context"

type Repository interface {
	Insert(ctx context.Context, customer *Customer) error
	// List returns every customer ordered by name.
	List(ctx context.Context) ([]*Customer, error)
	ListFields(ctx context.Context) ([]CustomerField, error)
	// Summaries returns customers whose name or email contains query, with
	// their invoice count and per-status sums, ordered by name.
	Summaries(ctx context.Context, query string) ([]CustomerSummary, error)
	Count(ctx context.Context) (int64, error)
}
