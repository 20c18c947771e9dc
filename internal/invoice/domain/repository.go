package domain

import (
	"context"

	"github.com/smallbiznis/dashboard/pkg/db/pagination"
)

// Changes are the fields an update may set.
type Changes struct {
	CustomerID string
	Amount     int64
	Status     string
}

type Repository interface {
	Insert(ctx context.Context, invoice *Invoice) error
	// UpdateByID and DeleteByID return the number of matched records.
	UpdateByID(ctx context.Context, id string, changes Changes) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	ListRecent(ctx context.Context, limit int) ([]*Invoice, error)
	Search(ctx context.Context, query string, page pagination.Offset) ([]InvoicesTableRow, error)
	CountSearch(ctx context.Context, query string) (int64, error)
	Count(ctx context.Context) (int64, error)
	SumByStatus(ctx context.Context) (StatusTotals, error)
}
