package domain

import "context"

type Service interface {
	FetchCustomers(ctx context.Context) ([]CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]CustomersTableRow, error)
}
