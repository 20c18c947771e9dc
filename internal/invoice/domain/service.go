package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/dashboard/internal/form"
)

// ListPath is the invoices list view signalled after every mutation.
const ListPath = "/dashboard/invoices"

type Service interface {
	Create(ctx context.Context, fields form.Fields) error
	Update(ctx context.Context, id string, fields form.Fields) error
	Delete(ctx context.Context, id string) error

	FetchInvoiceByID(ctx context.Context, id string) (InvoiceForm, error)
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]InvoicesTableRow, error)
	FetchInvoicePageCount(ctx context.Context, query string) (int, error)
	FetchLatestInvoices(ctx context.Context) ([]LatestInvoice, error)
}

var (
	ErrInvalidID = errors.New("invalid_id")
	ErrNotFound  = errors.New("not_found")
)
