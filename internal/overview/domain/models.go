package domain

import "context"

// CardData is the summary shown on the dashboard KPI cards.
type CardData struct {
	NumberOfCustomers    int64  `json:"number_of_customers"`
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}

type Service interface {
	FetchCardTotals(ctx context.Context) (CardData, error)
}
