package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	customerrepo "github.com/smallbiznis/dashboard/internal/customer/repository"
	invoicedomain "github.com/smallbiznis/dashboard/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/dashboard/internal/invoice/repository"
	"github.com/smallbiznis/dashboard/internal/overview/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchCardTotals(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&invoicedomain.Invoice{}, &customerdomain.Customer{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	invoices := invoicerepo.NewGorm(conn, node)
	customers := customerrepo.NewGorm(conn, node)
	svc := New(Params{Log: zap.NewNop(), InvoiceRepo: invoices, CustomerRepo: customers})
	ctx := context.Background()

	empty, err := svc.FetchCardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CardData{TotalPaidInvoices: "$0.00", TotalPendingInvoices: "$0.00"}, empty)

	for _, id := range []string{"c1", "c2"} {
		require.NoError(t, customers.Insert(ctx, &customerdomain.Customer{ID: id, Name: id, Email: id + "@example.com"}))
	}

	amounts := []struct {
		cents  int64
		status string
	}{
		{15795, "pending"},
		{20348, "pending"},
		{3040, "paid"},
		{44800, "paid"},
		{34577, "pending"},
		{54246, "paid"},
	}
	var sum int64
	for _, a := range amounts {
		sum += a.cents
		require.NoError(t, invoices.Insert(ctx, &invoicedomain.Invoice{
			ID:         uuid.NewString(),
			CustomerID: "c1",
			Amount:     a.cents,
			Status:     a.status,
			Date:       "2023-01-01",
		}))
	}

	cards, err := svc.FetchCardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cards.NumberOfCustomers)
	assert.Equal(t, int64(6), cards.NumberOfInvoices)
	assert.Equal(t, "$1,020.86", cards.TotalPaidInvoices)
	assert.Equal(t, "$707.20", cards.TotalPendingInvoices)

	totals, err := invoices.SumByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, sum, totals.Paid+totals.Pending)
}

type invoiceRepoMock struct {
	mock.Mock
	invoicedomain.Repository
}

func (m *invoiceRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *invoiceRepoMock) SumByStatus(ctx context.Context) (invoicedomain.StatusTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(invoicedomain.StatusTotals), args.Error(1)
}

type customerRepoMock struct {
	mock.Mock
	customerdomain.Repository
}

func (m *customerRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestFetchCardTotalsPropagatesFailure(t *testing.T) {
	boom := errors.New("connection reset")

	invoices := new(invoiceRepoMock)
	invoices.On("Count", mock.Anything).Return(int64(3), nil)
	invoices.On("SumByStatus", mock.Anything).Return(invoicedomain.StatusTotals{}, boom)
	customers := new(customerRepoMock)
	customers.On("Count", mock.Anything).Return(int64(1), nil)

	svc := New(Params{Log: zap.NewNop(), InvoiceRepo: invoices, CustomerRepo: customers})
	_, err := svc.FetchCardTotals(context.Background())
	assert.ErrorIs(t, err, boom)
}
