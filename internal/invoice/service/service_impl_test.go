package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/dashboard/internal/clock"
	"github.com/smallbiznis/dashboard/internal/config"
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	customerrepo "github.com/smallbiznis/dashboard/internal/customer/repository"
	"github.com/smallbiznis/dashboard/internal/form"
	"github.com/smallbiznis/dashboard/internal/invoice/domain"
	"github.com/smallbiznis/dashboard/internal/invoice/repository"
	"github.com/smallbiznis/dashboard/internal/notify"
	"github.com/smallbiznis/dashboard/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	svc      domain.Service
	repo     domain.Repository
	customer customerdomain.Repository
	clock    *clock.FakeClock
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Invoice{}, &customerdomain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.NewGorm(conn, node)
	custRepo := customerrepo.NewGorm(conn, node)
	fake := clock.NewFakeClock(time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC))

	svc := New(Params{
		Log:          zap.NewNop(),
		Repo:         repo,
		CustomerRepo: custRepo,
		Notifier:     notify.NewDispatcher(nil, zap.NewNop()),
		Clock:        fake,
		Config:       config.NewStaticDashboardConfig(config.DefaultDashboardConfig()),
	})
	return fixture{db: conn, svc: svc, repo: repo, customer: custRepo, clock: fake}
}

func (f fixture) seedCustomers(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, c := range []customerdomain.Customer{
		{ID: "c-lee", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{ID: "c-evil", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	} {
		customer := c
		require.NoError(t, f.customer.Insert(ctx, &customer))
	}
}

func (f fixture) seedInvoice(t *testing.T, customerID string, amount int64, status, date string) string {
	t.Helper()
	invoice := domain.Invoice{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
		Date:       date,
	}
	require.NoError(t, f.repo.Insert(context.Background(), &invoice))
	return invoice.ID
}

func (f fixture) onlyInvoice(t *testing.T) domain.Invoice {
	t.Helper()
	var invoices []domain.Invoice
	require.NoError(t, f.db.Find(&invoices).Error)
	require.Len(t, invoices, 1)
	return invoices[0]
}

func TestCreateStoresCentsAndSignals(t *testing.T) {
	f := newFixture(t)
	ctx, rec := notify.WithRecorder(context.Background())

	err := f.svc.Create(ctx, form.Fields{"customerId": "c1", "amount": "45.00", "status": "pending"})
	require.NoError(t, err)

	stored := f.onlyInvoice(t)
	assert.Equal(t, int64(4500), stored.Amount)
	assert.Equal(t, "pending", stored.Status)
	assert.Equal(t, "c1", stored.CustomerID)
	assert.Equal(t, "2024-03-09", stored.Date)
	_, err = uuid.Parse(stored.ID)
	assert.NoError(t, err)

	assert.Equal(t, []string{domain.ListPath}, rec.Revalidated())
	target, ok := rec.NavigateTo()
	assert.True(t, ok)
	assert.Equal(t, domain.ListPath, target)

	got, err := f.svc.FetchInvoiceByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceForm{ID: stored.ID, CustomerID: "c1", Amount: 45.00, Status: "pending"}, got)
}

func TestCreateDatesFromClockInUTC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clock.Advance(time.Hour)
	require.NoError(t, f.svc.Create(ctx, form.Fields{"customerId": "c-lee", "amount": "1", "status": "paid"}))

	var stored domain.Invoice
	require.NoError(t, f.db.First(&stored).Error)
	assert.Equal(t, "2024-03-10", stored.Date)
}

func TestCreateRoundsFractionalCents(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Create(context.Background(), form.Fields{"customer_id": "c1", "amount": "0.29", "status": "paid"}))
	assert.Equal(t, int64(29), f.onlyInvoice(t).Amount)
}

func TestCreateRejectsInvalidInputBeforeWriting(t *testing.T) {
	f := newFixture(t)
	ctx, rec := notify.WithRecorder(context.Background())

	err := f.svc.Create(ctx, form.Fields{"customerId": "c1", "amount": "12", "status": "overdue"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, form.ErrValidation))

	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("status"))

	count, err := f.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, rec.Revalidated())
}

func TestUpdateChangesFields(t *testing.T) {
	f := newFixture(t)
	id := f.seedInvoice(t, "c1", 1000, "pending", "2024-01-01")
	ctx, rec := notify.WithRecorder(context.Background())

	err := f.svc.Update(ctx, id, form.Fields{"customerId": "c2", "amount": "12.34", "status": "paid"})
	require.NoError(t, err)

	stored := f.onlyInvoice(t)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "c2", stored.CustomerID)
	assert.Equal(t, int64(1234), stored.Amount)
	assert.Equal(t, "paid", stored.Status)
	assert.Equal(t, "2024-01-01", stored.Date)

	assert.Equal(t, []string{domain.ListPath}, rec.Revalidated())
	_, ok := rec.NavigateTo()
	assert.True(t, ok)
}

func TestUpdateUnknownIDSucceeds(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Update(context.Background(), uuid.NewString(), form.Fields{"customerId": "c2", "amount": "1", "status": "paid"})
	assert.NoError(t, err)
}

func TestUpdateValidatesInput(t *testing.T) {
	f := newFixture(t)
	id := f.seedInvoice(t, "c1", 1000, "pending", "2024-01-01")

	err := f.svc.Update(context.Background(), id, form.Fields{"customerId": "c2", "amount": "abc", "status": "paid"})
	assert.ErrorIs(t, err, form.ErrValidation)
	assert.Equal(t, int64(1000), f.onlyInvoice(t).Amount)

	err = f.svc.Update(context.Background(), " ", form.Fields{"customerId": "c2", "amount": "1", "status": "paid"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx, rec := notify.WithRecorder(context.Background())
	id := f.seedInvoice(t, "c1", 1000, "pending", "2024-01-01")
	other := f.seedInvoice(t, "c1", 2000, "paid", "2024-01-02")

	require.NoError(t, f.svc.Delete(ctx, id))

	_, err := f.svc.FetchInvoiceByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.FetchInvoiceByID(ctx, other)
	assert.NoError(t, err)

	assert.Equal(t, []string{domain.ListPath}, rec.Revalidated())
	_, navigated := rec.NavigateTo()
	assert.False(t, navigated)
}

func TestDeleteMissingIDSucceeds(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.svc.Delete(context.Background(), uuid.NewString()))
}

func TestDeleteRejectsMalformedID(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), "not-a-uuid"), domain.ErrInvalidID)
}

func TestFetchInvoiceByIDNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.FetchInvoiceByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchFilteredInvoicesJoinsAndFilters(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(t)
	ctx := context.Background()

	f.seedInvoice(t, "c-lee", 15795, "pending", "2022-12-06")
	f.seedInvoice(t, "c-evil", 20348, "pending", "2022-11-14")
	f.seedInvoice(t, "c-evil", 3040, "paid", "2022-10-29")
	f.seedInvoice(t, "c-missing", 44800, "paid", "2023-09-10")

	rows, err := f.svc.FetchFilteredInvoices(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, rows, 3, "invoices without a customer are excluded")
	assert.Equal(t, "2022-12-06", rows[0].Date)
	assert.Equal(t, "Lee Robinson", rows[0].Name)
	assert.Equal(t, "lee@robinson.com", rows[0].Email)
	assert.Equal(t, "/customers/lee-robinson.png", rows[0].ImageURL)
	assert.Equal(t, int64(15795), rows[0].Amount)
	assert.Equal(t, "2022-10-29", rows[2].Date)

	rows, err = f.svc.FetchFilteredInvoices(ctx, "RABBIT", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = f.svc.FetchFilteredInvoices(ctx, "2034", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1, "amount is matched as text")
	assert.Equal(t, int64(20348), rows[0].Amount)

	rows, err = f.svc.FetchFilteredInvoices(ctx, "Paid", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "paid", rows[0].Status)

	rows, err = f.svc.FetchFilteredInvoices(ctx, "2022-11", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = f.svc.FetchFilteredInvoices(ctx, "_", 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchFilteredInvoicesPaginates(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(t)
	ctx := context.Background()

	for day := 1; day <= 14; day++ {
		f.seedInvoice(t, "c-lee", int64(day*100), "paid", fmt.Sprintf("2023-01-%02d", day))
	}

	first, err := f.svc.FetchFilteredInvoices(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, first, 6)
	assert.Equal(t, "2023-01-14", first[0].Date)

	third, err := f.svc.FetchFilteredInvoices(ctx, "", 3)
	require.NoError(t, err)
	require.Len(t, third, 2)
	assert.Equal(t, "2023-01-01", third[1].Date)

	clamped, err := f.svc.FetchFilteredInvoices(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, first, clamped)

	pages, err := f.svc.FetchInvoicePageCount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestFetchInvoicePageCountMatchesFilteredRows(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		f.seedInvoice(t, "c-evil", int64(1000+i), "pending", fmt.Sprintf("2023-02-%02d", i+1))
	}
	f.seedInvoice(t, "c-lee", 5000, "paid", "2023-03-01")

	for _, query := range []string{"", "evil", "lee", "pending", "100", "nothing"} {
		total := 0
		for page := 1; ; page++ {
			rows, err := f.svc.FetchFilteredInvoices(ctx, query, page)
			require.NoError(t, err)
			if len(rows) == 0 {
				break
			}
			total += len(rows)
		}
		pages, err := f.svc.FetchInvoicePageCount(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, (total+5)/6, pages, "query %q", query)
	}
}

func TestFetchLatestInvoices(t *testing.T) {
	f := newFixture(t)
	f.seedCustomers(t)
	ctx := context.Background()

	for day := 1; day <= 6; day++ {
		f.seedInvoice(t, "c-lee", int64(day)*123456, "paid", fmt.Sprintf("2023-05-%02d", day))
	}
	missing := f.seedInvoice(t, "c-missing", 999, "pending", "2023-06-01")

	latest, err := f.svc.FetchLatestInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 5)

	assert.Equal(t, domain.LatestInvoice{ID: missing, Amount: "$9.99"}, latest[0])
	assert.Equal(t, "Lee Robinson", latest[1].Name)
	assert.Equal(t, "lee@robinson.com", latest[1].Email)
	assert.Equal(t, "/customers/lee-robinson.png", latest[1].ImageURL)
	assert.Equal(t, "$7,407.36", latest[1].Amount)
}
