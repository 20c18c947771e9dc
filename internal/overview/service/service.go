package service

import (
	"context"
	"time"

	"github.com/smallbiznis/dashboard/internal/config"
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/dashboard/internal/invoice/domain"
	"github.com/smallbiznis/dashboard/internal/invoice/format"
	"github.com/smallbiznis/dashboard/internal/observability/metrics"
	"github.com/smallbiznis/dashboard/internal/overview/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	InvoiceRepo  invoicedomain.Repository
	CustomerRepo customerdomain.Repository
	Config       *config.DashboardConfigHolder `optional:"true"`
	Metrics      *metrics.Metrics              `optional:"true"`
}

type Service struct {
	log          *zap.Logger
	invoiceRepo  invoicedomain.Repository
	customerRepo customerdomain.Repository
	config       *config.DashboardConfigHolder
	metrics      *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("overview.service"),
		invoiceRepo:  p.InvoiceRepo,
		customerRepo: p.CustomerRepo,
		config:       p.Config,
		metrics:      p.Metrics,
	}
}

// FetchCardTotals runs the invoice count, customer count and status sums
// concurrently. The first failure cancels the others and is returned.
func (s *Service) FetchCardTotals(ctx context.Context) (_ domain.CardData, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordQuery(ctx, "fetch_card_totals", started, err) }()

	var (
		invoices  int64
		customers int64
		totals    invoicedomain.StatusTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = s.invoiceRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.customerRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.invoiceRepo.SumByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_card_totals"), zap.Error(err))
		return domain.CardData{}, err
	}

	symbol := s.config.Get().CurrencySymbol
	return domain.CardData{
		NumberOfCustomers:    customers,
		NumberOfInvoices:     invoices,
		TotalPaidInvoices:    format.Currency(totals.Paid, symbol),
		TotalPendingInvoices: format.Currency(totals.Pending, symbol),
	}, nil
}
