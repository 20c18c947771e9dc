package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/smallbiznis/dashboard/internal/customer/domain"
	"github.com/smallbiznis/dashboard/internal/invoice/format"
	"github.com/smallbiznis/dashboard/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Config  *config.DashboardConfigHolder `optional:"true"`
	Metrics *metrics.Metrics              `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	config  *config.DashboardConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("customer.service"),
		repo:    p.Repo,
		config:  p.Config,
		metrics: p.Metrics,
	}
}

func (s *Service) FetchCustomers(ctx context.Context) (customers []domain.CustomerField, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordQuery(ctx, "fetch_customers", started, err) }()

	customers, err = s.repo.ListFields(ctx)
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_customers"), zap.Error(err))
		return nil, err
	}
	if customers == nil {
		customers = []domain.CustomerField{}
	}
	return customers, nil
}

func (s *Service) FetchFilteredCustomers(ctx context.Context, query string) (rows []domain.CustomersTableRow, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordQuery(ctx, "fetch_filtered_customers", started, err) }()

	summaries, err := s.repo.Summaries(ctx, strings.TrimSpace(query))
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_filtered_customers"), zap.Error(err))
		return nil, err
	}

	symbol := s.config.Get().CurrencySymbol
	rows = make([]domain.CustomersTableRow, 0, len(summaries))
	for _, item := range summaries {
		rows = append(rows, domain.CustomersTableRow{
			ID:            item.ID,
			Name:          item.Name,
			Email:         item.Email,
			ImageURL:      item.ImageURL,
			TotalInvoices: item.TotalInvoices,
			TotalPending:  format.Currency(item.TotalPending, symbol),
			TotalPaid:     format.Currency(item.TotalPaid, symbol),
		})
	}
	return rows, nil
}
