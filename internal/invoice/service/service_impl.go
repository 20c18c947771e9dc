package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/dashboard/internal/clock"
	"github.com/smallbiznis/dashboard/internal/config"
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	"github.com/smallbiznis/dashboard/internal/form"
	"github.com/smallbiznis/dashboard/internal/invoice/domain"
	"github.com/smallbiznis/dashboard/internal/invoice/format"
	"github.com/smallbiznis/dashboard/internal/notify"
	"github.com/smallbiznis/dashboard/internal/observability/metrics"
	"github.com/smallbiznis/dashboard/internal/observability/tracing"
	"github.com/smallbiznis/dashboard/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
	Notifier     notify.Notifier
	Clock        clock.Clock
	Config       *config.DashboardConfigHolder `optional:"true"`
	Metrics      *metrics.Metrics              `optional:"true"`
}

type Service struct {
	log          *zap.Logger
	repo         domain.Repository
	customerRepo customerdomain.Repository
	notifier     notify.Notifier
	clock        clock.Clock
	config       *config.DashboardConfigHolder
	metrics      *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("invoice.service"),
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		notifier:     p.Notifier,
		clock:        p.Clock,
		config:       p.Config,
		metrics:      p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, fields form.Fields) (err error) {
	ctx, span := tracing.Start(ctx, "invoice.create")
	defer func() {
		tracing.End(span, err)
		s.metrics.RecordMutation(ctx, "create", err)
	}()

	input, err := form.ParseInvoice(fields)
	if err != nil {
		return err
	}

	invoice := domain.Invoice{
		ID:         uuid.NewString(),
		CustomerID: input.CustomerID,
		Amount:     format.ToCents(input.Amount),
		Status:     input.Status,
		Date:       s.clock.Now().UTC().Format(domain.DateLayout),
	}
	if err := s.repo.Insert(ctx, &invoice); err != nil {
		s.log.Error("Database Error", zap.String("operation", "create_invoice"), zap.Error(err))
		return err
	}

	s.notifier.Revalidate(ctx, domain.ListPath)
	s.notifier.Navigate(ctx, domain.ListPath)
	return nil
}

func (s *Service) Update(ctx context.Context, id string, fields form.Fields) (err error) {
	ctx, span := tracing.Start(ctx, "invoice.update", tracing.InvoiceID(id))
	defer func() {
		tracing.End(span, err)
		s.metrics.RecordMutation(ctx, "update", err)
	}()

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidID
	}

	input, err := form.ParseInvoice(fields)
	if err != nil {
		return err
	}

	matched, err := s.repo.UpdateByID(ctx, id, domain.Changes{
		CustomerID: input.CustomerID,
		Amount:     format.ToCents(input.Amount),
		Status:     input.Status,
	})
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "update_invoice"), zap.Error(err))
		return err
	}
	if matched == 0 {
		s.log.Warn("update matched no invoice", zap.String("invoice_id", id))
	}

	s.notifier.Revalidate(ctx, domain.ListPath)
	s.notifier.Navigate(ctx, domain.ListPath)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.Start(ctx, "invoice.delete", tracing.InvoiceID(id))
	defer func() {
		tracing.End(span, err)
		s.metrics.RecordMutation(ctx, "delete", err)
	}()

	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteByID(ctx, parsed)
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "delete_invoice"), zap.Error(err))
		return err
	}
	s.log.Debug("invoice deleted",
		zap.String("invoice_id", parsed),
		zap.Int64("deleted", deleted),
	)

	s.notifier.Revalidate(ctx, domain.ListPath)
	return nil
}

func (s *Service) FetchInvoiceByID(ctx context.Context, id string) (_ domain.InvoiceForm, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordQuery(ctx, "fetch_invoice_by_id", started, err) }()

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.InvoiceForm{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_invoice_by_id"), zap.Error(err))
		return domain.InvoiceForm{}, err
	}
	if item == nil {
		return domain.InvoiceForm{}, domain.ErrNotFound
	}

	return domain.InvoiceForm{
		ID:         item.ID,
		CustomerID: item.CustomerID,
		Amount:     format.FromCents(item.Amount),
		Status:     item.Status,
	}, nil
}

func (s *Service) FetchFilteredInvoices(ctx context.Context, query string, page int) (rows []domain.InvoicesTableRow, err error) {
	ctx, span := tracing.Start(ctx, "invoice.search", tracing.Search(query, page)...)
	started := time.Now()
	defer func() {
		tracing.End(span, err)
		s.metrics.RecordQuery(ctx, "fetch_filtered_invoices", started, err)
	}()

	offset := pagination.Offset{Page: page, PageSize: s.config.Get().ItemsPerPage}
	rows, err = s.repo.Search(ctx, strings.TrimSpace(query), offset)
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_filtered_invoices"), zap.Error(err))
		return nil, err
	}
	if rows == nil {
		rows = []domain.InvoicesTableRow{}
	}
	return rows, nil
}

func (s *Service) FetchInvoicePageCount(ctx context.Context, query string) (pages int, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordQuery(ctx, "fetch_invoice_page_count", started, err) }()

	count, err := s.repo.CountSearch(ctx, strings.TrimSpace(query))
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_invoice_page_count"), zap.Error(err))
		return 0, err
	}
	return pagination.TotalPages(count, s.config.Get().ItemsPerPage), nil
}

// FetchLatestInvoices returns the most recent invoices joined in memory with
// their customers. An invoice whose customer is missing keeps empty customer fields.
func (s *Service) FetchLatestInvoices(ctx context.Context) (latest []domain.LatestInvoice, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordQuery(ctx, "fetch_latest_invoices", started, err) }()

	cfg := s.config.Get()
	invoices, err := s.repo.ListRecent(ctx, cfg.LatestInvoices)
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_latest_invoices"), zap.Error(err))
		return nil, err
	}
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_latest_invoices"), zap.Error(err))
		return nil, err
	}

	byID := make(map[string]*customerdomain.Customer, len(customers))
	for _, c := range customers {
		if c == nil {
			continue
		}
		byID[c.ID] = c
	}

	latest = make([]domain.LatestInvoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		row := domain.LatestInvoice{
			ID:     inv.ID,
			Amount: format.Currency(inv.Amount, cfg.CurrencySymbol),
		}
		if c, ok := byID[inv.CustomerID]; ok {
			row.Name = c.Name
			row.Email = c.Email
			row.ImageURL = c.ImageURL
		}
		latest = append(latest, row)
	}
	return latest, nil
}

func (s *Service) parseID(value string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", domain.ErrInvalidID
	}
	return id.String(), nil
}
