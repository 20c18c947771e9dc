package service

import (
	"context"
	"time"

	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/smallbiznis/dashboard/internal/observability/metrics"
	"github.com/smallbiznis/dashboard/internal/revenue/domain"
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
		log:     p.Log.Named("revenue.service"),
		repo:    p.Repo,
		config:  p.Config,
		metrics: p.Metrics,
	}
}

// FetchRevenueSeries returns the month/revenue series. A configured
// revenueDelay is waited out first so loading states can be exercised.
func (s *Service) FetchRevenueSeries(ctx context.Context) (points []domain.Point, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordQuery(ctx, "fetch_revenue", started, err) }()

	if delay := s.config.Get().RevenueDelay; delay > 0 {
		s.log.Debug("delaying revenue fetch", zap.Duration("delay", delay))
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	points, err = s.repo.List(ctx)
	if err != nil {
		s.log.Error("Database Error", zap.String("operation", "fetch_revenue"), zap.Error(err))
		return nil, err
	}
	if points == nil {
		points = []domain.Point{}
	}
	return points, nil
}
