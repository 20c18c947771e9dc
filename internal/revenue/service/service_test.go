package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/smallbiznis/dashboard/internal/revenue/domain"
	"github.com/smallbiznis/dashboard/internal/revenue/repository"
	"github.com/smallbiznis/dashboard/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T, delay time.Duration) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Revenue{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := repository.NewGorm(conn, node)

	for _, p := range []domain.Revenue{
		{Month: "Jan", Revenue: 2000},
		{Month: "Feb", Revenue: 1800},
		{Month: "Mar", Revenue: 2200},
	} {
		point := p
		require.NoError(t, repo.Insert(context.Background(), &point))
	}

	cfg := config.DefaultDashboardConfig()
	cfg.RevenueDelay = delay
	return New(Params{
		Log:    zap.NewNop(),
		Repo:   repo,
		Config: config.NewStaticDashboardConfig(cfg),
	})
}

func TestFetchRevenueSeriesInInsertionOrder(t *testing.T) {
	svc := newService(t, 0)

	points, err := svc.FetchRevenueSeries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Point{
		{Month: "Jan", Revenue: 2000},
		{Month: "Feb", Revenue: 1800},
		{Month: "Mar", Revenue: 2200},
	}, points)
}

func TestFetchRevenueSeriesDelayHonorsCancellation(t *testing.T) {
	svc := newService(t, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.FetchRevenueSeries(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchRevenueSeriesWaitsForDelay(t *testing.T) {
	svc := newService(t, 30*time.Millisecond)

	started := time.Now()
	points, err := svc.FetchRevenueSeries(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 3)
	assert.GreaterOrEqual(t, time.Since(started), 30*time.Millisecond)
}
