package seed

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/auth/password"
	authrepo "github.com/smallbiznis/dashboard/internal/auth/repository"
	authsvc "github.com/smallbiznis/dashboard/internal/auth/service"
	customerrepo "github.com/smallbiznis/dashboard/internal/customer/repository"
	invoicedomain "github.com/smallbiznis/dashboard/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/dashboard/internal/invoice/repository"
	"github.com/smallbiznis/dashboard/internal/migration"
	revenuerepo "github.com/smallbiznis/dashboard/internal/revenue/repository"
	"github.com/smallbiznis/dashboard/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeederRunsOnce(t *testing.T) {
	password.Cost = bcrypt.MinCost
	ctx := context.Background()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(ctx, conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	users := authrepo.NewGorm(conn, node)
	auth := authsvc.New(authsvc.Params{Log: zap.NewNop(), Repo: users})
	customers := customerrepo.NewGorm(conn, node)
	invoices := invoicerepo.NewGorm(conn, node)
	revenue := revenuerepo.NewGorm(conn, node)

	s := New(Params{
		Log:       zap.NewNop(),
		Auth:      auth,
		Users:     users,
		Customers: customers,
		Invoices:  invoices,
		Revenue:   revenue,
	})

	require.NoError(t, s.Run(ctx))
	require.NoError(t, s.Run(ctx))

	userCount, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userCount)

	customerCount, err := customers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), customerCount)

	invoiceCount, err := invoices.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(13), invoiceCount)

	points, err := revenue.List(ctx)
	require.NoError(t, err)
	require.Len(t, points, 12)
	assert.Equal(t, "Jan", points[0].Month)
	assert.Equal(t, "Dec", points[11].Month)

	totals, err := invoices.SumByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusTotals{Paid: 100626, Pending: 125632}, totals)

	user, err := auth.Authorize(ctx, defaultUserEmail, defaultUserPassword)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, defaultUserName, user.Name)
}
