// Package seed fills an empty store with the placeholder dashboard data.
package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	authdomain "github.com/smallbiznis/dashboard/internal/auth/domain"
	"github.com/smallbiznis/dashboard/internal/config"
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/dashboard/internal/invoice/domain"
	revenuedomain "github.com/smallbiznis/dashboard/internal/revenue/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	defaultUserName     = "User"
	defaultUserEmail    = "user@nextmail.com"
	defaultUserPassword = "123456"
)

var Module = fx.Module("seed",
	fx.Provide(New),
	fx.Invoke(func(cfg config.Config, s *Seeder) error {
		if !cfg.SeedOnStart {
			return nil
		}
		return s.Run(context.Background())
	}),
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Auth      authdomain.Service
	Users     authdomain.Repository
	Customers customerdomain.Repository
	Invoices  invoicedomain.Repository
	Revenue   revenuedomain.Repository
}

// Seeder writes through the repositories, so it targets whichever backend is active.
type Seeder struct {
	log       *zap.Logger
	auth      authdomain.Service
	users     authdomain.Repository
	customers customerdomain.Repository
	invoices  invoicedomain.Repository
	revenue   revenuedomain.Repository
}

func New(p Params) *Seeder {
	return &Seeder{
		log:       p.Log.Named("seed"),
		auth:      p.Auth,
		users:     p.Users,
		customers: p.Customers,
		invoices:  p.Invoices,
		revenue:   p.Revenue,
	}
}

// Run seeds placeholder data unless at least one user already exists.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Debug("store already seeded", zap.Int64("users", count))
		return nil
	}

	if _, err := s.auth.CreateUser(ctx, authdomain.CreateUserRequest{
		Name:     defaultUserName,
		Email:    defaultUserEmail,
		Password: defaultUserPassword,
	}); err != nil && !errors.Is(err, authdomain.ErrUserExists) {
		return err
	}

	for i := range customers {
		c := customers[i]
		if err := s.customers.Insert(ctx, &c); err != nil {
			return err
		}
	}

	for _, inv := range invoices {
		invoice := invoicedomain.Invoice{
			ID:         uuid.NewString(),
			CustomerID: inv.customerID,
			Amount:     inv.amount,
			Status:     inv.status,
			Date:       inv.date,
		}
		if err := s.invoices.Insert(ctx, &invoice); err != nil {
			return err
		}
	}

	for i := range revenue {
		r := revenue[i]
		if err := s.revenue.Insert(ctx, &r); err != nil {
			return err
		}
	}

	s.log.Info("seeded placeholder data",
		zap.Int("customers", len(customers)),
		zap.Int("invoices", len(invoices)),
		zap.Int("revenue", len(revenue)),
	)
	return nil
}
