package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	authdomain "github.com/smallbiznis/dashboard/internal/auth/domain"
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/dashboard/internal/invoice/domain"
	revenuedomain "github.com/smallbiznis/dashboard/internal/revenue/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Models lists every table the dashboard stores, for AutoMigrate backends.
func Models() []any {
	return []any{
		&authdomain.User{},
		&customerdomain.Customer{},
		&invoicedomain.Invoice{},
		&revenuedomain.Revenue{},
	}
}

// Run brings the active backend's schema up to date.
func Run(ctx context.Context, h db.Handles, log *zap.Logger) error {
	switch {
	case h.IsMongo():
		log.Info("ensuring document store indexes")
		return EnsureIndexes(ctx, h.Mongo)
	case h.Gorm == nil:
		return errors.New("migration database handle is required")
	case h.Type == db.TypePostgres:
		sqlDB, err := h.Gorm.DB()
		if err != nil {
			return err
		}
		log.Info("applying sql migrations")
		return RunMigrations(sqlDB)
	default:
		log.Info("auto migrating schema", zap.String("type", h.Type))
		return AutoMigrate(ctx, h.Gorm)
	}
}

// RunMigrations applies the embedded postgres migrations.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

func AutoMigrate(ctx context.Context, conn *gorm.DB) error {
	if err := conn.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Indexes returns the indexes each collection needs, keyed by collection.
func Indexes() map[string][]mongo.IndexModel {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	plain := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}

	return map[string][]mongo.IndexModel{
		"users":     {unique("id"), unique("email")},
		"customers": {unique("id"), plain("name")},
		"invoices":  {unique("id"), plain("customer_id"), plain("date")},
		"revenue":   {unique("month")},
	}
}

func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for collection, models := range Indexes() {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}
