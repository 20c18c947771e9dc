package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/customer/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"gorm.io/gorm"
)

type gormRepo struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewGorm(conn *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &gormRepo{db: conn, genID: genID}
}

func (r *gormRepo) Insert(ctx context.Context, customer *domain.Customer) error {
	if customer.PK == 0 {
		customer.PK = r.genID.Generate()
	}
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO customers (pk, id, name, email, image_url) VALUES (?, ?, ?, ?, ?)`,
		customer.PK,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.ImageURL,
	).Error
}

func (r *gormRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Order("name asc").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *gormRepo) ListFields(ctx context.Context) ([]domain.CustomerField, error) {
	var fields []domain.CustomerField
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Select("id, name").
		Order("name asc").
		Scan(&fields).Error
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *gormRepo) Summaries(ctx context.Context, query string) ([]domain.CustomerSummary, error) {
	stmt := r.db.WithContext(ctx).
		Table("customers AS c").
		Select(`c.id, c.name, c.email, c.image_url,
			COUNT(i.pk) AS total_invoices,
			COALESCE(SUM(CASE WHEN i.status = ? THEN i.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN i.status = ? THEN i.amount ELSE 0 END), 0) AS total_paid`,
			"pending", "paid",
		).
		Joins("LEFT JOIN invoices AS i ON i.customer_id = c.id")
	if query != "" {
		pattern := db.LikePattern(r.db.Dialector.Name(), query)
		stmt = stmt.Where("LOWER(c.name) LIKE ? ESCAPE '!' OR LOWER(c.email) LIKE ? ESCAPE '!'", pattern, pattern)
	}

	var rows []domain.CustomerSummary
	err := stmt.
		Group("c.pk, c.id, c.name, c.email, c.image_url").
		Order("c.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&count).Error
	return count, err
}
