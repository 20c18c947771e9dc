package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/invoice/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"github.com/smallbiznis/dashboard/pkg/db/pagination"
	"gorm.io/gorm"
)

type gormRepo struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewGorm(conn *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &gormRepo{db: conn, genID: genID}
}

func (r *gormRepo) Insert(ctx context.Context, invoice *domain.Invoice) error {
	if invoice.PK == 0 {
		invoice.PK = r.genID.Generate()
	}
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO invoices (pk, id, customer_id, amount, status, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		invoice.PK,
		invoice.ID,
		invoice.CustomerID,
		invoice.Amount,
		invoice.Status,
		invoice.Date,
	).Error
}

func (r *gormRepo) UpdateByID(ctx context.Context, id string, changes domain.Changes) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?`,
		changes.CustomerID,
		changes.Amount,
		changes.Status,
		id,
	)
	return res.RowsAffected, res.Error
}

func (r *gormRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM invoices WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *gormRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).Raw(
		`SELECT pk, id, customer_id, amount, status, date FROM invoices WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == "" {
		return nil, nil
	}
	return &invoice, nil
}

func (r *gormRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Order("date desc, pk desc").
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *gormRepo) Search(ctx context.Context, query string, page pagination.Offset) ([]domain.InvoicesTableRow, error) {
	var rows []domain.InvoicesTableRow
	err := r.searchScope(ctx, query).
		Select(`i.id, i.customer_id, c.name, c.email, c.image_url, i.date, i.amount, i.status`).
		Order("i.date desc, i.pk desc").
		Offset(page.Skip()).
		Limit(page.Limit()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepo) CountSearch(ctx context.Context, query string) (int64, error) {
	var count int64
	err := r.searchScope(ctx, query).Count(&count).Error
	return count, err
}

func (r *gormRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).Count(&count).Error
	return count, err
}

func (r *gormRepo) SumByStatus(ctx context.Context) (domain.StatusTotals, error) {
	var totals domain.StatusTotals
	err := r.db.WithContext(ctx).Raw(
		`SELECT
			COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS pending
		 FROM invoices`,
		domain.StatusPaid,
		domain.StatusPending,
	).Scan(&totals).Error
	return totals, err
}

// searchScope joins invoices to their customers and applies the
// case-insensitive substring filter. The amount is matched as text.
func (r *gormRepo) searchScope(ctx context.Context, query string) *gorm.DB {
	stmt := r.db.WithContext(ctx).
		Table("invoices AS i").
		Joins("JOIN customers AS c ON c.id = i.customer_id")
	if query == "" {
		return stmt
	}

	pattern := db.LikePattern(r.db.Dialector.Name(), query)
	amount := db.TextCast(r.db.Dialector.Name(), "i.amount")
	return stmt.Where(
		"LOWER(c.name) LIKE ? ESCAPE '!' OR LOWER(c.email) LIKE ? ESCAPE '!' OR "+
			amount+" LIKE ? ESCAPE '!' OR LOWER(i.date) LIKE ? ESCAPE '!' OR LOWER(i.status) LIKE ? ESCAPE '!'",
		pattern, pattern, pattern, pattern, pattern,
	)
}
