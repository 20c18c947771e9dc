// Package domain contains persistence models and read projections for invoices.
package domain

import "github.com/bwmarrin/snowflake"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// DateLayout is the layout of Invoice.Date.
const DateLayout = "2006-01-02"

// Invoice is a stored invoice. Amount is kept in cents.
// ID is the business identifier; PK is the relational storage key and is
// never exposed outside the repository.
type Invoice struct {
	PK         snowflake.ID `gorm:"column:pk;primaryKey;autoIncrement:false" bson:"-" json:"-"`
	ID         string       `gorm:"column:id;type:varchar(36);not null;uniqueIndex" bson:"id" json:"id"`
	CustomerID string       `gorm:"column:customer_id;type:varchar(36);not null;index" bson:"customer_id" json:"customer_id"`
	Amount     int64        `gorm:"column:amount;not null" bson:"amount" json:"amount"`
	Status     string       `gorm:"column:status;type:varchar(16);not null" bson:"status" json:"status"`
	Date       string       `gorm:"column:date;type:varchar(10);not null;index" bson:"date" json:"date"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceForm is an invoice as shown in the edit form, amount in dollars.
type InvoiceForm struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// InvoicesTableRow is one row of the invoices table, joined with its customer.
// Amount stays in cents.
type InvoicesTableRow struct {
	ID         string `gorm:"column:id" bson:"id" json:"id"`
	CustomerID string `gorm:"column:customer_id" bson:"customer_id" json:"customer_id"`
	Name       string `gorm:"column:name" bson:"name" json:"name"`
	Email      string `gorm:"column:email" bson:"email" json:"email"`
	ImageURL   string `gorm:"column:image_url" bson:"image_url" json:"image_url"`
	Date       string `gorm:"column:date" bson:"date" json:"date"`
	Amount     int64  `gorm:"column:amount" bson:"amount" json:"amount"`
	Status     string `gorm:"column:status" bson:"status" json:"status"`
}

// LatestInvoice is a recent invoice with its customer and a formatted amount.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Email    string `json:"email"`
	Amount   string `json:"amount"`
}

// StatusTotals holds invoice amounts in cents summed per status.
type StatusTotals struct {
	Paid    int64 `gorm:"column:paid" bson:"paid"`
	Pending int64 `gorm:"column:pending" bson:"pending"`
}
