package domain

import "github.com/bwmarrin/snowflake"

// Customer is read-only from the dashboard's perspective.
type Customer struct {
	PK       snowflake.ID `gorm:"column:pk;primaryKey;autoIncrement:false" bson:"-" json:"-"`
	ID       string       `gorm:"column:id;type:varchar(36);not null;uniqueIndex" bson:"id" json:"id"`
	Name     string       `gorm:"column:name;not null;index" bson:"name" json:"name"`
	Email    string       `gorm:"column:email;not null" bson:"email" json:"email"`
	ImageURL string       `gorm:"column:image_url" bson:"image_url" json:"image_url"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// CustomerField is the projection used by the invoice form's customer picker.
type CustomerField struct {
	ID   string `gorm:"column:id" bson:"id" json:"id"`
	Name string `gorm:"column:name" bson:"name" json:"name"`
}

// CustomerSummary is a customer with invoice totals in cents.
type CustomerSummary struct {
	ID            string `gorm:"column:id" bson:"id"`
	Name          string `gorm:"column:name" bson:"name"`
	Email         string `gorm:"column:email" bson:"email"`
	ImageURL      string `gorm:"column:image_url" bson:"image_url"`
	TotalInvoices int64  `gorm:"column:total_invoices" bson:"total_invoices"`
	TotalPending  int64  `gorm:"column:total_pending" bson:"total_pending"`
	TotalPaid     int64  `gorm:"column:total_paid" bson:"total_paid"`
}

// CustomersTableRow is one row of the customers table with formatted totals.
type CustomersTableRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}
