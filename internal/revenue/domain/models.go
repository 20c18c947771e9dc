package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Revenue is one point of the monthly revenue series. It is populated
// externally and only read here.
type Revenue struct {
	PK      snowflake.ID `gorm:"column:pk;primaryKey;autoIncrement:false" bson:"-" json:"-"`
	Month   string       `gorm:"column:month;type:varchar(8);not null;uniqueIndex" bson:"month" json:"month"`
	Revenue float64      `gorm:"column:revenue;not null" bson:"revenue" json:"revenue"`
}

// TableName sets the database table name.
func (Revenue) TableName() string { return "revenue" }

// Point is the projection returned to the chart.
type Point struct {
	Month   string  `gorm:"column:month" bson:"month" json:"month"`
	Revenue float64 `gorm:"column:revenue" bson:"revenue" json:"revenue"`
}

type Repository interface {
	Insert(ctx context.Context, revenue *Revenue) error
	// List returns every point in insertion order.
	List(ctx context.Context) ([]Point, error)
}

type Service interface {
	FetchRevenueSeries(ctx context.Context) ([]Point, error)
}
