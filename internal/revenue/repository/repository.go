package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/revenue/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// Provide returns the repository for the active storage backend.
func Provide(h db.Handles, genID *snowflake.Node) domain.Repository {
	if h.IsMongo() {
		return NewMongo(h.Mongo)
	}
	return NewGorm(h.Gorm, genID)
}

type gormRepo struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewGorm(conn *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &gormRepo{db: conn, genID: genID}
}

func (r *gormRepo) Insert(ctx context.Context, revenue *domain.Revenue) error {
	if revenue.PK == 0 {
		revenue.PK = r.genID.Generate()
	}
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO revenue (pk, month, revenue) VALUES (?, ?, ?)`,
		revenue.PK,
		revenue.Month,
		revenue.Revenue,
	).Error
}

// List orders by the snowflake key, which increases with insertion time.
func (r *gormRepo) List(ctx context.Context) ([]domain.Point, error) {
	var points []domain.Point
	err := r.db.WithContext(ctx).
		Model(&domain.Revenue{}).
		Select("month, revenue").
		Order("pk asc").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

type mongoRepo struct {
	revenue *mongo.Collection
}

func NewMongo(database *mongo.Database) domain.Repository {
	return &mongoRepo{revenue: database.Collection("revenue")}
}

func (r *mongoRepo) Insert(ctx context.Context, revenue *domain.Revenue) error {
	_, err := r.revenue.InsertOne(ctx, revenue)
	return err
}

func (r *mongoRepo) List(ctx context.Context) ([]domain.Point, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "month", Value: 1}, {Key: "revenue", Value: 1}})
	cursor, err := r.revenue.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var points []domain.Point
	if err := cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}
