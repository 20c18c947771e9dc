package repository

import (
	"context"

	"github.com/smallbiznis/dashboard/internal/customer/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customersCollection = "customers"
	invoicesCollection  = "invoices"
)

type mongoRepo struct {
	customers *mongo.Collection
}

func NewMongo(database *mongo.Database) domain.Repository {
	return &mongoRepo{customers: database.Collection(customersCollection)}
}

func (r *mongoRepo) Insert(ctx context.Context, customer *domain.Customer) error {
	_, err := r.customers.InsertOne(ctx, customer)
	return err
}

func (r *mongoRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	cursor, err := r.customers.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var customers []*domain.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoRepo) ListFields(ctx context.Context) ([]domain.CustomerField, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "id", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.customers.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var fields []domain.CustomerField
	if err := cursor.All(ctx, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *mongoRepo) Summaries(ctx context.Context, query string) ([]domain.CustomerSummary, error) {
	cursor, err := r.customers.Aggregate(ctx, SummaryPipeline(query))
	if err != nil {
		return nil, err
	}

	var rows []domain.CustomerSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mongoRepo) Count(ctx context.Context) (int64, error) {
	return r.customers.CountDocuments(ctx, bson.M{})
}

// SummaryPipeline filters customers by name or email, joins their invoices
// and computes the invoice count and per-status sums.
func SummaryPipeline(query string) mongo.Pipeline {
	var stages mongo.Pipeline
	if query != "" {
		regex := db.ContainsRegex(query)
		stages = append(stages, bson.D{{Key: "$match", Value: bson.M{
			"$or": bson.A{
				bson.M{"name": regex},
				bson.M{"email": regex},
			},
		}}})
	}

	sumWhere := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$map": bson.M{
			"input": "$invoices",
			"as":    "invoice",
			"in": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$$invoice.status", status}},
				"$$invoice.amount",
				0,
			}},
		}}}
	}

	return append(stages,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: invoicesCollection},
			{Key: "localField", Value: "id"},
			{Key: "foreignField", Value: "customer_id"},
			{Key: "as", Value: "invoices"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "email", Value: 1},
			{Key: "image_url", Value: 1},
			{Key: "total_invoices", Value: bson.M{"$size": "$invoices"}},
			{Key: "total_pending", Value: sumWhere("pending")},
			{Key: "total_paid", Value: sumWhere("paid")},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	)
}
