package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/dashboard/internal/invoice/domain"
	"github.com/smallbiznis/dashboard/pkg/db"
	"github.com/smallbiznis/dashboard/pkg/db/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	invoicesCollection  = "invoices"
	customersCollection = "customers"
)

type mongoRepo struct {
	invoices *mongo.Collection
}

func NewMongo(database *mongo.Database) domain.Repository {
	return &mongoRepo{invoices: database.Collection(invoicesCollection)}
}

func (r *mongoRepo) Insert(ctx context.Context, invoice *domain.Invoice) error {
	_, err := r.invoices.InsertOne(ctx, invoice)
	return err
}

func (r *mongoRepo) UpdateByID(ctx context.Context, id string, changes domain.Changes) (int64, error) {
	res, err := r.invoices.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{
			"customer_id": changes.CustomerID,
			"amount":      changes.Amount,
			"status":      changes.Status,
		},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *mongoRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := r.invoices.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.invoices.FindOne(ctx, bson.M{"id": id}).Decode(&invoice)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *mongoRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Invoice, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.invoices.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var invoices []*domain.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *mongoRepo) Search(ctx context.Context, query string, page pagination.Offset) ([]domain.InvoicesTableRow, error) {
	cursor, err := r.invoices.Aggregate(ctx, SearchPipeline(query, page))
	if err != nil {
		return nil, err
	}

	var rows []domain.InvoicesTableRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mongoRepo) CountSearch(ctx context.Context, query string) (int64, error) {
	cursor, err := r.invoices.Aggregate(ctx, CountSearchPipeline(query))
	if err != nil {
		return 0, err
	}

	var out []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

func (r *mongoRepo) Count(ctx context.Context) (int64, error) {
	return r.invoices.CountDocuments(ctx, bson.M{})
}

func (r *mongoRepo) SumByStatus(ctx context.Context) (domain.StatusTotals, error) {
	cursor, err := r.invoices.Aggregate(ctx, StatusTotalsPipeline())
	if err != nil {
		return domain.StatusTotals{}, err
	}

	var out []domain.StatusTotals
	if err := cursor.All(ctx, &out); err != nil {
		return domain.StatusTotals{}, err
	}
	if len(out) == 0 {
		return domain.StatusTotals{}, nil
	}
	return out[0], nil
}

// searchStages joins each invoice to its customer and keeps those matching
// query as a case-insensitive literal substring. Invoices without a customer
// are dropped by the unwind.
func searchStages(query string) mongo.Pipeline {
	stages := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: customersCollection},
			{Key: "localField", Value: "customer_id"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "customer_info"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$customer_info"}}}},
	}
	if query == "" {
		return stages
	}

	regex := db.ContainsRegex(query)
	return append(stages, bson.D{{Key: "$match", Value: bson.M{
		"$or": bson.A{
			bson.M{"customer_info.name": regex},
			bson.M{"customer_info.email": regex},
			bson.M{"$expr": bson.M{"$regexMatch": bson.M{
				"input":   bson.M{"$toString": "$amount"},
				"regex":   regex.Pattern,
				"options": regex.Options,
			}}},
			bson.M{"date": regex},
			bson.M{"status": regex},
		},
	}}})
}

// SearchPipeline returns one page of the filtered invoices table, newest first.
func SearchPipeline(query string, page pagination.Offset) mongo.Pipeline {
	return append(searchStages(query),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64(page.Skip())}},
		bson.D{{Key: "$limit", Value: int64(page.Limit())}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "customer_id", Value: 1},
			{Key: "amount", Value: 1},
			{Key: "date", Value: 1},
			{Key: "status", Value: 1},
			{Key: "name", Value: "$customer_info.name"},
			{Key: "email", Value: "$customer_info.email"},
			{Key: "image_url", Value: "$customer_info.image_url"},
		}}},
	)
}

// CountSearchPipeline counts every invoice SearchPipeline can return.
func CountSearchPipeline(query string) mongo.Pipeline {
	return append(searchStages(query), bson.D{{Key: "$count", Value: "total"}})
}

// StatusTotalsPipeline sums invoice amounts per status in a single group.
func StatusTotalsPipeline() mongo.Pipeline {
	sumWhere := func(status string) bson.M {
		return bson.M{"$sum": bson.M{
			"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, "$amount", 0},
		}}
	}
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "paid", Value: sumWhere(domain.StatusPaid)},
			{Key: "pending", Value: sumWhere(domain.StatusPending)},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "paid", Value: 1},
			{Key: "pending", Value: 1},
		}}},
	}
}
