package stats

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSource implements Source over the products and orders collections.
type MongoSource struct {
	Products *mongo.Collection
	Orders   *mongo.Collection
}

// NewMongoSource creates a source reading from the given database.
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{
		Products: db.Collection("products"),
		Orders:   db.Collection("orders"),
	}
}

func (s *MongoSource) CountProducts(ctx context.Context) (int64, error) {
	return s.Products.CountDocuments(ctx, bson.M{})
}

func (s *MongoSource) CountOrders(ctx context.Context) (int64, error) {
	return s.Orders.CountDocuments(ctx, bson.M{})
}

// SumOrderTotals sums the total field across all orders server-side. An
// empty collection produces no result row, which maps to zero.
func (s *MongoSource) SumOrderTotals(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
	}

	cursor, err := s.Orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, err
	}
	return result.Total, nil
}

// CountDistinctCustomers counts distinct non-null customer emails across
// orders.
func (s *MongoSource) CountDistinctCustomers(ctx context.Context) (int64, error) {
	filter := bson.M{"customer_email": bson.M{"$nin": bson.A{nil, ""}}}
	emails, err := s.Orders.Distinct(ctx, "customer_email", filter)
	if err != nil {
		return 0, err
	}
	return int64(len(emails)), nil
}
