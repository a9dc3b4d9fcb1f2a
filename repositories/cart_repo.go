package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roastery/models"
)

// CartRepository provides access to shopping carts, one document per user.
type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// MongoCartRepository implements CartRepository over the carts collection.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a repository backed by the given database.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

func (r *MongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save upserts the user's cart document.
func (r *MongoCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	update := bson.M{"$set": bson.M{"items": cart.Items}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, update, opts)
	return err
}

func (r *MongoCartRepository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// SavedListRepository backs the favorites and wishlist collections, which
// share the same one-document-per-owner shape.
type SavedListRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ListItem, error)
	AddItem(ctx context.Context, userID primitive.ObjectID, item models.ListItem) error
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error
}

// MongoSavedListRepository implements SavedListRepository for a named
// collection ("favorites" or "wishlists").
type MongoSavedListRepository struct {
	collection *mongo.Collection
}

// NewMongoSavedListRepository creates a repository over the named collection.
func NewMongoSavedListRepository(db *mongo.Database, name string) *MongoSavedListRepository {
	return &MongoSavedListRepository{collection: db.Collection(name)}
}

// FindByUser returns the saved items; a missing document is an empty list.
func (r *MongoSavedListRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ListItem, error) {
	var doc struct {
		Items []models.ListItem `bson:"items"`
	}
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.ListItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Items == nil {
		doc.Items = []models.ListItem{}
	}
	return doc.Items, nil
}

func (r *MongoSavedListRepository) AddItem(ctx context.Context, userID primitive.ObjectID, item models.ListItem) error {
	update := bson.M{"$addToSet": bson.M{"items": item}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts)
	return err
}

func (r *MongoSavedListRepository) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"items": bson.M{"product_id": productID}}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	return err
}
