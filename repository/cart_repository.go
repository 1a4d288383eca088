package repository

import (
	"context"
	"time"

	"github.com/DivyaDarni/ShopSmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository defines the interface for cart data access. There is one
// cart document per user, created lazily on first access.
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	SaveItems(ctx context.Context, userID string, items []models.CartItem) error
}

// MongoCartRepository implements CartRepository on the carts collection.
type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

// GetOrCreate returns the user's cart, inserting an empty one on first
// access. The upsert keeps create-on-first-read race-free under the unique
// user_id index.
func (r *MongoCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    userID,
		"items":      []models.CartItem{},
		"created_at": now,
		"updated_at": now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveItems replaces the cart's line items. Clearing a cart is saving an
// empty slice; the document itself is never deleted.
func (r *MongoCartRepository) SaveItems(ctx context.Context, userID string, items []models.CartItem) error {
	update := bson.M{"$set": bson.M{
		"items":      items,
		"updated_at": time.Now().UTC(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	return err
}
