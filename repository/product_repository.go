package repository

import (
	"context"
	"errors"
	"time"

	"github.com/DivyaDarni/ShopSmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInsufficientStock is returned when a stock decrement would drive stock
// below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Product, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Categories(ctx context.Context) ([]string, error)
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error
	FindLowStock(ctx context.Context, threshold int, limit int64) ([]*models.Product, error)
}

// MongoProductRepository implements ProductRepository on the products
// collection.
type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []*models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Availability = models.AvailabilityForStock(product.Stock)

	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// Update applies a partial update. When stock is among the updated fields,
// availability is recomputed in the same write.
func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	if stock, ok := updates["stock"]; ok {
		if s, ok := stock.(int); ok {
			updates["availability"] = models.AvailabilityForStock(s)
		}
	}
	updates["updated_at"] = time.Now().UTC()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// AdjustStock atomically applies stock = stock + delta as a single
// conditional update. Decrements are guarded by stock >= -delta in the
// filter, so two concurrent decrements can never both succeed on the last
// unit. Availability is recomputed inside the same write via an
// aggregation-pipeline update.
func (r *MongoProductRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	update := bson.A{
		bson.M{"$set": bson.M{"stock": bson.M{"$add": bson.A{"$stock", delta}}}},
		bson.M{"$set": bson.M{
			"availability": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$eq": bson.A{"$stock", 0}}, "then": models.OutOfStock},
					bson.M{"case": bson.M{"$lte": bson.A{"$stock", models.LimitedStockThreshold}}, "then": models.LimitedStock},
				},
				"default": models.InStock,
			}},
			"updated_at": time.Now().UTC(),
		}},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing product from a failed stock guard.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *MongoProductRepository) FindLowStock(ctx context.Context, threshold int, limit int64) ([]*models.Product, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "stock", Value: 1}})
	return r.Find(ctx, bson.M{"stock": bson.M{"$lte": threshold}}, opts)
}
