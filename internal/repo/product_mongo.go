package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/products-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	productsCollection = "products"
	countersCollection = "counters"
)

// MongoProductRepository stores products as documents keyed by an integer _id.
// IDs come from a monotonically increasing sequence in the counters collection.
type MongoProductRepository struct {
	products *mongo.Collection
	counters *mongo.Collection
	timeout  time.Duration
}

func NewMongoProductRepository(db *mongo.Database, timeout time.Duration) *MongoProductRepository {
	return &MongoProductRepository{
		products: db.Collection(productsCollection),
		counters: db.Collection(countersCollection),
		timeout:  timeout,
	}
}

func (r *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("allocate product id: %w", err)
	}
	p.ID = id

	if _, err := r.products.InsertOne(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// nextID increments the product sequence, creating it on first use. Two
// concurrent first upserts can race on the counter's _id; the loser retries
// once, by which point the document exists.
func (r *MongoProductRepository) nextID(ctx context.Context) (int64, error) {
	seq, err := r.incrementCounter(ctx)
	if mongo.IsDuplicateKeyError(err) {
		seq, err = r.incrementCounter(ctx)
	}
	return seq, err
}

func (r *MongoProductRepository) incrementCounter(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": productsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	return counter.Seq, err
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.products.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id int64) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.products.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": setFields(patch)}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

// setFields builds the $set document for the non-nil fields of patch.
func setFields(patch models.ProductPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	return set
}

func (r *MongoProductRepository) Delete(ctx context.Context, id int64) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.products.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("delete product %d: %w", id, err)
	}
	return p, nil
}

func (r *MongoProductRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.products.Database().Client().Ping(ctx, readpref.Primary())
}
