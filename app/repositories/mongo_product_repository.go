package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

type MongoProductRepository struct {
	c collection[models.Product]
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{c: newCollection[models.Product](db, database.Products)}
}

func productFields(p models.Product) bson.M {
	return bson.M{
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price,
		"category_ids": models.NonNil(p.CategoryIDs),
		"image_url":    p.ImageURL,
	}
}

func (r *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.CategoryIDs = models.NonNil(p.CategoryIDs)
	if err := r.c.insert(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.c.find(ctx, bson.M{})
}

func (r *MongoProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	if err := r.c.set(ctx, p.ID, productFields(p)); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *MongoProductRepository) BulkUpdate(ctx context.Context, ps []models.Product) ([]models.Product, error) {
	updates := make(map[string]bson.M, len(ps))
	order := make([]string, 0, len(ps))
	for _, p := range ps {
		updates[p.ID] = productFields(p)
		order = append(order, p.ID)
	}
	if err := r.c.bulkSet(ctx, updates, order); err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteOne(ctx, id)
}

func (r *MongoProductRepository) GetExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return r.c.existingIDs(ctx, ids)
}

func (r *MongoProductRepository) GetByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return r.c.find(ctx, bson.M{"category_ids": bson.M{"$in": []string{categoryID}}})
}

func (r *MongoProductRepository) GetPrices(ctx context.Context, ids []string) ([]models.ProductPrice, error) {
	if len(ids) == 0 {
		return []models.ProductPrice{}, nil
	}
	defer metrics.ObserveDB(database.Products, "find_prices", time.Now())

	cur, err := r.c.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "price": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("products: find prices: %w", err)
	}

	out := []models.ProductPrice{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products: decode prices: %w", err)
	}
	return out, nil
}
