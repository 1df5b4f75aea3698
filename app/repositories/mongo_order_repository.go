package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

type MongoOrderRepository struct {
	c collection[models.Order]
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{c: newCollection[models.Order](db, database.Orders)}
}

func orderFields(o models.Order) bson.M {
	return bson.M{
		"total":       o.Total,
		"date":        o.Date,
		"product_ids": models.NonNil(o.ProductIDs),
	}
}

func (r *MongoOrderRepository) Create(ctx context.Context, o models.Order) (models.Order, error) {
	o.ProductIDs = models.NonNil(o.ProductIDs)
	if err := r.c.insert(ctx, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	return r.c.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) Update(ctx context.Context, o models.Order) (models.Order, error) {
	if err := r.c.set(ctx, o.ID, orderFields(o)); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *MongoOrderRepository) BulkUpdate(ctx context.Context, orders []models.Order) ([]models.Order, error) {
	updates := make(map[string]bson.M, len(orders))
	order := make([]string, 0, len(orders))
	for _, o := range orders {
		updates[o.ID] = orderFields(o)
		order = append(order, o.ID)
	}
	if err := r.c.bulkSet(ctx, updates, order); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteOne(ctx, id)
}

func (r *MongoOrderRepository) GetByProduct(ctx context.Context, productID string) ([]models.Order, error) {
	return r.c.find(ctx, bson.M{"product_ids": bson.M{"$in": []string{productID}}})
}
