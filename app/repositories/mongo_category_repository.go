package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

type MongoCategoryRepository struct {
	c collection[models.Category]
}

func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{c: newCollection[models.Category](db, database.Categories)}
}

func (r *MongoCategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if err := r.c.insert(ctx, c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (r *MongoCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return r.c.find(ctx, bson.M{})
}

func (r *MongoCategoryRepository) Update(ctx context.Context, c models.Category) (models.Category, error) {
	if err := r.c.set(ctx, c.ID, bson.M{"name": c.Name}); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.c.deleteOne(ctx, id)
}

func (r *MongoCategoryRepository) GetExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return r.c.existingIDs(ctx, ids)
}
