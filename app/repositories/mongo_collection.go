package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// collection wraps a typed MongoDB collection with timing and error wrapping.
type collection[T any] struct {
	coll *mongo.Collection
	name string
}

func newCollection[T any](db *mongo.Database, name string) collection[T] {
	return collection[T]{coll: db.Collection(name), name: name}
}

func (c collection[T]) wrap(op string, err error) error {
	return fmt.Errorf("%s: %s: %w", c.name, op, err)
}

func (c collection[T]) insert(ctx context.Context, doc T) error {
	defer metrics.ObserveDB(c.name, "insert", time.Now())

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return c.wrap("insert", err)
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter any) (*T, error) {
	defer metrics.ObserveDB(c.name, "find_one", time.Now())

	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, c.wrap("find one", err)
	}
	return &doc, nil
}

// find always returns a non-nil slice.
func (c collection[T]) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	defer metrics.ObserveDB(c.name, "find", time.Now())

	cur, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, c.wrap("find", err)
	}

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, c.wrap("decode", err)
	}
	return out, nil
}

func (c collection[T]) set(ctx context.Context, id string, fields bson.M) error {
	defer metrics.ObserveDB(c.name, "update", time.Now())

	if _, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields}); err != nil {
		return c.wrap("update", err)
	}
	return nil
}

// bulkSet issues a single BulkWrite with one $set update per id, in order.
func (c collection[T]) bulkSet(ctx context.Context, updates map[string]bson.M, order []string) error {
	if len(order) == 0 {
		return nil
	}
	defer metrics.ObserveDB(c.name, "bulk_write", time.Now())

	ops := make([]mongo.WriteModel, 0, len(order))
	for _, id := range order {
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": updates[id]}))
	}

	if _, err := c.coll.BulkWrite(ctx, ops); err != nil {
		return c.wrap("bulk write", err)
	}
	return nil
}

func (c collection[T]) deleteOne(ctx context.Context, id string) error {
	defer metrics.ObserveDB(c.name, "delete", time.Now())

	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return c.wrap("delete", err)
	}
	return nil
}

func (c collection[T]) existingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	defer metrics.ObserveDB(c.name, "find_ids", time.Now())

	cur, err := c.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, c.wrap("find ids", err)
	}

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, c.wrap("decode ids", err)
	}

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out, nil
}

func (c collection[T]) aggregate(ctx context.Context, op string, pipeline mongo.Pipeline, dest any) error {
	defer metrics.ObserveDB(c.name, op, time.Now())

	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return c.wrap(op, err)
	}
	if err := cur.All(ctx, dest); err != nil {
		return c.wrap(op+" decode", err)
	}
	return nil
}
