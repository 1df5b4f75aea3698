package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

// MongoMetricsRepository runs the dashboard aggregations against the orders
// collection, joining products and categories with $lookup.
type MongoMetricsRepository struct {
	orders collection[models.Order]
}

func NewMongoMetricsRepository(db *mongo.Database) *MongoMetricsRepository {
	return &MongoMetricsRepository{orders: newCollection[models.Order](db, database.Orders)}
}

func (r *MongoMetricsRepository) CountOrders(ctx context.Context, w models.DateWindow) (int64, error) {
	n, err := r.orders.coll.CountDocuments(ctx, dateFilter(w))
	if err != nil {
		return 0, r.orders.wrap("count", err)
	}
	return n, nil
}

func (r *MongoMetricsRepository) Revenue(ctx context.Context, w models.DateWindow) (float64, float64, error) {
	var rows []struct {
		TotalRevenue float64 `bson:"total_revenue"`
		AvgOrder     float64 `bson:"avg_order"`
	}
	if err := r.orders.aggregate(ctx, "revenue", revenuePipeline(dateFilter(w)), &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].TotalRevenue, rows[0].AvgOrder, nil
}

func (r *MongoMetricsRepository) OrdersByPeriod(ctx context.Context, w models.DateWindow) (map[string]models.PeriodMetrics, error) {
	var rows []struct {
		Day     string  `bson:"_id"`
		Count   int     `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := r.orders.aggregate(ctx, "orders_by_period", periodPipeline(dateFilter(w)), &rows); err != nil {
		return nil, err
	}

	out := make(map[string]models.PeriodMetrics, len(rows))
	for _, row := range rows {
		out[row.Day] = models.PeriodMetrics{Count: row.Count, Revenue: row.Revenue}
	}
	return out, nil
}

func (r *MongoMetricsRepository) TopProducts(ctx context.Context, w models.DateWindow, limit int) ([]models.TopProduct, error) {
	out := []models.TopProduct{}
	if err := r.orders.aggregate(ctx, "top_products", topProductsPipeline(dateFilter(w), limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoMetricsRepository) RevenueByCategory(ctx context.Context, w models.DateWindow) ([]models.CategoryRevenue, error) {
	out := []models.CategoryRevenue{}
	if err := r.orders.aggregate(ctx, "revenue_by_category", revenueByCategoryPipeline(dateFilter(w)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// dateFilter matches orders whose date lies inside w. Both bounds inclusive.
func dateFilter(w models.DateWindow) bson.M {
	rng := bson.M{}
	if w.Start != nil {
		rng["$gte"] = *w.Start
	}
	if w.End != nil {
		rng["$lte"] = *w.End
	}
	if len(rng) == 0 {
		return bson.M{}
	}
	return bson.M{"date": rng}
}

func revenuePipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			{Key: "avg_order", Value: bson.D{{Key: "$avg", Value: "$total"}}},
		}}},
	}
}

// periodPipeline buckets by calendar day of the stored date (UTC).
func periodPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$date"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// topProductsPipeline counts product occurrences and keeps the top limit.
// Ties break on product id. The inner $unwind drops products that no
// longer exist, after the limit has been applied.
func topProductsPipeline(filter bson.M, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$unwind", Value: "$product_ids"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_ids"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.Products},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product_info"},
		}}},
		{{Key: "$unwind", Value: "$product_info"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "product_id", Value: "$_id"},
			{Key: "product_name", Value: "$product_info.name"},
			{Key: "count", Value: 1},
		}}},
	}
}

// revenueByCategoryPipeline credits each product's current price to every
// category it belongs to, once per occurrence in a matching order.
func revenueByCategoryPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$unwind", Value: "$product_ids"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.Products},
			{Key: "localField", Value: "product_ids"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$unwind", Value: "$product.category_ids"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product.category_ids"},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$product.price"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.Categories},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "category"},
		}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$project", Value: bson.D{
			{Key: "category_id", Value: "$_id"},
			{Key: "category_name", Value: "$category.name"},
			{Key: "revenue", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}
