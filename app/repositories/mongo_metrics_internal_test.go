package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/catalog/app/models"
)

func stage(t *testing.T, p mongo.Pipeline, i int) (string, any) {
	t.Helper()
	require.Greater(t, len(p), i)
	require.Len(t, p[i], 1)
	return p[i][0].Key, p[i][0].Value
}

func stageKeys(p mongo.Pipeline) []string {
	keys := make([]string, 0, len(p))
	for _, s := range p {
		keys = append(keys, s[0].Key)
	}
	return keys
}

func TestDateFilter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 999999000, time.UTC)

	assert.Equal(t, bson.M{}, dateFilter(models.DateWindow{}))
	assert.Equal(t, bson.M{"date": bson.M{"$gte": start}}, dateFilter(models.DateWindow{Start: &start}))
	assert.Equal(t,
		bson.M{"date": bson.M{"$gte": start, "$lte": end}},
		dateFilter(models.DateWindow{Start: &start, End: &end}),
	)
}

func TestPeriodPipeline_GroupsByDay(t *testing.T) {
	p := periodPipeline(bson.M{})
	assert.Equal(t, []string{"$match", "$group", "$sort"}, stageKeys(p))

	_, group := stage(t, p, 1)
	id := group.(bson.D)[0]
	assert.Equal(t, "_id", id.Key)
	assert.Equal(t, bson.D{{Key: "$dateToString", Value: bson.D{
		{Key: "format", Value: "%Y-%m-%d"},
		{Key: "date", Value: "$date"},
	}}}, id.Value)

	_, sort := stage(t, p, 2)
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, sort)
}

func TestTopProductsPipeline(t *testing.T) {
	filter := bson.M{"date": bson.M{"$gte": time.Unix(0, 0)}}
	p := topProductsPipeline(filter, 5)

	assert.Equal(t,
		[]string{"$match", "$unwind", "$group", "$sort", "$limit", "$lookup", "$unwind", "$project"},
		stageKeys(p),
	)

	_, match := stage(t, p, 0)
	assert.Equal(t, filter, match)

	_, sort := stage(t, p, 3)
	assert.Equal(t, bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}, sort)

	_, limit := stage(t, p, 4)
	assert.Equal(t, 5, limit)

	_, lookup := stage(t, p, 5)
	assert.Contains(t, lookup.(bson.D), bson.E{Key: "from", Value: "products"})
}

func TestRevenueByCategoryPipeline(t *testing.T) {
	p := revenueByCategoryPipeline(bson.M{})

	assert.Equal(t, []string{
		"$match", "$unwind", "$lookup", "$unwind", "$unwind",
		"$group", "$lookup", "$unwind", "$project", "$sort",
	}, stageKeys(p))

	_, group := stage(t, p, 5)
	assert.Contains(t, group.(bson.D), bson.E{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$product.price"}}})

	_, lookup := stage(t, p, 6)
	assert.Contains(t, lookup.(bson.D), bson.E{Key: "from", Value: "categories"})

	_, sort := stage(t, p, 9)
	assert.Equal(t, bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}, sort)
}

func TestRevenuePipeline(t *testing.T) {
	p := revenuePipeline(bson.M{})
	assert.Equal(t, []string{"$match", "$group"}, stageKeys(p))

	_, group := stage(t, p, 1)
	assert.Contains(t, group.(bson.D), bson.E{Key: "avg_order", Value: bson.D{{Key: "$avg", Value: "$total"}}})
}
