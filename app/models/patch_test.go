package models_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/models"
)

func TestField_TriState(t *testing.T) {
	var p models.ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Atlas","price":null}`), &p))

	assert.True(t, p.Name.Present())
	assert.Equal(t, "Atlas", p.Name.Value)

	assert.True(t, p.Price.Set)
	assert.True(t, p.Price.Null)
	assert.False(t, p.Price.Present())

	assert.False(t, p.Description.Set)
	assert.False(t, p.CategoryIDs.Set)
}

func TestProductPatch_NullRequiredFieldIsInvalid(t *testing.T) {
	var p models.ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"description":null,"price":null}`), &p))

	errs := p.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "price")
}

func TestProductPatch_Rules(t *testing.T) {
	p := models.ProductPatch{
		Name:  models.Value(""),
		Price: models.Value(-1.0),
	}
	errs := p.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.NotContains(t, errs, "description")

	assert.Empty(t, models.ProductPatch{}.Validate())
}

func TestProductPatch_NullCategoriesClears(t *testing.T) {
	var p models.ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"category_ids":null}`), &p))
	assert.Empty(t, p.Validate())

	prod := models.Product{Name: "Atlas", CategoryIDs: []string{"a", "b"}}
	p.Apply(&prod)

	assert.NotNil(t, prod.CategoryIDs)
	assert.Empty(t, prod.CategoryIDs)
	assert.Equal(t, "Atlas", prod.Name)
}

func TestCategoryPatch(t *testing.T) {
	long := models.CategoryPatch{Name: models.Value(strings.Repeat("a", 51))}
	assert.Contains(t, long.Validate(), "name")

	assert.Contains(t, models.CategoryPatch{Name: models.Null[string]()}.Validate(), "name")

	c := models.Category{ID: "1", Name: "Old"}
	models.CategoryPatch{}.Apply(&c)
	assert.Equal(t, "Old", c.Name)

	models.CategoryPatch{Name: models.Value("Books")}.Apply(&c)
	assert.Equal(t, "Books", c.Name)
}

func TestOrderPatch_Validate(t *testing.T) {
	var p models.OrderPatch
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-03-01T10:00:00Z"}`), &p))
	assert.Empty(t, p.Validate())
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), p.Date.Value.UTC())
	assert.False(t, p.ProductIDs.Set)

	empty := models.OrderPatch{ProductIDs: models.Value([]string{})}
	assert.Contains(t, empty.Validate(), "product_ids")

	nulls := models.OrderPatch{ProductIDs: models.Null[[]string](), Date: models.Null[time.Time]()}
	errs := nulls.Validate()
	assert.Contains(t, errs, "product_ids")
	assert.Contains(t, errs, "date")
}

func TestInputs_Validate(t *testing.T) {
	assert.Contains(t, models.CategoryInput{}.Validate(), "name")
	assert.Empty(t, models.CategoryInput{Name: "Books"}.Validate())

	errs := models.ProductInput{Name: "Atlas"}.Validate()
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "price")

	assert.Contains(t, models.OrderInput{}.Validate(), "product_ids")
	assert.Empty(t, models.OrderInput{ProductIDs: []string{"a"}}.Validate())
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, models.NonNil[string](nil))
	assert.Equal(t, []string{"a"}, models.NonNil([]string{"a"}))
}

func TestProductPrice_MustBeFinite(t *testing.T) {
	for _, price := range []float64{math.NaN(), math.Inf(1)} {
		errs := models.ProductInput{Name: "Atlas", Description: "d", Price: price}.Validate()
		assert.Contains(t, errs, "price", "input %v", price)

		errs = models.ProductPatch{Price: models.Value(price)}.Validate()
		assert.Contains(t, errs, "price", "patch %v", price)
	}
}

func TestProductPatch_ApplyDedupsCategories(t *testing.T) {
	prod := models.Product{CategoryIDs: []string{"x"}}
	models.ProductPatch{CategoryIDs: models.Value([]string{"b", "a", "b"})}.Apply(&prod)

	assert.Equal(t, []string{"b", "a"}, prod.CategoryIDs)
}
