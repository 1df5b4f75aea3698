package services

import (
	"context"
	"strconv"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/collection"
)

// PriceLookup is the slice of the product port needed for pricing.
type PriceLookup interface {
	GetPrices(ctx context.Context, ids []string) ([]models.ProductPrice, error)
}

// ComputeTotal prices an order. Each id counts once per occurrence, so
// ["a", "a"] is twice a's price. Every missing product is named in the
// returned NotFoundError. The sum is rounded to cents.
func ComputeTotal(ctx context.Context, prices PriceLookup, productIDs []string) (float64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	ids := collection.Unique(productIDs)
	found, err := prices.GetPrices(ctx, ids)
	if err != nil {
		return 0, err
	}

	known := collection.Pluck(found, func(p models.ProductPrice) string { return p.ID })
	if missing := collection.Difference(ids, known); len(missing) > 0 {
		return 0, notFound("Product", missing...)
	}
	byID := collection.KeyBy(found, func(p models.ProductPrice) string { return p.ID })

	var total float64
	for _, id := range productIDs {
		total += byID[id].Price
	}
	return round2(total), nil
}

// round2 rounds the exact binary value of x to two decimals, so
// 10.005 + 5 gives 15.01: the sum is stored just above 15.005.
func round2(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return r
}
