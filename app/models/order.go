package models

import (
	"time"

	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// Order references products by ID. Repeated IDs stand for quantity, so
// ProductIDs is ordered and may contain duplicates. Total is derived from
// prices at write time and is not recomputed when a product is removed.
type Order struct {
	ID         string    `bson:"_id"         json:"id"`
	ProductIDs []string  `bson:"product_ids" json:"product_ids"`
	Total      float64   `bson:"total"       json:"total"`
	Date       time.Time `bson:"date"        json:"date"`
}

const orderProductIDsRules = "required"

// OrderInput is the payload for creating an order. Date defaults to now.
type OrderInput struct {
	ProductIDs []string   `json:"product_ids" validate:"required"`
	Date       *time.Time `json:"date"`
}

func (in OrderInput) Validate() map[string]string {
	return validate.Struct(in)
}

// OrderPatch carries a partial order update.
type OrderPatch struct {
	ProductIDs Field[[]string]  `json:"product_ids"`
	Date       Field[time.Time] `json:"date"`
}

func (p OrderPatch) Validate() map[string]string {
	errs := map[string]string{}
	checkRequired(errs, "product_ids", p.ProductIDs, orderProductIDsRules)
	if p.Date.Null {
		errs["date"] = nullMessage("date")
	}
	return errs
}
