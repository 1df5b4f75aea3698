package models

import (
	"github.com/shashiranjanraj/catalog/pkg/collection"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// Product is a sellable item. CategoryIDs is a set; order carries no meaning.
type Product struct {
	ID          string   `bson:"_id"                 json:"id"`
	Name        string   `bson:"name"                json:"name"`
	Description string   `bson:"description"         json:"description"`
	Price       float64  `bson:"price"               json:"price"`
	CategoryIDs []string `bson:"category_ids"        json:"category_ids"`
	ImageURL    string   `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

// ProductPrice is the projection returned by price lookups.
type ProductPrice struct {
	ID    string  `bson:"_id"   json:"id"`
	Price float64 `bson:"price" json:"price"`
}

// Upload is an image file received with a product write.
type Upload struct {
	Filename    string
	ContentType string
	Content     []byte
}

const (
	productNameRules        = "required,max=100"
	productDescriptionRules = "required"
	productPriceRules       = "finite,gt=0"
)

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name        string   `json:"name"         validate:"required,max=100"`
	Description string   `json:"description"  validate:"required"`
	Price       float64  `json:"price"        validate:"finite,gt=0"`
	CategoryIDs []string `json:"category_ids"`
	Image       *Upload  `json:"-"`
}

func (in ProductInput) Validate() map[string]string {
	return validate.Struct(in)
}

// ProductPatch carries a partial product update. A null category_ids clears
// the product's categories; repeated ids are stored once.
type ProductPatch struct {
	Name        Field[string]   `json:"name"`
	Description Field[string]   `json:"description"`
	Price       Field[float64]  `json:"price"`
	CategoryIDs Field[[]string] `json:"category_ids"`
	Image       *Upload         `json:"-"`
}

func (p ProductPatch) Validate() map[string]string {
	errs := map[string]string{}
	checkRequired(errs, "name", p.Name, productNameRules)
	checkRequired(errs, "description", p.Description, productDescriptionRules)
	checkRequired(errs, "price", p.Price, productPriceRules)
	return errs
}

// Apply copies every present field onto prod. The image is handled by the
// caller since it needs the blob store.
func (p ProductPatch) Apply(prod *Product) {
	if p.Name.Present() {
		prod.Name = p.Name.Value
	}
	if p.Description.Present() {
		prod.Description = p.Description.Value
	}
	if p.Price.Present() {
		prod.Price = p.Price.Value
	}
	if p.CategoryIDs.Set {
		prod.CategoryIDs = collection.Unique(p.CategoryIDs.Value)
	}
}
