package models

import "github.com/shashiranjanraj/catalog/pkg/validate"

// Category groups products. Products reference it by ID.
type Category struct {
	ID   string `bson:"_id"  json:"id"`
	Name string `bson:"name" json:"name"`
}

const categoryNameRules = "required,max=50"

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=50"`
}

func (in CategoryInput) Validate() map[string]string {
	return validate.Struct(in)
}

// CategoryPatch carries a partial category update.
type CategoryPatch struct {
	Name Field[string] `json:"name"`
}

func (p CategoryPatch) Validate() map[string]string {
	errs := map[string]string{}
	checkRequired(errs, "name", p.Name, categoryNameRules)
	return errs
}

// Apply copies every present field onto c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name.Present() {
		c.Name = p.Name.Value
	}
}
