package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/collection"
)

type ProductService struct {
	products  repositories.ProductRepository
	integrity *Integrity
	images    ImageStore
	reports   *cache.Store
}

func NewProductService(products repositories.ProductRepository, integrity *Integrity, images ImageStore, reports *cache.Store) *ProductService {
	return &ProductService{products: products, integrity: integrity, images: images, reports: reports}
}

// Create validates the input, checks every category exists, uploads the
// image under the new product id and stores the product.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	errs := in.Validate()
	if in.Image == nil || len(in.Image.Content) == 0 {
		errs["image"] = "The image field is required."
	}
	if err := invalid(errs); err != nil {
		return models.Product{}, err
	}

	categoryIDs := collection.Unique(in.CategoryIDs)
	if err := s.integrity.CheckCategories(ctx, categoryIDs); err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryIDs: categoryIDs,
	}

	url, err := s.putImage(ctx, p.ID, in.Image)
	if err != nil {
		return models.Product{}, err
	}
	p.ImageURL = url

	created, err := s.products.Create(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	invalidateReports(ctx, s.reports)
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if p == nil {
		return models.Product{}, notFound("Product", id)
	}
	return *p, nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	all, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.NonNil(all), nil
}

// Update applies patch. Categories are checked only when category_ids is
// sent with values; a new image replaces the old one under the same key.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if err := invalid(patch.Validate()); err != nil {
		return models.Product{}, err
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	if patch.CategoryIDs.Present() {
		patch.CategoryIDs.Value = collection.Unique(patch.CategoryIDs.Value)
		if err := s.integrity.CheckCategories(ctx, patch.CategoryIDs.Value); err != nil {
			return models.Product{}, err
		}
	}
	patch.Apply(&p)

	if patch.Image != nil && len(patch.Image.Content) > 0 {
		url, err := s.putImage(ctx, p.ID, patch.Image)
		if err != nil {
			return models.Product{}, err
		}
		p.ImageURL = url
	}

	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	invalidateReports(ctx, s.reports)
	return updated, nil
}

// Delete removes the product, strips it from every order and drops its image.
// Reports are invalidated even on failure: the order cascade may have been
// written before the product delete failed.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	defer invalidateReports(ctx, s.reports)
	return s.integrity.DeleteProduct(ctx, id)
}

func (s *ProductService) putImage(ctx context.Context, productID string, img *models.Upload) (string, error) {
	url, err := s.images.Put(ctx, productImageKey(productID), img.Content, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("product image upload: %w", err)
	}
	return url, nil
}
