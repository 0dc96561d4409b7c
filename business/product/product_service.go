package product

import (
	"context"
	"fmt"

	"shopmarket/domain"
	"shopmarket/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type CategoryRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
}

var validOrderBy = map[string]bool{
	"name":          true,
	"price":         true,
	"category_name": true,
}

// ProductPage is a page of the product listing.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type productService struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	pageSize     int
}

func NewProductService(productRepo ProductRepository, categoryRepo CategoryRepository, pageSize int) *productService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		pageSize:     pageSize,
	}
}

// ListProducts normalizes the filter (sort whitelist, pagination defaults)
// and returns the matching page.
func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) (ProductPage, error) {
	if err := ctx.Err(); err != nil {
		return ProductPage{}, fmt.Errorf("context error: %w", err)
	}

	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if !validOrderBy[filter.OrderBy] {
		return ProductPage{}, fmt.Errorf("%w: unsupported ordering %q", domain.ErrValidation, filter.OrderBy)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.pageSize
	}

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return ProductPage{}, err
	}

	if products == nil {
		products = []domain.Product{}
	}

	return ProductPage{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find product by id", err)
		return nil, err
	}

	return &product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	// Referential integrity is also enforced by the FK; checking here turns
	// a bare constraint violation into a useful not-found.
	if _, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err != nil {
		logger.Error("Product category not found", err)
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("Failed to create new product", err)
		return nil, err
	}

	logger.Info("Product created", "product_id", product.ID, "name", product.Name)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}

	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err != nil {
		logger.Error("Product category not found", err)
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("Failed to update product", err)
		return nil, err
	}

	updatedProduct, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("Failed to fetch updated product", err)
		return nil, err
	}

	return &updatedProduct, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete product", err)
		return err
	}

	logger.Info("Product deleted", "product_id", id)

	return nil
}

func (s *productService) validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if product.CategoryID == 0 {
		return fmt.Errorf("%w: product category is required", domain.ErrValidation)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price must be non-negative", domain.ErrValidation)
	}
	if product.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrValidation)
	}

	return nil
}
