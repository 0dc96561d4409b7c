package category

import (
	"context"
	"fmt"

	"shopmarket/domain"
	"shopmarket/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return domain.Category{}, fmt.Errorf("%w: invalid category id", domain.ErrValidation)
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("Failed to create new category", err)
		return nil, err
	}

	logger.Info("Category created", "category_id", category.ID, "name", category.Name)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.ID == 0 {
		return nil, fmt.Errorf("%w: category id is required", domain.ErrValidation)
	}

	if category.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("Failed to update category", err)
		return nil, err
	}

	updatedCategory, err := s.categoryRepo.FindByID(ctx, category.ID)
	if err != nil {
		logger.Error("Failed to fetch updated category", err)
		return nil, err
	}

	return &updatedCategory, nil
}

// DeleteCategory removes an empty category. Deleting a category that
// still has products is a conflict, not a cascade.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return fmt.Errorf("%w: invalid category id", domain.ErrValidation)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete category", err)
		return err
	}

	logger.Info("Category deleted", "category_id", id)

	return nil
}
