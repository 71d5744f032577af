package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "cosmiccraft/internal/delivery/context"
	"cosmiccraft/internal/domain/entity"
	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/usecase"

	"github.com/pkg/errors"
)

type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger *slog.Logger) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) CreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	category := &entity.Category{
		Name:        strings.TrimSpace(name),
		Description: description,
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Category created", slog.Int64("categoryID", category.ID))

	return category, nil
}

// DeleteCategory leaves the products of the category uncategorised.
func (srv *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}
