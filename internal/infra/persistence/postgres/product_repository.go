package postgres

import (
	"context"
	"strings"
	"time"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Omit("Category").Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt
	for i := range productM.Images {
		product.Images[i].ID = productM.Images[i].ID
		product.Images[i].ProductID = productM.ID
	}

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	var categoryID *int64
	if product.Category != nil {
		categoryID = &product.Category.ID
	}

	now := time.Now()
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"title":       product.Title,
			"description": product.Description,
			"price":       product.Price,
			"is_on_sale":  product.IsOnSale,
			"category_id": categoryID,
			"updated_at":  now,
		})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	product.UpdatedAt = now

	return nil
}

func (repo *productRepository) AddImages(ctx context.Context, productID int64, images []entity.ProductImage) error {
	if len(images) == 0 {
		return nil
	}

	imageMs := make([]model.ProductImageModel, 0, len(images))
	for _, img := range images {
		imageM := fromProductImageDomain(img)
		imageM.ProductID = productID
		imageMs = append(imageMs, imageM)
	}

	if err := repo.db.WithContext(ctx).Create(&imageMs).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add product images")
	}

	for i := range images {
		images[i].ID = imageMs[i].ID
		images[i].ProductID = productID
	}

	return nil
}

func (repo *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.withAssociations(ctx).First(&productM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	query := repo.withAssociations(ctx)
	if filter.Title != "" {
		query = query.Where("title ILIKE ?", "%"+escapeLike(filter.Title)+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var productMs []model.ProductModel
	if err := query.Order("id").Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// Delete relies on ON DELETE CASCADE for product_images.
func (repo *productRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}

	return nil
}

func (repo *productRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	images := make([]entity.ProductImage, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, toProductImageDomain(img))
	}

	return &entity.Product{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
		IsOnSale:    data.IsOnSale,
		Category:    toCategoryDomain(data.Category),
		Images:      images,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	productM := &model.ProductModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
		IsOnSale:    data.IsOnSale,
	}
	if data.Category != nil {
		id := data.Category.ID
		productM.CategoryID = &id
	}
	for _, img := range data.Images {
		productM.Images = append(productM.Images, fromProductImageDomain(img))
	}

	return productM
}

func toProductImageDomain(data model.ProductImageModel) entity.ProductImage {
	return entity.ProductImage{
		ID:               data.ID,
		ProductID:        data.ProductID,
		StorageKey:       data.StorageKey,
		OriginalFileName: data.OriginalFileName,
		ContentType:      data.ContentType,
	}
}

func fromProductImageDomain(data entity.ProductImage) model.ProductImageModel {
	return model.ProductImageModel{
		ID:               data.ID,
		ProductID:        data.ProductID,
		StorageKey:       data.StorageKey,
		OriginalFileName: data.OriginalFileName,
		ContentType:      data.ContentType,
	}
}
