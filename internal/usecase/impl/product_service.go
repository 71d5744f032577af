package impl

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	deliverycontext "cosmiccraft/internal/delivery/context"
	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/domain/service"
	"cosmiccraft/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type productService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageStore   service.ImageStore
	qrService    service.QRCodeService
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ImageStore   service.ImageStore
	QRService    service.QRCodeService
	Logger       *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		imageStore:   params.ImageStore,
		qrService:    params.QRService,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*usecase.ProductDetails, error) {
	products, err := srv.productRepo.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	details := make([]*usecase.ProductDetails, 0, len(products))
	for _, product := range products {
		detail, err := srv.withImages(ctx, product)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, nil
}

func (srv *productService) GetProduct(ctx context.Context, id int64) (*usecase.ProductDetails, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	return srv.withImages(ctx, product)
}

func (srv *productService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*usecase.ProductDetails, error) {
	product := &entity.Product{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       input.Price,
	}

	if input.CategoryID != nil {
		category, err := srv.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, errors.Wrapf(domainerrors.ErrCategoryNotFound, "category %d", *input.CategoryID)
			}

			return nil, errors.Wrap(err, "failed to find category")
		}
		product.Category = category
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category removed during create")
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Int64("productID", product.ID))

	return &usecase.ProductDetails{Product: product, Images: []usecase.ImageContent{}}, nil
}

func (srv *productService) UpdateProduct(
	ctx context.Context,
	id int64,
	patch entity.ProductPatch,
	uploads []usecase.ImageUpload,
) (*usecase.ProductDetails, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := srv.applyPatch(ctx, product, patch); err != nil {
		return nil, err
	}

	images, err := srv.storeUploads(ctx, id, uploads)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		return productRepo.AddImages(ctx, id, images)
	})
	if err != nil {
		srv.discardImages(ctx, images)

		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %d", id)
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category removed during update")
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Int64("productID", id), slog.Int("newImages", len(images)))

	return srv.GetProduct(ctx, id)
}

func (srv *productService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find product")
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.discardImages(ctx, product.Images)

	return nil
}

func (srv *productService) ProductQRCode(ctx context.Context, id int64) ([]byte, error) {
	if _, err := srv.findProduct(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateProductQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate product QR code")
	}

	return png, nil
}

func (srv *productService) findProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %d", id)
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// applyPatch copies the set fields of patch onto product. A category that does not exist
// leaves the product uncategorised.
func (srv *productService) applyPatch(ctx context.Context, product *entity.Product, patch entity.ProductPatch) error {
	if patch.Title != nil {
		product.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.IsOnSale != nil {
		product.IsOnSale = *patch.IsOnSale
	}
	if patch.CategoryID == nil {
		return nil
	}

	category, err := srv.categoryRepo.FindByID(ctx, *patch.CategoryID)
	switch {
	case err == nil:
		product.Category = category
	case errors.Is(err, repository.ErrCategoryNotFound):
		srv.log(ctx).Info("Unknown category, clearing product category",
			slog.Int64("productID", product.ID), slog.Int64("categoryID", *patch.CategoryID))
		product.Category = nil
	default:
		return errors.Wrap(err, "failed to find category")
	}

	return nil
}

func (srv *productService) storeUploads(ctx context.Context, productID int64, uploads []usecase.ImageUpload) ([]entity.ProductImage, error) {
	images := make([]entity.ProductImage, 0, len(uploads))
	for _, upload := range uploads {
		contentType := upload.ContentType
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = http.DetectContentType(upload.Data)
		}

		key := imageKey(productID, upload.FileName)
		if err := srv.imageStore.Put(ctx, key, upload.Data, contentType); err != nil {
			srv.discardImages(ctx, images)
			srv.log(ctx).Error("Failed to store product image", slog.String("key", key), slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrImageStorageFailed, err.Error())
		}

		images = append(images, entity.ProductImage{
			ProductID:        productID,
			StorageKey:       key,
			OriginalFileName: upload.FileName,
			ContentType:      contentType,
		})
	}

	return images, nil
}

// discardImages removes blobs whose rows were never written or were just deleted.
// Failures only leave orphaned blobs behind, so they are logged.
func (srv *productService) discardImages(ctx context.Context, images []entity.ProductImage) {
	for _, img := range images {
		if err := srv.imageStore.Delete(ctx, img.StorageKey); err != nil {
			srv.log(ctx).Warn("Failed to delete product image", slog.String("key", img.StorageKey), slog.Any("error", err))
		}
	}
}

func (srv *productService) withImages(ctx context.Context, product *entity.Product) (*usecase.ProductDetails, error) {
	contents := make([]usecase.ImageContent, 0, len(product.Images))
	for _, img := range product.Images {
		data, err := srv.imageStore.Get(ctx, img.StorageKey)
		if err != nil {
			srv.log(ctx).Error("Failed to load product image", slog.String("key", img.StorageKey), slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrImageStorageFailed, err.Error())
		}
		contents = append(contents, usecase.ImageContent{ContentType: img.ContentType, Data: data})
	}

	return &usecase.ProductDetails{Product: product, Images: contents}, nil
}

func imageKey(productID int64, fileName string) string {
	return "products/" + strconv.FormatInt(productID, 10) + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}
