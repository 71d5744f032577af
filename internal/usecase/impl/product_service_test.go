package impl

import (
	"context"
	"strings"
	"testing"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	mockRepo "cosmiccraft/internal/mocks/repository"
	mockSvc "cosmiccraft/internal/mocks/service"
	"cosmiccraft/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixtures struct {
	service      usecase.ProductUsecase
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
	imageStore   *mockSvc.MockImageStore
	qrService    *mockSvc.MockQRCodeService
}

func createTestProductService(t *testing.T) productServiceFixtures {
	fx := productServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		factory:      mockRepo.NewMockRepositoryFactory(t),
		productRepo:  mockRepo.NewMockProductRepository(t),
		categoryRepo: mockRepo.NewMockCategoryRepository(t),
		imageStore:   mockSvc.NewMockImageStore(t),
		qrService:    mockSvc.NewMockQRCodeService(t),
	}
	fx.service = NewProductService(ProductServiceParams{
		TxManager:    fx.txManager,
		ProductRepo:  fx.productRepo,
		CategoryRepo: fx.categoryRepo,
		ImageStore:   fx.imageStore,
		QRService:    fx.qrService,
		Logger:       newDiscardLogger(),
	})

	return fx
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("with existing category", func(t *testing.T) {
		fx := createTestProductService(t)
		ctx := context.Background()
		categoryID := int64(3)
		category := &entity.Category{ID: categoryID, Name: "Telescopes"}
		title := gofakeit.ProductName()

		fx.categoryRepo.EXPECT().FindByID(ctx, categoryID).Return(category, nil)
		fx.productRepo.EXPECT().
			Create(ctx, mock.MatchedBy(func(p *entity.Product) bool { return p.Title == title && p.Category == category })).
			RunAndReturn(func(_ context.Context, p *entity.Product) error {
				p.ID = 17

				return nil
			})

		details, err := fx.service.CreateProduct(ctx, &usecase.CreateProductInput{Title: title, Price: 1999, CategoryID: &categoryID})

		require.NoError(t, err)
		assert.Equal(t, int64(17), details.Product.ID)
		assert.Empty(t, details.Images)
	})

	t.Run("unknown category", func(t *testing.T) {
		fx := createTestProductService(t)
		ctx := context.Background()
		categoryID := int64(99)

		fx.categoryRepo.EXPECT().FindByID(ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

		_, err := fx.service.CreateProduct(ctx, &usecase.CreateProductInput{Title: "Lens", Price: 10, CategoryID: &categoryID})

		assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
	})
}

func TestProductService_GetProduct_LoadsImages(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()
	product := &entity.Product{
		ID:     5,
		Title:  "Star map",
		Images: []entity.ProductImage{{ID: 1, ProductID: 5, StorageKey: "products/5/a.png", ContentType: "image/png"}},
	}

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(product, nil)
	fx.imageStore.EXPECT().Get(ctx, "products/5/a.png").Return([]byte("png-bytes"), nil)

	details, err := fx.service.GetProduct(ctx, 5)

	require.NoError(t, err)
	require.Len(t, details.Images, 1)
	assert.Equal(t, "image/png", details.Images[0].ContentType)
	assert.Equal(t, []byte("png-bytes"), details.Images[0].Data)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(5)).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.GetProduct(ctx, 5)

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_UpdateProduct_UnknownCategoryClearsIt(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()
	unknown := int64(404)
	newTitle := "Refractor 80mm"
	product := &entity.Product{ID: 8, Title: "Old", Price: 100, Category: &entity.Category{ID: 1}}

	fx.productRepo.EXPECT().FindByID(ctx, int64(8)).Return(product, nil).Once()
	fx.categoryRepo.EXPECT().FindByID(ctx, unknown).Return(nil, repository.ErrCategoryNotFound)
	fx.imageStore.EXPECT().
		Put(ctx, mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "products/8/") && strings.HasSuffix(key, ".png") }),
			[]byte("img"), "image/png").
		Return(nil)
	runInTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().NewProductRepository().Return(fx.productRepo)
	fx.productRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(p *entity.Product) bool { return p.Title == newTitle && p.Category == nil && p.Price == 100 })).
		Return(nil)
	fx.productRepo.EXPECT().
		AddImages(ctx, int64(8), mock.MatchedBy(func(images []entity.ProductImage) bool {
			return len(images) == 1 && images[0].OriginalFileName == "Photo.PNG"
		})).
		Return(nil)

	stored := &entity.Product{
		ID:     8,
		Title:  newTitle,
		Price:  100,
		Images: []entity.ProductImage{{ID: 2, ProductID: 8, StorageKey: "products/8/x.png", ContentType: "image/png"}},
	}
	fx.productRepo.EXPECT().FindByID(ctx, int64(8)).Return(stored, nil).Once()
	fx.imageStore.EXPECT().Get(ctx, "products/8/x.png").Return([]byte("img"), nil)

	details, err := fx.service.UpdateProduct(ctx, 8,
		entity.ProductPatch{Title: &newTitle, CategoryID: &unknown},
		[]usecase.ImageUpload{{FileName: "Photo.PNG", ContentType: "image/png", Data: []byte("img")}},
	)

	require.NoError(t, err)
	assert.Nil(t, details.Product.Category)
	assert.Len(t, details.Images, 1)
}

func TestProductService_UpdateProduct_FailedWriteDiscardsBlobs(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByID(ctx, int64(8)).Return(&entity.Product{ID: 8}, nil)
	fx.imageStore.EXPECT().Put(ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	fx.txManager.EXPECT().Execute(ctx, mock.Anything).Return(errors.New("connection reset"))
	fx.imageStore.EXPECT().Delete(ctx, mock.Anything).Return(nil)

	_, err := fx.service.UpdateProduct(ctx, 8, entity.ProductPatch{},
		[]usecase.ImageUpload{{FileName: "a.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}})

	require.Error(t, err)
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Run("absent product is a no-op", func(t *testing.T) {
		fx := createTestProductService(t)
		ctx := context.Background()

		fx.productRepo.EXPECT().FindByID(ctx, int64(8)).Return(nil, repository.ErrProductNotFound)

		assert.NoError(t, fx.service.DeleteProduct(ctx, 8))
	})

	t.Run("removes row and blobs", func(t *testing.T) {
		fx := createTestProductService(t)
		ctx := context.Background()
		product := &entity.Product{ID: 8, Images: []entity.ProductImage{{StorageKey: "products/8/a.png"}}}

		fx.productRepo.EXPECT().FindByID(ctx, int64(8)).Return(product, nil)
		fx.productRepo.EXPECT().Delete(ctx, int64(8)).Return(nil)
		fx.imageStore.EXPECT().Delete(ctx, "products/8/a.png").Return(nil)

		assert.NoError(t, fx.service.DeleteProduct(ctx, 8))
	})
}

func TestProductService_ProductQRCode(t *testing.T) {
	t.Run("existing product", func(t *testing.T) {
		fx := createTestProductService(t)
		ctx := context.Background()

		fx.productRepo.EXPECT().FindByID(ctx, int64(8)).Return(&entity.Product{ID: 8}, nil)
		fx.qrService.EXPECT().GenerateProductQR(int64(8)).Return([]byte("png"), nil)

		png, err := fx.service.ProductQRCode(ctx, 8)

		require.NoError(t, err)
		assert.Equal(t, []byte("png"), png)
	})

	t.Run("absent product", func(t *testing.T) {
		fx := createTestProductService(t)
		ctx := context.Background()

		fx.productRepo.EXPECT().FindByID(ctx, int64(8)).Return(nil, repository.ErrProductNotFound)

		_, err := fx.service.ProductQRCode(ctx, 8)

		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})
}

func TestCategoryService_CreateCategory(t *testing.T) {
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	service := NewCategoryService(categoryRepo, newDiscardLogger())
	ctx := context.Background()

	categoryRepo.EXPECT().
		Create(ctx, &entity.Category{Name: "Optics", Description: "Lenses"}).
		RunAndReturn(func(_ context.Context, c *entity.Category) error {
			c.ID = 2

			return nil
		})

	category, err := service.CreateCategory(ctx, " Optics ", "Lenses")

	require.NoError(t, err)
	assert.Equal(t, int64(2), category.ID)
	assert.Equal(t, "Optics", category.Name)
}
