package impl

import (
	"context"
	"testing"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	mockRepo "cosmiccraft/internal/mocks/repository"
	mockSvc "cosmiccraft/internal/mocks/service"
	"cosmiccraft/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestWishlistService(t *testing.T) (usecase.WishlistUsecase, *mockRepo.MockWishlistRepository, *mockSvc.MockKeyedLocker) {
	wishlistRepo := mockRepo.NewMockWishlistRepository(t)
	locker := mockSvc.NewMockKeyedLocker(t)

	service := NewWishlistService(WishlistServiceParams{
		WishlistRepo: wishlistRepo,
		Locker:       locker,
		Logger:       newDiscardLogger(),
	})

	return service, wishlistRepo, locker
}

func TestWishlistService_AddProduct_CreatesWishlist(t *testing.T) {
	service, wishlistRepo, locker := createTestWishlistService(t)
	ctx := context.Background()
	created := &entity.Wishlist{ID: 4, UserID: 21}

	locker.EXPECT().Lock(mock.Anything, "wishlist:21").Return(func() {}, nil)
	wishlistRepo.EXPECT().FindByOwner(ctx, int64(21)).Return(nil, repository.ErrOwnedResourceNotFound).Once()
	wishlistRepo.EXPECT().CreateEmpty(ctx, int64(21)).Return(created, nil)
	wishlistRepo.EXPECT().Save(ctx, created).Return(nil)

	wishlist, err := service.AddProduct(ctx, 21, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{100}, wishlist.ProductIDs)
}

func TestWishlistService_AddProduct_KeepsSetSemantics(t *testing.T) {
	service, wishlistRepo, locker := createTestWishlistService(t)
	ctx := context.Background()
	existing := &entity.Wishlist{ID: 4, UserID: 22, ProductIDs: []int64{100, 101}}

	locker.EXPECT().Lock(mock.Anything, "wishlist:22").Return(func() {}, nil)
	wishlistRepo.EXPECT().FindByOwner(ctx, int64(22)).Return(existing, nil)
	wishlistRepo.EXPECT().Save(ctx, existing).Return(nil)

	wishlist, err := service.AddProduct(ctx, 22, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, wishlist.ProductIDs)
}

func TestWishlistService_RemoveProduct(t *testing.T) {
	t.Run("absent product is a no-op", func(t *testing.T) {
		service, wishlistRepo, locker := createTestWishlistService(t)
		ctx := context.Background()
		existing := &entity.Wishlist{ID: 4, UserID: 23, ProductIDs: []int64{100, 101}}

		locker.EXPECT().Lock(mock.Anything, "wishlist:23").Return(func() {}, nil)
		wishlistRepo.EXPECT().FindByOwner(ctx, int64(23)).Return(existing, nil)
		wishlistRepo.EXPECT().Save(ctx, existing).Return(nil)

		wishlist, err := service.RemoveProduct(ctx, 23, 999)

		require.NoError(t, err)
		assert.Equal(t, []int64{100, 101}, wishlist.ProductIDs)
	})

	t.Run("no wishlist", func(t *testing.T) {
		service, wishlistRepo, locker := createTestWishlistService(t)
		ctx := context.Background()

		locker.EXPECT().Lock(mock.Anything, "wishlist:24").Return(func() {}, nil)
		wishlistRepo.EXPECT().FindByOwner(ctx, int64(24)).Return(nil, repository.ErrOwnedResourceNotFound)

		_, err := service.RemoveProduct(ctx, 24, 100)

		assert.ErrorIs(t, err, domainerrors.ErrWishlistNotFound)
	})
}

func TestWishlistService_GetWishlist_Existing(t *testing.T) {
	service, wishlistRepo, _ := createTestWishlistService(t)
	ctx := context.Background()
	existing := &entity.Wishlist{ID: 4, UserID: 25, ProductIDs: []int64{7}}

	wishlistRepo.EXPECT().FindByOwner(ctx, int64(25)).Return(existing, nil)

	wishlist, err := service.GetWishlist(ctx, 25)

	require.NoError(t, err)
	assert.Same(t, existing, wishlist)
}
