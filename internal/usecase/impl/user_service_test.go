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

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:        gofakeit.Name(),
		Email:       gofakeit.Email(),
		PhoneNumber: gofakeit.Phone(),
		Password:    "s3cret-password",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == input.Email && u.PasswordHash == "hashed" && u.Role == entity.RoleUser && u.Active
		})).
		RunAndReturn(func(_ context.Context, u *entity.User) error {
			u.ID = 11

			return nil
		})
	fx.tokenService.EXPECT().GenerateTokens(mock.AnythingOfType("*entity.User")).Return("access", "refresh", nil)

	out, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access", out.AccessToken)
	assert.Equal(t, "refresh", out.RefreshToken)
	assert.Equal(t, int64(11), out.User.ID)
	assert.Equal(t, input.Name, out.User.Name)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	email := gofakeit.Email()

	fx.userRepo.EXPECT().FindByEmail(ctx, email).Return(&entity.User{ID: 1, Email: email}, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: gofakeit.Name(), Email: email, Password: "password1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Register_LostInsertRace(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	email := gofakeit.Email()

	fx.userRepo.EXPECT().FindByEmail(ctx, email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("password1").Return("hashed", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.Wrap(repository.ErrUserConflict, "unique violation"))

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: gofakeit.Name(), Email: email, Password: "password1"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login(t *testing.T) {
	email := gofakeit.Email()
	user := &entity.User{ID: 3, Email: email, PasswordHash: "hashed", Active: true, Role: entity.RoleUser}

	t.Run("valid credentials", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()
		fx.userRepo.EXPECT().FindByEmail(ctx, email).Return(user, nil)
		fx.hasher.EXPECT().Check("right", "hashed").Return(true)
		fx.tokenService.EXPECT().GenerateTokens(user).Return("a", "r", nil)

		out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: email, Password: "right"})

		require.NoError(t, err)
		assert.Equal(t, user, out.User)
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()
		fx.userRepo.EXPECT().FindByEmail(ctx, email).Return(user, nil)
		fx.hasher.EXPECT().Check("wrong", "hashed").Return(false)

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: email, Password: "wrong"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()
		fx.userRepo.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "x"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()
		inactive := *user
		inactive.Active = false
		fx.userRepo.EXPECT().FindByEmail(ctx, email).Return(&inactive, nil)

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: email, Password: "right"})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByID(ctx, int64(404)).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetUser(ctx, 404)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
