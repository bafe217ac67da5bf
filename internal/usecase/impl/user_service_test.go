package impl

import (
	"context"
	"testing"

	"picstream/internal/domain/entity"
	domainerrors "picstream/internal/domain/errors"
	"picstream/internal/domain/repository"
	mockRepo "picstream/internal/mocks/repository"
	mockSvc "picstream/internal/mocks/service"
	"picstream/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
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
	fixtures := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretPass",
	}

	fixtures.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fixtures.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "hashed_password", user.PasswordHash)
			user.ID = 7
		}).
		Return(nil)

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, int64(7), output.User.ID)
	assert.Equal(t, input.Username, output.User.Username)
	assert.Equal(t, input.Email, output.User.Email)
}

func TestUserService_Register_HashFailure(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretPass",
	}

	fixtures.hasher.EXPECT().Hash(input.Password).Return("", errors.New("bcrypt failure"))

	output, err := fixtures.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestUserService_Register_DuplicateUser(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretPass",
	}

	fixtures.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fixtures.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists)

	output, err := fixtures.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_Login_Success(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           42,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed_password",
	}

	fixtures.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fixtures.hasher.EXPECT().Check("s3cretPass", user.PasswordHash).Return(true)
	fixtures.tokenService.EXPECT().Generate("alice", int64(42)).Return("signed.jwt.token", nil)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "s3cretPass",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.jwt.token", output.AccessToken)
	assert.Equal(t, "Bearer", output.TokenType)
	assert.Equal(t, user, output.User)
}

func TestUserService_Login_UnknownUser(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	fixtures.userRepo.EXPECT().
		FindByUsername(ctx, "ghost").
		Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "ghost",
		Password: "whatever",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: "hashed_password",
	}

	fixtures.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fixtures.hasher.EXPECT().Check("wrong", user.PasswordHash).Return(false)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "wrong",
	})

	assert.Nil(t, output)
	// Wrong password reports the same error as an unknown username.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_TokenFailure(t *testing.T) {
	fixtures := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: "hashed_password",
	}

	fixtures.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fixtures.hasher.EXPECT().Check("s3cretPass", user.PasswordHash).Return(true)
	fixtures.tokenService.EXPECT().
		Generate("alice", int64(42)).
		Return("", errors.New("signing failure"))

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "s3cretPass",
	})

	assert.Nil(t, output)
	assert.Error(t, err)
}
