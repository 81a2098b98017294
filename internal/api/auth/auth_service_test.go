package auth

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

// MockAuthRepo is a mock implementation of the AuthRepo interface
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, username, email, hashedPassword string) (string, error) {
	args := m.Called(ctx, username, email, hashedPassword)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func newTestAuthService(t *testing.T, repo AuthRepo) *AuthServiceImpl {
	t.Helper()
	tokens, err := NewTokenService(testJWTConfig())
	require.NoError(t, err)
	return NewAuthService(repo, NewBcryptHasher(), tokens, slog.Default())
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(t, mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateUser", ctx, "alice", "a@x.com", mock.AnythingOfType("string")).Return("user123", nil).Once()

		err := service.Register(ctx, "alice", "a@x.com", "secret1")
		assert.NoError(t, err)

		// The repository must never see the plaintext password.
		storedHash := mockRepo.Calls[0].Arguments.String(3)
		assert.NotEqual(t, "secret1", storedHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret1")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(t, mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateUser", ctx, "bob", "a@x.com", mock.AnythingOfType("string")).Return("", types.ErrConflict).Once()

		err := service.Register(ctx, "bob", "a@x.com", "another")
		assert.ErrorIs(t, err, types.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	email := "test@example.com"
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	user := &types.UserAuth{
		ID:       "user123",
		Username: "testuser",
		Email:    email,
		Password: string(hashedPassword),
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(t, mockRepo)

		mockRepo.On("GetUserByEmail", ctx, email).Return(user, nil).Once()

		token, err := service.Login(ctx, email, password)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		// The token round-trips through the same token service.
		claims, err := service.tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user123", claims.UserID)
		assert.Equal(t, "testuser", claims.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(t, mockRepo)

		mockRepo.On("GetUserByEmail", ctx, email).Return(user, nil).Once()

		_, err := service.Login(ctx, email, "wrong")
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(t, mockRepo)

		mockRepo.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, types.ErrNotFound).Once()

		_, err := service.Login(ctx, "nobody@example.com", password)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoCredentialLeak", func(t *testing.T) {
		// Wrong password and unknown email must be indistinguishable.
		mockRepo := new(MockAuthRepo)
		service := newTestAuthService(t, mockRepo)

		mockRepo.On("GetUserByEmail", ctx, email).Return(user, nil).Once()
		mockRepo.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, types.ErrNotFound).Once()

		_, wrongPasswordErr := service.Login(ctx, email, "wrong")
		_, unknownEmailErr := service.Login(ctx, "nobody@example.com", password)

		assert.Equal(t, wrongPasswordErr, unknownEmailErr)
		mockRepo.AssertExpectations(t)
	})
}
