package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the credential lifecycle operations.
type AuthService interface {
	// Register creates a new user. Returns types.ErrConflict when the
	// email is already taken.
	Register(ctx context.Context, username, email, password string) error

	// Login validates credentials and returns a signed access token.
	// Returns types.ErrUnauthenticated for both an unknown email and a
	// wrong password, so callers cannot tell the cases apart.
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	hasher PasswordHasher
	tokens *TokenService
}

func NewAuthService(repo AuthRepo, hasher PasswordHasher, tokens *TokenService, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) error {
	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.repo.CreateUser(ctx, username, email, hashedPassword)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("userID", userID))
	return nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// Same failure as a wrong password; do not reveal
			// whether the email exists.
			return "", types.ErrUnauthenticated
		}
		return "", err
	}

	if !s.hasher.Check(password, user.Password) {
		return "", types.ErrUnauthenticated
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return token, nil
}
