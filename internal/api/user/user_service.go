package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-todo-list-api/internal/api/auth"
	"github.com/FACorreiaa/go-todo-list-api/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService defines identity-scoped profile operations. The userID is
// always the identity verified by the auth middleware, never a
// client-supplied value.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID string, params types.UpdateProfileParams) error
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
	hasher auth.PasswordHasher
	cache  *cache.Cache
}

func NewUserService(repo UserRepo, hasher auth.PasswordHasher, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
		hasher: hasher,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func profileCacheKey(userID string) string {
	return "profile:" + userID
}

func (s *UserServiceImpl) GetUserProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	key := profileCacheKey(userID)
	if cached, found := s.cache.Get(key); found {
		if profile, ok := cached.(*types.UserProfile); ok {
			return profile, nil
		}
	}

	profile, err := s.repo.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, profile, cache.DefaultExpiration)
	return profile, nil
}

func (s *UserServiceImpl) UpdateUserProfile(ctx context.Context, userID string, params types.UpdateProfileParams) error {
	update := ProfileUpdate{
		Username: params.Username,
		Email:    params.Email,
	}

	if params.Password != nil {
		hashed, err := s.hasher.Hash(*params.Password)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}
		update.PasswordHash = &hashed
	}

	if err := s.repo.UpdateProfile(ctx, userID, update); err != nil {
		return err
	}

	// Cached copy is stale after any update.
	s.cache.Delete(profileCacheKey(userID))
	return nil
}
