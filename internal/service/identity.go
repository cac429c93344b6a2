package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jaekwang-park/dailytasker/internal/cognito"
	"github.com/jaekwang-park/dailytasker/internal/model"
	"github.com/jaekwang-park/dailytasker/internal/repository"
)

// IdentityService maps identity-provider subjects to local users,
// provisioning a user row the first time a subject is seen.
type IdentityService struct {
	users     repository.UserRepository
	directory cognito.Directory
	logger    *slog.Logger
}

// NewIdentityService creates the service. With a nil directory unknown
// subjects are never provisioned.
func NewIdentityService(users repository.UserRepository, directory cognito.Directory, logger *slog.Logger) *IdentityService {
	return &IdentityService{users: users, directory: directory, logger: logger}
}

// Resolve returns the local user for sub. It fails with ErrNotFound when the
// directory does not know sub and ErrForbidden when the account is disabled.
func (s *IdentityService) Resolve(ctx context.Context, sub string) (model.User, error) {
	user, err := s.users.GetByCognitoSub(ctx, sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if s.directory == nil {
		return model.User{}, ErrNotFound
	}

	profile, err := s.directory.LookupUser(ctx, sub)
	if err != nil {
		if errors.Is(err, cognito.ErrUserNotFound) || errors.Is(err, cognito.ErrInvalidParameter) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !profile.Enabled {
		return model.User{}, ErrForbidden
	}

	user, err = s.users.GetOrCreate(ctx, sub, profile.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to provision user: %w", err)
	}

	s.logger.InfoContext(ctx, "user provisioned", "user_id", user.ID)
	return user, nil
}
