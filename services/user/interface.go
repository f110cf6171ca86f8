package user

import (
	"context"
	"errors"
	"strings"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"
)

// UserService exposes the account operations this server owns. Sign-up and
// sign-in are handled by the identity provider that issues tokens.
type UserService interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	RegisterFCMToken(ctx context.Context, actor models.Actor, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo repository.UserRepository
}

// NewDefaultUserService wires the account service.
func NewDefaultUserService(repo repository.UserRepository) *DefaultUserService {
	return &DefaultUserService{Repo: repo}
}

// GetUserByID returns the account of userID.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, utils.Internal(err)
	}
	return u, nil
}

// RegisterFCMToken stores the caller's device token for push delivery. An
// empty token unregisters the device.
func (s *DefaultUserService) RegisterFCMToken(ctx context.Context, actor models.Actor, token string) error {
	if actor.ID == "" {
		return utils.Unauthorized("Unauthorized")
	}
	if err := s.Repo.UpdateFCMToken(ctx, actor.ID, strings.TrimSpace(token)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("User not found")
		}
		return utils.Internal(err)
	}
	return nil
}
