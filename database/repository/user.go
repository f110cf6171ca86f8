package repository

import (
	"context"

	"karigar/models"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs returns the users found, keyed by id. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	// Create stores a new account. Accounts start active.
	Create(ctx context.Context, user *models.User) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	// UpdateAccess sets the role and the active flag of an account.
	UpdateAccess(ctx context.Context, id string, role models.Role, isActive bool) error
	Delete(ctx context.Context, id string) error
	// List returns one page of users, newest first.
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int64, error)
	IDsByRole(ctx context.Context, role models.Role) ([]string, error)
	CountByRole(ctx context.Context) (map[models.Role]int64, error)
}
