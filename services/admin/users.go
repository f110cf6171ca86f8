package admin

import (
	"context"
	"errors"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.uber.org/zap"
)

const msgUserNotFound = "User not found"

// UpdateUserInput changes an account's role or active flag. Omitted fields
// are left alone.
type UpdateUserInput struct {
	Role     models.Optional[string] `json:"role"`
	IsActive models.Optional[bool]   `json:"isActive"`
}

// ListUsers pages through accounts, newest first.
func (s *DefaultAdminService) ListUsers(
	ctx context.Context,
	actor models.Actor,
	filter models.UserFilter,
) ([]models.User, models.Pagination, error) {
	if !actor.IsAdmin() {
		return nil, models.Pagination{}, utils.Forbidden(msgAccessDenied)
	}
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, models.Pagination{}, utils.Validation("Invalid role")
	}
	filter.Page = filter.Page.Normalize(models.DefaultPageLimit)
	users, total, err := s.store.Users.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, utils.Internal(err)
	}
	return users, models.NewPagination(filter.Page, total), nil
}

// UpdateUser sets the role and active flag of an account.
func (s *DefaultAdminService) UpdateUser(
	ctx context.Context,
	actor models.Actor,
	userID string,
	input UpdateUserInput,
) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, utils.Forbidden(msgAccessDenied)
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgUserNotFound)
		}
		return nil, utils.Internal(err)
	}

	role, isActive := user.Role, user.IsActive
	if input.Role.Set && !input.Role.Null {
		parsed, ok := models.ParseRole(input.Role.Value)
		if !ok {
			return nil, utils.Validation("Invalid role")
		}
		role = parsed
	}
	if input.IsActive.Set && !input.IsActive.Null {
		isActive = input.IsActive.Value
	}
	if user.ID == actor.ID && (role != models.RoleAdmin || !isActive) {
		return nil, utils.Validation("Cannot demote or deactivate your own account")
	}

	if err := s.store.Users.UpdateAccess(ctx, user.ID, role, isActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound(msgUserNotFound)
		}
		return nil, utils.Internal(err)
	}
	utils.GetLogger().Info("User access updated",
		zap.String("userId", user.ID),
		zap.String("role", string(role)),
		zap.Bool("isActive", isActive),
		zap.String("adminId", actor.ID),
	)
	user.Role, user.IsActive = role, isActive
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *DefaultAdminService) DeleteUser(ctx context.Context, actor models.Actor, userID string) error {
	if !actor.IsAdmin() {
		return utils.Forbidden(msgAccessDenied)
	}
	if userID == actor.ID {
		return utils.Validation("Cannot delete your own account")
	}
	if err := s.store.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(msgUserNotFound)
		}
		return utils.Internal(err)
	}
	utils.GetLogger().Info("User deleted", zap.String("userId", userID), zap.String("adminId", actor.ID))
	return nil
}
