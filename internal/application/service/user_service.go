package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
	"github.com/skbavi/supermarket-pos-api/pkg/pagination"
)

// UserService handles account administration
type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// GetByID returns a single user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load user")
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// List returns a paginated user listing
func (s *UserService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, apperror.NewPersistenceError("list users")
	}
	meta := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, meta), nil
}

// UpdateRole changes a user's role between admin and user
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*entity.User, error) {
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return nil, apperror.NewBadRequestError("Role must be 'admin' or 'user'")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("update user role")
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, apperror.NewPersistenceError("update user role")
	}
	user.Role = role
	s.logger.Info("user role updated",
		zap.String("id", id.String()), zap.String("role", role))
	return user, nil
}

// Delete removes a user account. Transactions recorded by the user keep
// their user id and will render as "Unknown User" on future receipts.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewPersistenceError("delete user")
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete user")
	}
	return nil
}
