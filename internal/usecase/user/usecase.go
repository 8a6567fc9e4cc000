package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	pkgerrors "user-service/pkg/errors"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// to be used interchangeably.
type Repository interface {
	FindAll(ctx context.Context) ([]domain.User, error)                                 // List all users
	FindByID(ctx context.Context, id int64) (*domain.User, error)                       // Retrieve user by ID, nil when absent
	FindByPriority(ctx context.Context, priority int) ([]domain.User, error)            // List users with equal priority
	Save(ctx context.Context, u *domain.User) (*domain.User, domain.SaveOutcome, error) // Insert or fully overwrite
	DeleteByID(ctx context.Context, id int64) (domain.DeleteOutcome, error)             // Delete user by ID
}

type usecase struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new user Usecase backed by the provided repository.
func New(r Repository, log *zap.Logger) Usecase {
	return &usecase{repo: r, log: log}
}

// ListUsers returns every persisted user.
func (uc *usecase) ListUsers(ctx context.Context, _ ListUsersRequest) (*ListUsersResponse, error) {
	domainUsers, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = fromDomain(&domainUsers[i])
	}
	return &ListUsersResponse{Users: users}, nil
}

// GetUser retrieves a user by ID. An absent record is not an error:
// the response carries a nil User.
func (uc *usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	u, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return &GetUserResponse{}, nil
	}

	dto := fromDomain(u)
	return &GetUserResponse{User: &dto}, nil
}

// ListUsersByPriority returns all users whose priority equals the requested value.
func (uc *usecase) ListUsersByPriority(ctx context.Context, in ListUsersByPriorityRequest) (*ListUsersByPriorityResponse, error) {
	domainUsers, err := uc.repo.FindByPriority(ctx, in.Priority)
	if err != nil {
		uc.log.Error("failed to list users by priority", zap.Int("priority", in.Priority), zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = fromDomain(&domainUsers[i])
	}
	return &ListUsersByPriorityResponse{Users: users}, nil
}

// SaveUser persists the user: create when the request carries no id, full
// overwrite when it does. The response reports which of the two happened.
func (uc *usecase) SaveUser(ctx context.Context, in SaveUserRequest) (*SaveUserResponse, error) {
	uc.log.Info("saving user", zap.Int64("id", in.ID))

	persisted, outcome, err := uc.repo.Save(ctx, &domain.User{
		ID:       in.ID,
		Name:     in.Name,
		Email:    in.Email,
		Priority: in.Priority,
	})
	if err != nil {
		uc.log.Error("failed to save user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &SaveUserResponse{
		User:    fromDomain(persisted),
		Outcome: outcome,
	}, nil
}

// DeleteUser removes a user by ID. The outcome distinguishes a removed row
// from an id that matched nothing; storage failures propagate as errors.
func (uc *usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	if in.ID <= 0 {
		uc.log.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.NewValidationError("id", "user id must be positive")
	}

	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	outcome, err := uc.repo.DeleteByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &DeleteUserResponse{ID: in.ID, Outcome: outcome}, nil
}
