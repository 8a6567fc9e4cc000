package user

import "context"

// Usecase defines the interface for user application operations.
// Every method is a direct delegation to the repository; this layer adds no
// business rules beyond shaping requests and responses for the transport.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error)
	ListUsersByPriority(ctx context.Context, in ListUsersByPriorityRequest) (*ListUsersByPriorityResponse, error)
	SaveUser(ctx context.Context, in SaveUserRequest) (*SaveUserResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error)
}
