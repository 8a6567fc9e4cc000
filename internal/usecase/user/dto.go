package user

import domain "user-service/internal/domain/user"

// User represents a user DTO (Data Transfer Object) for API responses.
// Nullable fields stay pointers so absent values survive the round trip as null.
type User struct {
	ID       int64
	Name     *string
	Email    *string
	Priority *int
}

// ListUsersRequest represents the request payload for listing all users.
type ListUsersRequest struct{}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for a single-user lookup.
// User is nil when no record with the requested id exists.
type GetUserResponse struct {
	User *User
}

// ListUsersByPriorityRequest represents the request payload for the priority lookup.
type ListUsersByPriorityRequest struct {
	Priority int
}

// ListUsersByPriorityResponse represents the response payload for the priority lookup.
type ListUsersByPriorityResponse struct {
	Users []User
}

// SaveUserRequest represents the request payload for the upsert operation.
// A zero ID requests a create; a non-zero ID requests a full overwrite of that row.
type SaveUserRequest struct {
	ID       int64
	Name     *string
	Email    *string
	Priority *int
}

// SaveUserResponse represents the response payload after an upsert,
// carrying the persisted record and the tagged create/update outcome.
type SaveUserResponse struct {
	User    User
	Outcome domain.SaveOutcome
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after a delete.
type DeleteUserResponse struct {
	ID      int64
	Outcome domain.DeleteOutcome
}

func fromDomain(u *domain.User) User {
	return User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Priority: u.Priority,
	}
}
