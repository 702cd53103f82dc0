package user

import (
	"context"

	"user-rest-service/pkg/pagination"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListUsersPage(ctx context.Context, params pagination.Params) ([]User, int64, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}
