package inbound

import (
	"context"

	"github.com/yardops/yardops/domain/entity"
)

type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type UpdateUserRequest struct {
	ID        string `json:"-"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

type ListUsersRequest struct {
	Search   string
	Role     string
	Status   string
	Page     int
	PageSize int
}

type UserPage struct {
	Users      []entity.User
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

type UserManagementUseCase interface {
	CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*entity.User, error)
	UpdateUser(ctx context.Context, actor Actor, req UpdateUserRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, actor Actor, userID string) error
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	ListUsers(ctx context.Context, req ListUsersRequest) (*UserPage, error)
	ConfirmEmail(ctx context.Context, userID string) error
}
