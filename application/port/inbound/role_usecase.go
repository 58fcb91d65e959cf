package inbound

import (
	"context"

	"github.com/yardops/yardops/domain/entity"
)

type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type UpdateRoleRequest struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type RoleUseCase interface {
	CreateRole(ctx context.Context, actor Actor, req CreateRoleRequest) (*entity.Role, error)
	UpdateRole(ctx context.Context, actor Actor, req UpdateRoleRequest) (*entity.Role, error)
	DeleteRole(ctx context.Context, actor Actor, roleID string) error
	ListRoles(ctx context.Context) ([]entity.Role, error)
}
