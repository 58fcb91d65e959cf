package outbound

import (
	"context"
	"errors"

	"github.com/yardops/yardops/domain/entity"
)

var ErrRoleNotFound = errors.New("role not found")

type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Role, error)
	// CountUsers reports how many users currently hold the role.
	CountUsers(ctx context.Context, name string) (int, error)
}
