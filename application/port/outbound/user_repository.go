package outbound

import (
	"context"
	"errors"

	"github.com/yardops/yardops/domain/entity"
)

var ErrUserNotFound = errors.New("user not found")

// UserListFilter narrows List results. Role and Status skip filtering when
// empty or set to the "all" sentinel.
type UserListFilter struct {
	Search string
	Role   string
	Status string
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserListFilter) ([]entity.User, error)
}
