package outbound

import (
	"context"
	"errors"

	"github.com/yardops/yardops/domain/entity"
)

var ErrYardNotFound = errors.New("yard not found")

type YardRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Yard, error)
	Create(ctx context.Context, yard *entity.Yard) error
	Update(ctx context.Context, yard *entity.Yard) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]entity.Yard, error)
}
