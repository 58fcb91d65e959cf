package outbound

import (
	"context"
	"errors"

	"github.com/yardops/yardops/domain/entity"
)

var ErrCarrierNotFound = errors.New("carrier not found")

type CarrierListFilter struct {
	Search string
	Status string
}

type CarrierRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Carrier, error)
	Create(ctx context.Context, carrier *entity.Carrier) error
	Update(ctx context.Context, carrier *entity.Carrier) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CarrierListFilter) ([]entity.Carrier, error)
	// MaxID returns the highest carrier id, 0 when the table is empty.
	// Used to derive the next carrier code.
	MaxID(ctx context.Context) (int64, error)
}
