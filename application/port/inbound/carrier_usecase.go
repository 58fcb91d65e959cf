package inbound

import (
	"context"

	"github.com/yardops/yardops/domain/entity"
)

type CreateCarrierRequest struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Status        string `json:"status"`
}

type UpdateCarrierRequest struct {
	ID            int64  `json:"-"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Status        string `json:"status"`
}

type ListCarriersRequest struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

type CarrierPage struct {
	Carriers   []entity.Carrier
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

type CarrierUseCase interface {
	CreateCarrier(ctx context.Context, actor Actor, req CreateCarrierRequest) (*entity.Carrier, error)
	UpdateCarrier(ctx context.Context, actor Actor, req UpdateCarrierRequest) (*entity.Carrier, error)
	DeleteCarrier(ctx context.Context, actor Actor, carrierID int64) error
	GetCarrier(ctx context.Context, carrierID int64) (*entity.Carrier, error)
	ListCarriers(ctx context.Context, req ListCarriersRequest) (*CarrierPage, error)
}
