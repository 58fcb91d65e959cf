package inbound

import (
	"context"

	"github.com/yardops/yardops/domain/entity"
)

type CreateYardRequest struct {
	YardName string `json:"yard_name"`
	Address  string `json:"address"`
	Status   string `json:"status"`
}

type UpdateYardRequest struct {
	ID       int64  `json:"-"`
	YardName string `json:"yard_name"`
	Address  string `json:"address"`
	Status   string `json:"status"`
}

type YardUseCase interface {
	CreateYard(ctx context.Context, actor Actor, req CreateYardRequest) (*entity.Yard, error)
	UpdateYard(ctx context.Context, actor Actor, req UpdateYardRequest) (*entity.Yard, error)
	DeleteYard(ctx context.Context, actor Actor, yardID int64) error
	ListYards(ctx context.Context) ([]entity.Yard, error)
}
