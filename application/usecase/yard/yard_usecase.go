package yard

import (
	"context"
	"fmt"
	"time"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/application/usecase/audit"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/domain/payload"
	"github.com/yardops/yardops/infrastructure/service/logger"
)

type YardUseCase struct {
	yardRepo outbound.YardRepository
	recorder inbound.AuditRecorder
	logger   logger.Logger
}

func NewYardUseCase(
	yardRepo outbound.YardRepository,
	recorder inbound.AuditRecorder,
	log logger.Logger,
) inbound.YardUseCase {
	return &YardUseCase{
		yardRepo: yardRepo,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *YardUseCase) CreateYard(ctx context.Context, actor inbound.Actor, req inbound.CreateYardRequest) (*entity.Yard, error) {
	yard := &entity.Yard{
		YardName:  req.YardName,
		Address:   req.Address,
		Status:    req.Status,
		CreatedBy: actor.ID,
		CreatedOn: time.Now().UTC(),
	}
	if yard.Status == "" {
		yard.Status = entity.StatusActive
	}

	if err := uc.yardRepo.Create(ctx, yard); err != nil {
		return nil, fmt.Errorf("failed to create yard: %w", err)
	}

	extra := payload.Object(payload.Field("YardName", payload.String(yard.YardName)))
	uc.recordAudit(ctx, actor, entity.ActionCreateYard, fmt.Sprintf("Created yard %s", yard.YardName), &extra)

	return yard, nil
}

func (uc *YardUseCase) UpdateYard(ctx context.Context, actor inbound.Actor, req inbound.UpdateYardRequest) (*entity.Yard, error) {
	yard, err := uc.yardRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	changed := audit.Diff([]audit.Field{
		{Name: "YardName", Old: yard.YardName, New: req.YardName},
		{Name: "Address", Old: yard.Address, New: req.Address},
		{Name: "Status", Old: yard.Status, New: req.Status},
	})

	yard.YardName = req.YardName
	yard.Address = req.Address
	yard.Status = req.Status

	if err := uc.yardRepo.Update(ctx, yard); err != nil {
		return nil, fmt.Errorf("failed to update yard: %w", err)
	}

	extra := payload.Object(payload.Field("ChangedFields", payload.Strings(changed)))
	uc.recordAudit(ctx, actor, entity.ActionEditYard, fmt.Sprintf("Edited yard %s", yard.YardName), &extra)

	return yard, nil
}

func (uc *YardUseCase) DeleteYard(ctx context.Context, actor inbound.Actor, yardID int64) error {
	yard, err := uc.yardRepo.FindByID(ctx, yardID)
	if err != nil {
		return err
	}

	name := yard.YardName

	if err := uc.yardRepo.Delete(ctx, yardID); err != nil {
		return fmt.Errorf("failed to delete yard: %w", err)
	}

	extra := payload.Object(payload.Field("DeletedYardName", payload.String(name)))
	uc.recordAudit(ctx, actor, entity.ActionDeleteYard, fmt.Sprintf("Deleted yard %s", name), &extra)

	return nil
}

func (uc *YardUseCase) ListYards(ctx context.Context) ([]entity.Yard, error) {
	return uc.yardRepo.List(ctx)
}

func (uc *YardUseCase) recordAudit(ctx context.Context, actor inbound.Actor, action, description string, extra *payload.Value) {
	if err := uc.recorder.Record(ctx, actor, action, description, extra); err != nil {
		uc.logger.Error(ctx, "Failed to record audit entry", err, map[string]interface{}{
			"action": action,
		})
	}
}
