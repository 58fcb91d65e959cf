package carrier

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

type CarrierUseCase struct {
	carrierRepo outbound.CarrierRepository
	recorder    inbound.AuditRecorder
	logger      logger.Logger
}

func NewCarrierUseCase(
	carrierRepo outbound.CarrierRepository,
	recorder inbound.AuditRecorder,
	log logger.Logger,
) inbound.CarrierUseCase {
	return &CarrierUseCase{
		carrierRepo: carrierRepo,
		recorder:    recorder,
		logger:      log,
	}
}

func (uc *CarrierUseCase) CreateCarrier(ctx context.Context, actor inbound.Actor, req inbound.CreateCarrierRequest) (*entity.Carrier, error) {
	maxID, err := uc.carrierRepo.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine next carrier code: %w", err)
	}

	carrier := &entity.Carrier{
		CarrierCode:   NextCode(maxID),
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Status:        req.Status,
		CreatedBy:     actor.ID,
		CreatedOn:     time.Now().UTC(),
	}
	if carrier.Status == "" {
		carrier.Status = entity.StatusActive
	}

	if err := uc.carrierRepo.Create(ctx, carrier); err != nil {
		return nil, fmt.Errorf("failed to create carrier: %w", err)
	}

	extra := payload.Object(
		payload.Field("CarrierCode", payload.String(carrier.CarrierCode)),
		payload.Field("CompanyName", payload.String(carrier.CompanyName)),
	)
	uc.recordAudit(ctx, actor, entity.ActionCreateCarrier,
		fmt.Sprintf("Created carrier %s (%s)", carrier.CompanyName, carrier.CarrierCode), &extra)

	return carrier, nil
}

func (uc *CarrierUseCase) UpdateCarrier(ctx context.Context, actor inbound.Actor, req inbound.UpdateCarrierRequest) (*entity.Carrier, error) {
	carrier, err := uc.carrierRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	changed := audit.Diff([]audit.Field{
		{Name: "CompanyName", Old: carrier.CompanyName, New: req.CompanyName},
		{Name: "ContactPerson", Old: carrier.ContactPerson, New: req.ContactPerson},
		{Name: "Phone", Old: carrier.Phone, New: req.Phone},
		{Name: "Email", Old: carrier.Email, New: req.Email},
		{Name: "Address", Old: carrier.Address, New: req.Address},
		{Name: "Status", Old: carrier.Status, New: req.Status},
	})

	carrier.CompanyName = req.CompanyName
	carrier.ContactPerson = req.ContactPerson
	carrier.Phone = req.Phone
	carrier.Email = req.Email
	carrier.Address = req.Address
	carrier.Status = req.Status

	if err := uc.carrierRepo.Update(ctx, carrier); err != nil {
		return nil, fmt.Errorf("failed to update carrier: %w", err)
	}

	extra := payload.Object(
		payload.Field("CarrierCode", payload.String(carrier.CarrierCode)),
		payload.Field("ChangedFields", payload.Strings(changed)),
	)
	uc.recordAudit(ctx, actor, entity.ActionEditCarrier,
		fmt.Sprintf("Edited carrier %s (%s)", carrier.CompanyName, carrier.CarrierCode), &extra)

	return carrier, nil
}

func (uc *CarrierUseCase) DeleteCarrier(ctx context.Context, actor inbound.Actor, carrierID int64) error {
	carrier, err := uc.carrierRepo.FindByID(ctx, carrierID)
	if err != nil {
		return err
	}

	name := carrier.CompanyName
	code := carrier.CarrierCode

	if err := uc.carrierRepo.Delete(ctx, carrierID); err != nil {
		return fmt.Errorf("failed to delete carrier: %w", err)
	}

	extra := payload.Object(
		payload.Field("DeletedCarrierCode", payload.String(code)),
		payload.Field("DeletedCompanyName", payload.String(name)),
	)
	uc.recordAudit(ctx, actor, entity.ActionDeleteCarrier,
		fmt.Sprintf("Deleted carrier %s (%s)", name, code), &extra)

	return nil
}

func (uc *CarrierUseCase) GetCarrier(ctx context.Context, carrierID int64) (*entity.Carrier, error) {
	return uc.carrierRepo.FindByID(ctx, carrierID)
}

func (uc *CarrierUseCase) ListCarriers(ctx context.Context, req inbound.ListCarriersRequest) (*inbound.CarrierPage, error) {
	carriers, err := uc.carrierRepo.List(ctx, outbound.CarrierListFilter{
		Search: req.Search,
		Status: req.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list carriers: %w", err)
	}

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	total := len(carriers)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := req.Page
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &inbound.CarrierPage{
		Carriers:   carriers[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (uc *CarrierUseCase) recordAudit(ctx context.Context, actor inbound.Actor, action, description string, extra *payload.Value) {
	if err := uc.recorder.Record(ctx, actor, action, description, extra); err != nil {
		uc.logger.Error(ctx, "Failed to record audit entry", err, map[string]interface{}{
			"action": action,
		})
	}
}
