package role

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/application/usecase/audit"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/domain/payload"
	"github.com/yardops/yardops/infrastructure/service/logger"
)

var (
	ErrRoleNameExists = errors.New("a role with this name already exists")
	ErrSystemRole     = errors.New("system roles cannot be deleted")
	ErrRoleInUse      = errors.New("role is assigned to one or more users")
)

type RoleUseCase struct {
	roleRepo outbound.RoleRepository
	recorder inbound.AuditRecorder
	logger   logger.Logger
}

func NewRoleUseCase(
	roleRepo outbound.RoleRepository,
	recorder inbound.AuditRecorder,
	log logger.Logger,
) inbound.RoleUseCase {
	return &RoleUseCase{
		roleRepo: roleRepo,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *RoleUseCase) CreateRole(ctx context.Context, actor inbound.Actor, req inbound.CreateRoleRequest) (*entity.Role, error) {
	if existing, err := uc.roleRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, ErrRoleNameExists
	} else if err != nil && !errors.Is(err, outbound.ErrRoleNotFound) {
		return nil, fmt.Errorf("failed to check role name: %w", err)
	}

	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		CreatedOn:   time.Now().UTC(),
	}
	if role.Status == "" {
		role.Status = entity.StatusActive
	}

	if err := uc.roleRepo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	extra := payload.Object(
		payload.Field("RoleName", payload.String(role.Name)),
		payload.Field("Description", payload.String(role.Description)),
	)
	uc.recordAudit(ctx, actor, entity.ActionCreateRole, fmt.Sprintf("Created role %s", role.Name), &extra)

	return role, nil
}

func (uc *RoleUseCase) UpdateRole(ctx context.Context, actor inbound.Actor, req inbound.UpdateRoleRequest) (*entity.Role, error) {
	role, err := uc.roleRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != role.Name {
		if existing, err := uc.roleRepo.FindByName(ctx, req.Name); err == nil && existing != nil && existing.ID != role.ID {
			return nil, ErrRoleNameExists
		} else if err != nil && !errors.Is(err, outbound.ErrRoleNotFound) {
			return nil, fmt.Errorf("failed to check role name: %w", err)
		}
	}

	changed := audit.Diff([]audit.Field{
		{Name: "Name", Old: role.Name, New: req.Name},
		{Name: "Description", Old: role.Description, New: req.Description},
		{Name: "Status", Old: role.Status, New: req.Status},
	})

	role.Name = req.Name
	role.Description = req.Description
	role.Status = req.Status

	if err := uc.roleRepo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	extra := payload.Object(payload.Field("ChangedFields", payload.Strings(changed)))
	uc.recordAudit(ctx, actor, entity.ActionEditRole, fmt.Sprintf("Edited role %s", role.Name), &extra)

	return role, nil
}

// DeleteRole removes a role after ruling out the two protected cases:
// built-in roles and roles still assigned to users.
func (uc *RoleUseCase) DeleteRole(ctx context.Context, actor inbound.Actor, roleID string) error {
	role, err := uc.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsSystemRole {
		return ErrSystemRole
	}

	inUse, err := uc.roleRepo.CountUsers(ctx, role.Name)
	if err != nil {
		return fmt.Errorf("failed to count role assignments: %w", err)
	}
	if inUse > 0 {
		return ErrRoleInUse
	}

	name := role.Name

	if err := uc.roleRepo.Delete(ctx, roleID); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	extra := payload.Object(payload.Field("DeletedRoleName", payload.String(name)))
	uc.recordAudit(ctx, actor, entity.ActionDeleteRole, fmt.Sprintf("Deleted role %s", name), &extra)

	return nil
}

func (uc *RoleUseCase) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return uc.roleRepo.List(ctx)
}

func (uc *RoleUseCase) recordAudit(ctx context.Context, actor inbound.Actor, action, description string, extra *payload.Value) {
	if err := uc.recorder.Record(ctx, actor, action, description, extra); err != nil {
		uc.logger.Error(ctx, "Failed to record audit entry", err, map[string]interface{}{
			"action": action,
		})
	}
}
