package user_management

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
	ErrEmailExists      = errors.New("email already exists")
	ErrSelfDelete       = errors.New("you cannot delete your own account")
	ErrAlreadyConfirmed = errors.New("email is already confirmed")
)

type UserManagementUseCase struct {
	userRepo        outbound.UserRepository
	roleRepo        outbound.RoleRepository
	passwordService outbound.PasswordService
	mailer          outbound.EmailSender
	recorder        inbound.AuditRecorder
	logger          logger.Logger
	defaultPassword string
}

func NewUserManagementUseCase(
	userRepo outbound.UserRepository,
	roleRepo outbound.RoleRepository,
	passwordService outbound.PasswordService,
	mailer outbound.EmailSender,
	recorder inbound.AuditRecorder,
	log logger.Logger,
	defaultPassword string,
) inbound.UserManagementUseCase {
	return &UserManagementUseCase{
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		passwordService: passwordService,
		mailer:          mailer,
		recorder:        recorder,
		logger:          log,
		defaultPassword: defaultPassword,
	}
}

// CreateUser provisions an inactive account with the configured temporary
// password and hands a confirmation mail to the sender. The creating admin
// is recorded in the audit trail.
func (uc *UserManagementUseCase) CreateUser(ctx context.Context, actor inbound.Actor, req inbound.CreateUserRequest) (*entity.User, error) {
	if _, err := uc.roleRepo.FindByName(ctx, req.Role); err != nil {
		if errors.Is(err, outbound.ErrRoleNotFound) {
			return nil, fmt.Errorf("invalid role %q", req.Role)
		}
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	if existing, err := uc.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailExists
	} else if err != nil && !errors.Is(err, outbound.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := uc.passwordService.HashPassword(uc.defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(uuid.New().String(), req.Email, hash)
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Role = req.Role
	user.Status = entity.StatusInactive
	user.CreatedBy = actor.ID

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	extra := payload.Object(
		payload.Field("NewRole", payload.String(req.Role)),
		payload.Field("FirstName", payload.String(req.FirstName)),
		payload.Field("LastName", payload.String(req.LastName)),
	)
	uc.recordAudit(ctx, actor, entity.ActionCreateUser, fmt.Sprintf("Created user %s", req.Email), &extra)

	if err := uc.mailer.Send(ctx, user.Email, "Confirm your YardOps account", confirmationBody(user)); err != nil {
		// user exists either way; confirmation can be resent manually
		uc.logger.Warn(ctx, "Failed to send confirmation email", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	return user, nil
}

// UpdateUser applies the submitted fields and records an audit entry
// carrying one diff line per changed field.
func (uc *UserManagementUseCase) UpdateUser(ctx context.Context, actor inbound.Actor, req inbound.UpdateUserRequest) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		if existing, err := uc.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil && existing.ID != user.ID {
			return nil, ErrEmailExists
		} else if err != nil && !errors.Is(err, outbound.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}
	if req.Role != user.Role {
		if _, err := uc.roleRepo.FindByName(ctx, req.Role); err != nil {
			if errors.Is(err, outbound.ErrRoleNotFound) {
				return nil, fmt.Errorf("invalid role %q", req.Role)
			}
			return nil, fmt.Errorf("failed to look up role: %w", err)
		}
	}

	changed := audit.Diff([]audit.Field{
		{Name: "FirstName", Old: user.FirstName, New: req.FirstName},
		{Name: "LastName", Old: user.LastName, New: req.LastName},
		{Name: "Status", Old: user.Status, New: req.Status},
		{Name: "Email", Old: user.Email, New: req.Email},
		{Name: "Role", Old: user.Role, New: req.Role},
	})

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Status = req.Status
	user.Email = req.Email
	user.Role = req.Role
	user.UpdatedOn = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	extra := payload.Object(payload.Field("ChangedFields", payload.Strings(changed)))
	uc.recordAudit(ctx, actor, entity.ActionEditUser, fmt.Sprintf("Edited user %s", user.Email), &extra)

	return user, nil
}

func (uc *UserManagementUseCase) DeleteUser(ctx context.Context, actor inbound.Actor, userID string) error {
	if userID == actor.ID {
		return ErrSelfDelete
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	// capture display fields before the row disappears
	email := user.Email
	fullName := user.FullName()

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	extra := payload.Object(
		payload.Field("DeletedUserEmail", payload.String(email)),
		payload.Field("DeletedUserName", payload.String(fullName)),
	)
	uc.recordAudit(ctx, actor, entity.ActionDeleteUser, fmt.Sprintf("Deleted user %s", email), &extra)

	return nil
}

func (uc *UserManagementUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.FindByID(ctx, userID)
}

func (uc *UserManagementUseCase) ListUsers(ctx context.Context, req inbound.ListUsersRequest) (*inbound.UserPage, error) {
	users, err := uc.userRepo.List(ctx, outbound.UserListFilter{
		Search: req.Search,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	total := len(users)
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

	return &inbound.UserPage{
		Users:      users[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// ConfirmEmail activates an account from the emailed confirmation link.
// The request carries no authenticated principal, so no audit entry is
// written here.
func (uc *UserManagementUseCase) ConfirmEmail(ctx context.Context, userID string) error {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailConfirmed {
		return ErrAlreadyConfirmed
	}

	user.EmailConfirmed = true
	user.Status = entity.StatusActive
	user.UpdatedOn = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}
	return nil
}

// recordAudit writes the trail entry for a committed mutation. A failed
// audit write must not undo or mask the mutation, so it is logged and
// swallowed here rather than returned.
func (uc *UserManagementUseCase) recordAudit(ctx context.Context, actor inbound.Actor, action, description string, extra *payload.Value) {
	if err := uc.recorder.Record(ctx, actor, action, description, extra); err != nil {
		uc.logger.Error(ctx, "Failed to record audit entry", err, map[string]interface{}{
			"action": action,
		})
	}
}

func confirmationBody(user *entity.User) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour YardOps account has been created by an administrator. "+
			"Please confirm your email address to activate your account.\n",
		user.FirstName,
	)
}
