package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/application/usecase/audit"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/domain/payload"
	"github.com/yardops/yardops/infrastructure/service/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

type AuthUseCase struct {
	userRepo        outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	rateLimiter     inbound.RateLimitService
	recorder        inbound.AuditRecorder
	logger          logger.Logger
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	rateLimiter inbound.RateLimitService,
	recorder inbound.AuditRecorder,
	log logger.Logger,
) inbound.AuthUseCase {
	return &AuthUseCase{
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		rateLimiter:     rateLimiter,
		recorder:        recorder,
		logger:          log,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	ipKey := "login:ip:" + req.IP
	userKey := "login:user:" + req.Email

	for _, key := range []string{ipKey, userKey} {
		allowed, err := uc.rateLimiter.CheckLimit(ctx, key, loginAttemptLimit, loginAttemptWindow)
		if err != nil {
			// a broken limiter must not lock everyone out
			uc.logger.Warn(ctx, "Rate limit check failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			continue
		}
		if !allowed {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := uc.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			uc.countFailedAttempt(ctx, ipKey, userKey)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := uc.passwordService.VerifyPassword(user.Password, req.Password); err != nil {
		uc.countFailedAttempt(ctx, ipKey, userKey)
		return nil, ErrInvalidCredentials
	}

	if user.Status != entity.StatusActive {
		return nil, ErrAccountInactive
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Warn(ctx, "Failed to update last login", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	for _, key := range []string{ipKey, userKey} {
		if err := uc.rateLimiter.Reset(ctx, key); err != nil {
			uc.logger.Warn(ctx, "Failed to reset rate limit counter", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	uc.recordAudit(ctx, inbound.Actor{ID: user.ID}, entity.ActionLogin,
		fmt.Sprintf("%s logged in", user.Email), nil)

	return &inbound.LoginResponse{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// UpdateProfile lets the signed-in user change their own display name and
// records a diff of what changed.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, actor inbound.Actor, req inbound.UpdateProfileRequest) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	changed := audit.Diff([]audit.Field{
		{Name: "FirstName", Old: user.FirstName, New: req.FirstName},
		{Name: "LastName", Old: user.LastName, New: req.LastName},
	})

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.UpdatedOn = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	extra := payload.Object(payload.Field("ChangedFields", payload.Strings(changed)))
	uc.recordAudit(ctx, actor, entity.ActionUpdateProfile, "Updated own profile", &extra)

	return user, nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, actor inbound.Actor, req inbound.ChangePasswordRequest) error {
	user, err := uc.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}

	if err := uc.passwordService.VerifyPassword(user.Password, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}

	hash, err := uc.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hash
	user.UpdatedOn = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	uc.recordAudit(ctx, actor, entity.ActionChangePassword, "Changed own password", nil)

	return nil
}

func (uc *AuthUseCase) countFailedAttempt(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := uc.rateLimiter.Increment(ctx, key, loginAttemptWindow); err != nil {
			uc.logger.Warn(ctx, "Failed to count login attempt", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
}

func (uc *AuthUseCase) recordAudit(ctx context.Context, actor inbound.Actor, action, description string, extra *payload.Value) {
	if err := uc.recorder.Record(ctx, actor, action, description, extra); err != nil {
		uc.logger.Error(ctx, "Failed to record audit entry", err, map[string]interface{}{
			"action": action,
		})
	}
}
