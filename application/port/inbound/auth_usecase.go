package inbound

import (
	"context"

	"github.com/yardops/yardops/domain/entity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IP       string `json:"-"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *entity.User `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AuthUseCase interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	UpdateProfile(ctx context.Context, actor Actor, req UpdateProfileRequest) (*entity.User, error)
	ChangePassword(ctx context.Context, actor Actor, req ChangePasswordRequest) error
}
