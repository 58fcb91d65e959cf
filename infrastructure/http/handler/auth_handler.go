package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/usecase/auth"
	"github.com/yardops/yardops/infrastructure/http/middleware"
	"github.com/yardops/yardops/infrastructure/http/response"
	"github.com/yardops/yardops/infrastructure/http/validator"
)

type AuthHandler struct {
	authUseCase    inbound.AuthUseCase
	userUseCase    inbound.UserManagementUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewAuthHandler(
	authUseCase inbound.AuthUseCase,
	userUseCase inbound.UserManagementUseCase,
	authMiddleware *middleware.AuthMiddleware,
) *AuthHandler {
	return &AuthHandler{
		authUseCase:    authUseCase,
		userUseCase:    userUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/auth/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/v1/auth/me", h.authMiddleware.RequireAuth(h.Me)).Methods(http.MethodGet)
	router.HandleFunc("/v1/auth/profile", h.authMiddleware.RequireAuth(h.UpdateProfile)).Methods(http.MethodPut)
	router.HandleFunc("/v1/auth/password", h.authMiddleware.RequireAuth(h.ChangePassword)).Methods(http.MethodPost)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Password) {
		response.UnprocessableEntity(w, "Password is required")
		return
	}

	req.IP = clientIP(r)

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTooManyAttempts):
			response.Error(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, auth.ErrAccountInactive):
			response.Forbidden(w, "Account is not active")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.Success(w, http.StatusOK, "success", res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	user, err := h.userUseCase.GetUser(r.Context(), actor.ID)
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}
	response.Success(w, http.StatusOK, "success", user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.FirstName) {
		response.UnprocessableEntity(w, "First name is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	user, err := h.authUseCase.UpdateProfile(r.Context(), actor, req)
	if err != nil {
		response.InternalServerError(w, "Failed to update profile")
		return
	}
	response.Success(w, http.StatusOK, "Profile updated", user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req inbound.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidatePassword(req.NewPassword) {
		response.UnprocessableEntity(w, "Password must be at least 8 characters with upper, lower and digit")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.authUseCase.ChangePassword(r.Context(), actor, req); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			response.UnprocessableEntity(w, "Current password is incorrect")
			return
		}
		response.InternalServerError(w, "Failed to change password")
		return
	}
	response.Success(w, http.StatusOK, "Password changed", nil)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
