package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/application/usecase/user_management"
	"github.com/yardops/yardops/infrastructure/http/middleware"
	"github.com/yardops/yardops/infrastructure/http/response"
	"github.com/yardops/yardops/infrastructure/http/validator"
)

type UserHandler struct {
	userUseCase    inbound.UserManagementUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewUserHandler(userUseCase inbound.UserManagementUseCase, authMiddleware *middleware.AuthMiddleware) *UserHandler {
	return &UserHandler{
		userUseCase:    userUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/admin/users", h.authMiddleware.RequireAdmin(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/v1/admin/users", h.authMiddleware.RequireAdmin(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/v1/admin/users/{id}", h.authMiddleware.RequireAdmin(h.Get)).Methods(http.MethodGet)
	router.HandleFunc("/v1/admin/users/{id}", h.authMiddleware.RequireAdmin(h.Update)).Methods(http.MethodPut)
	router.HandleFunc("/v1/admin/users/{id}", h.authMiddleware.RequireAdmin(h.Delete)).Methods(http.MethodDelete)

	// confirmation links are followed from email, before any login
	router.HandleFunc("/v1/users/{id}/confirm", h.ConfirmEmail).Methods(http.MethodPost)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Role) {
		response.UnprocessableEntity(w, "Role is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	user, err := h.userUseCase.CreateUser(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, user_management.ErrEmailExists):
			response.Conflict(w, "Email already exists")
		case isInvalidRole(err):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.ID = mux.Vars(r)["id"]

	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email format")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	user, err := h.userUseCase.UpdateUser(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, user_management.ErrEmailExists):
			response.Conflict(w, "Email already exists")
		case isInvalidRole(err):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	err := h.userUseCase.DeleteUser(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, user_management.ErrSelfDelete):
			response.UnprocessableEntity(w, "You cannot delete your own account")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}
	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUseCase.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "success", user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	result, err := h.userUseCase.ListUsers(r.Context(), inbound.ListUsersRequest{
		Search:   query.Get("search"),
		Role:     query.Get("role"),
		Status:   query.Get("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}

	response.Success(w, http.StatusOK, "success", result)
}

func (h *UserHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	err := h.userUseCase.ConfirmEmail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, user_management.ErrAlreadyConfirmed):
			response.Conflict(w, "Email is already confirmed")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}
	response.Success(w, http.StatusOK, "Email confirmed", nil)
}

func isInvalidRole(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "invalid role")
}
