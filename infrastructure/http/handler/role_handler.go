package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/application/usecase/role"
	"github.com/yardops/yardops/infrastructure/http/middleware"
	"github.com/yardops/yardops/infrastructure/http/response"
	"github.com/yardops/yardops/infrastructure/http/validator"
)

type RoleHandler struct {
	roleUseCase    inbound.RoleUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewRoleHandler(roleUseCase inbound.RoleUseCase, authMiddleware *middleware.AuthMiddleware) *RoleHandler {
	return &RoleHandler{
		roleUseCase:    roleUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *RoleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/admin/roles", h.authMiddleware.RequireAdmin(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/v1/admin/roles", h.authMiddleware.RequireAdmin(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/v1/admin/roles/{id}", h.authMiddleware.RequireAdmin(h.Update)).Methods(http.MethodPut)
	router.HandleFunc("/v1/admin/roles/{id}", h.authMiddleware.RequireAdmin(h.Delete)).Methods(http.MethodDelete)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Name) {
		response.UnprocessableEntity(w, "Role name is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	created, err := h.roleUseCase.CreateRole(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, role.ErrRoleNameExists) {
			response.Conflict(w, "A role with this name already exists")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusCreated, "Role created successfully", created)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.ID = mux.Vars(r)["id"]

	actor := middleware.ActorFromContext(r.Context())
	updated, err := h.roleUseCase.UpdateRole(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrRoleNotFound):
			response.NotFound(w, "Role not found")
		case errors.Is(err, role.ErrRoleNameExists):
			response.Conflict(w, "A role with this name already exists")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}
	response.Success(w, http.StatusOK, "Role updated successfully", updated)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	err := h.roleUseCase.DeleteRole(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, outbound.ErrRoleNotFound):
			response.NotFound(w, "Role not found")
		case errors.Is(err, role.ErrSystemRole):
			response.UnprocessableEntity(w, "System roles cannot be deleted")
		case errors.Is(err, role.ErrRoleInUse):
			response.Conflict(w, "Role is assigned to one or more users")
		default:
			response.InternalServerError(w, "Internal server error")
		}
		return
	}
	response.Success(w, http.StatusOK, "Role deleted successfully", nil)
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleUseCase.ListRoles(r.Context())
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "success", roles)
}
