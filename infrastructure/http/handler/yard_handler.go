package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/infrastructure/http/middleware"
	"github.com/yardops/yardops/infrastructure/http/response"
	"github.com/yardops/yardops/infrastructure/http/validator"
)

type YardHandler struct {
	yardUseCase    inbound.YardUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewYardHandler(yardUseCase inbound.YardUseCase, authMiddleware *middleware.AuthMiddleware) *YardHandler {
	return &YardHandler{
		yardUseCase:    yardUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *YardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/admin/yards", h.authMiddleware.RequireAdmin(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/v1/admin/yards", h.authMiddleware.RequireAdmin(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/v1/admin/yards/{id}", h.authMiddleware.RequireAdmin(h.Update)).Methods(http.MethodPut)
	router.HandleFunc("/v1/admin/yards/{id}", h.authMiddleware.RequireAdmin(h.Delete)).Methods(http.MethodDelete)
}

func (h *YardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateYardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.YardName) {
		response.UnprocessableEntity(w, "Yard name is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	yard, err := h.yardUseCase.CreateYard(r.Context(), actor, req)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusCreated, "Yard created successfully", yard)
}

func (h *YardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid yard id")
		return
	}

	var req inbound.UpdateYardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.ID = id

	actor := middleware.ActorFromContext(r.Context())
	yard, err := h.yardUseCase.UpdateYard(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, outbound.ErrYardNotFound) {
			response.NotFound(w, "Yard not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "Yard updated successfully", yard)
}

func (h *YardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid yard id")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.yardUseCase.DeleteYard(r.Context(), actor, id); err != nil {
		if errors.Is(err, outbound.ErrYardNotFound) {
			response.NotFound(w, "Yard not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "Yard deleted successfully", nil)
}

func (h *YardHandler) List(w http.ResponseWriter, r *http.Request) {
	yards, err := h.yardUseCase.ListYards(r.Context())
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "success", yards)
}
