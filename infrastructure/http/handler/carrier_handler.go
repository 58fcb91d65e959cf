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

type CarrierHandler struct {
	carrierUseCase inbound.CarrierUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewCarrierHandler(carrierUseCase inbound.CarrierUseCase, authMiddleware *middleware.AuthMiddleware) *CarrierHandler {
	return &CarrierHandler{
		carrierUseCase: carrierUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *CarrierHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/admin/carriers", h.authMiddleware.RequireAdmin(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/v1/admin/carriers", h.authMiddleware.RequireAdmin(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/v1/admin/carriers/{id}", h.authMiddleware.RequireAdmin(h.Get)).Methods(http.MethodGet)
	router.HandleFunc("/v1/admin/carriers/{id}", h.authMiddleware.RequireAdmin(h.Update)).Methods(http.MethodPut)
	router.HandleFunc("/v1/admin/carriers/{id}", h.authMiddleware.RequireAdmin(h.Delete)).Methods(http.MethodDelete)
}

func (h *CarrierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateCarrierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.CompanyName) {
		response.UnprocessableEntity(w, "Company name is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	carrier, err := h.carrierUseCase.CreateCarrier(r.Context(), actor, req)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusCreated, "Carrier created successfully", carrier)
}

func (h *CarrierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := carrierID(r)
	if err != nil {
		response.BadRequest(w, "Invalid carrier id")
		return
	}

	var req inbound.UpdateCarrierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.ID = id

	actor := middleware.ActorFromContext(r.Context())
	carrier, err := h.carrierUseCase.UpdateCarrier(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, outbound.ErrCarrierNotFound) {
			response.NotFound(w, "Carrier not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "Carrier updated successfully", carrier)
}

func (h *CarrierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := carrierID(r)
	if err != nil {
		response.BadRequest(w, "Invalid carrier id")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.carrierUseCase.DeleteCarrier(r.Context(), actor, id); err != nil {
		if errors.Is(err, outbound.ErrCarrierNotFound) {
			response.NotFound(w, "Carrier not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "Carrier deleted successfully", nil)
}

func (h *CarrierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := carrierID(r)
	if err != nil {
		response.BadRequest(w, "Invalid carrier id")
		return
	}

	carrier, err := h.carrierUseCase.GetCarrier(r.Context(), id)
	if err != nil {
		if errors.Is(err, outbound.ErrCarrierNotFound) {
			response.NotFound(w, "Carrier not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "success", carrier)
}

func (h *CarrierHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	result, err := h.carrierUseCase.ListCarriers(r.Context(), inbound.ListCarriersRequest{
		Search:   query.Get("search"),
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

func carrierID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
