package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/usecase/audit"
	"github.com/yardops/yardops/infrastructure/http/middleware"
	"github.com/yardops/yardops/infrastructure/http/response"
)

type ActivityHandler struct {
	trail          inbound.AuditTrailUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewActivityHandler(trail inbound.AuditTrailUseCase, authMiddleware *middleware.AuthMiddleware) *ActivityHandler {
	return &ActivityHandler{
		trail:          trail,
		authMiddleware: authMiddleware,
	}
}

func (h *ActivityHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/admin/activities", h.authMiddleware.RequireAdmin(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/v1/admin/activities/actions", h.authMiddleware.RequireAdmin(h.Actions)).Methods(http.MethodGet)
}

// activityRow is one rendered trail entry. Details carries the stored
// payload flattened for display.
type activityRow struct {
	ID          int64     `json:"id"`
	ActorName   string    `json:"actor_name"`
	ActorEmail  string    `json:"actor_email"`
	CreatedOn   time.Time `json:"created_on"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
}

type activityPage struct {
	Activities []activityRow `json:"activities"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	q := inbound.ActivityQuery{
		SearchTerm:   query.Get("search"),
		ActionFilter: query.Get("action"),
		Page:         page,
		PageSize:     pageSize,
	}

	if raw := query.Get("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "Invalid date_from, expected YYYY-MM-DD")
			return
		}
		q.DateFrom = &from
	}
	if raw := query.Get("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "Invalid date_to, expected YYYY-MM-DD")
			return
		}
		q.DateTo = &to
	}

	result, err := h.trail.Query(r.Context(), q)
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}

	rows := make([]activityRow, 0, len(result.Entries))
	for _, entry := range result.Entries {
		rows = append(rows, activityRow{
			ID:          entry.ID,
			ActorName:   entry.ActorName,
			ActorEmail:  entry.ActorEmail,
			CreatedOn:   entry.CreatedOn,
			Action:      entry.Action,
			Description: entry.Description,
			Details:     audit.FormatPayload(entry.Payload),
		})
	}

	response.Success(w, http.StatusOK, "success", activityPage{
		Activities: rows,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}

func (h *ActivityHandler) Actions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.trail.ListActions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Internal server error")
		return
	}
	response.Success(w, http.StatusOK, "success", actions)
}
