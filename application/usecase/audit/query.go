package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
)

// AllActions is the sentinel filter value that disables action filtering.
const AllActions = "all"

const DefaultPageSize = 10

// QueryEngine is the read path over the audit trail. It is read-only: the
// store exposes no update or delete operations.
type QueryEngine struct {
	repo outbound.AuditRepository
}

func NewQueryEngine(repo outbound.AuditRepository) *QueryEngine {
	return &QueryEngine{repo: repo}
}

// Query returns one page of audit entries under the combined filters.
// Entries come back most recent first, with insertion order breaking
// timestamp ties so an entry never straddles two pages across requests.
// The requested page is clamped into [1, totalPages] and the clamped value
// is returned in the result.
func (q *QueryEngine) Query(ctx context.Context, query inbound.ActivityQuery) (*inbound.ActivityLogPage, error) {
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filter := normalizeFilter(query)

	total, err := q.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit entries: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := query.Page
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	entries, err := q.repo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return &inbound.ActivityLogPage{
		Entries:    entries,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// ListActions returns the distinct action tags currently present in the
// store, sorted ascending and prefixed with the "all" sentinel. Actions are
// free-form strings, so the list reflects live data rather than an enum.
func (q *QueryEngine) ListActions(ctx context.Context) ([]string, error) {
	actions, err := q.repo.DistinctActions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit actions: %w", err)
	}
	return append([]string{AllActions}, actions...), nil
}

// normalizeFilter turns the user-facing query into exact scan bounds. Date
// filters select whole calendar days in UTC: the lower bound is the start of
// DateFrom's day, the upper bound the start of the day after DateTo.
func normalizeFilter(query inbound.ActivityQuery) outbound.AuditFilter {
	filter := outbound.AuditFilter{
		Search: strings.TrimSpace(query.SearchTerm),
	}
	if query.ActionFilter != "" && query.ActionFilter != AllActions {
		filter.Action = query.ActionFilter
	}
	if query.DateFrom != nil {
		from := startOfDayUTC(*query.DateFrom)
		filter.From = &from
	}
	if query.DateTo != nil {
		until := startOfDayUTC(*query.DateTo).Add(24 * time.Hour)
		filter.Until = &until
	}
	return filter
}

func startOfDayUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var _ inbound.AuditTrailUseCase = (*QueryEngine)(nil)
