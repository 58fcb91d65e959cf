package inbound

import (
	"context"
	"time"

	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/domain/payload"
)

// Actor identifies the authenticated principal performing an action. A zero
// Actor means no principal could be resolved; recording then skips silently.
type Actor struct {
	ID string
}

func (a Actor) IsZero() bool { return a.ID == "" }

// AuditRecorder appends one immutable audit entry per completed
// administrative action.
type AuditRecorder interface {
	Record(ctx context.Context, actor Actor, action, description string, extra *payload.Value) error
}

// ActivityQuery carries the admin activity-trail filters. Zero-valued
// criteria are skipped; ActionFilter additionally treats "all" as absent.
// Dates are interpreted as whole calendar days in UTC: DateFrom from the
// start of its day, DateTo through the end of its day.
type ActivityQuery struct {
	SearchTerm   string
	ActionFilter string
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	PageSize     int
}

type ActivityLogPage struct {
	Entries    []entity.AuditEntryView
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

type AuditTrailUseCase interface {
	Query(ctx context.Context, q ActivityQuery) (*ActivityLogPage, error)
	// ListActions returns the distinct action tags present in the store,
	// sorted ascending and prefixed with the "all" sentinel.
	ListActions(ctx context.Context) ([]string, error)
}
