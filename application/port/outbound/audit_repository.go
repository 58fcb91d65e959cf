package outbound

import (
	"context"
	"time"

	"github.com/yardops/yardops/domain/entity"
)

// AuditFilter carries the normalized criteria for a filtered scan. All set
// criteria are combined with AND. From/Until are exact UTC instants: the
// lower bound is inclusive, the upper bound exclusive.
type AuditFilter struct {
	Search string
	Action string
	From   *time.Time
	Until  *time.Time
}

// AuditRepository persists audit entries. The store is append-only: no
// update or delete operations exist and none should be added. Entries
// accumulate indefinitely; retention is an operator concern.
//
// List must return entries ordered by created_on descending with id
// descending as the tiebreaker, so pagination stays deterministic when
// timestamps collide.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	Count(ctx context.Context, filter AuditFilter) (int, error)
	List(ctx context.Context, filter AuditFilter, offset, limit int) ([]entity.AuditEntryView, error)
	DistinctActions(ctx context.Context) ([]string, error)
}
