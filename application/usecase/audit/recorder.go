// Package audit implements the activity audit subsystem: appending
// immutable audit entries for completed administrative actions, computing
// field-level change sets, querying the trail with combined filters, and
// rendering stored payloads for display.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/domain/payload"
)

// Recorder appends one audit entry per completed administrative action.
type Recorder struct {
	repo outbound.AuditRepository
	now  func() time.Time
}

func NewRecorder(repo outbound.AuditRepository) *Recorder {
	return &Recorder{
		repo: repo,
		now:  time.Now,
	}
}

// Record persists a single audit entry. When actor is zero the call is a
// silent no-op: actions without a resolvable principal (system jobs,
// unauthenticated requests) intentionally leave no trail. A persistence
// failure is returned to the caller; callers treat it as non-fatal to the
// already-committed primary action but must not lose it silently.
func (r *Recorder) Record(ctx context.Context, actor inbound.Actor, action, description string, extra *payload.Value) error {
	if actor.IsZero() {
		return nil
	}

	entry := &entity.AuditEntry{
		ActorID:     actor.ID,
		CreatedOn:   r.now().UTC(),
		Action:      action,
		Description: description,
	}
	if extra != nil {
		entry.Payload = extra.Encode()
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

var _ inbound.AuditRecorder = (*Recorder)(nil)
