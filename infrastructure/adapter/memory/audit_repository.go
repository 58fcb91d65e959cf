package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

// actorDirectory resolves actor ids to users for search matching and
// display fields. Satisfied by *UserRepository.
type actorDirectory interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// AuditRepository is an append-only in-memory audit store. Ids are assigned
// monotonically on append, which doubles as the insertion-order tiebreaker
// for the scan ordering.
type AuditRepository struct {
	mu      sync.RWMutex
	entries []entity.AuditEntry
	nextID  int64
	users   actorDirectory
}

func NewAuditRepository(users actorDirectory) *AuditRepository {
	return &AuditRepository{nextID: 1, users: users}
}

func (r *AuditRepository) Append(_ context.Context, entry *entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *AuditRepository) Count(ctx context.Context, filter outbound.AuditFilter) (int, error) {
	views, err := r.scan(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(views), nil
}

func (r *AuditRepository) List(ctx context.Context, filter outbound.AuditFilter, offset, limit int) ([]entity.AuditEntryView, error) {
	views, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	if offset >= len(views) {
		return nil, nil
	}
	end := offset + limit
	if end > len(views) {
		end = len(views)
	}
	return views[offset:end], nil
}

func (r *AuditRepository) DistinctActions(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var actions []string
	for _, e := range r.entries {
		if _, ok := seen[e.Action]; ok {
			continue
		}
		seen[e.Action] = struct{}{}
		actions = append(actions, e.Action)
	}
	sort.Strings(actions)
	return actions, nil
}

func (r *AuditRepository) scan(ctx context.Context, filter outbound.AuditFilter) ([]entity.AuditEntryView, error) {
	r.mu.RLock()
	entries := make([]entity.AuditEntry, len(r.entries))
	copy(entries, r.entries)
	r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var views []entity.AuditEntryView
	for _, e := range entries {
		view := entity.AuditEntryView{
			AuditEntry: e,
			ActorName:  entity.UnknownActorName,
			ActorEmail: entity.UnknownActorEmail,
		}
		var actor *entity.User
		if r.users != nil {
			if u, err := r.users.FindByID(ctx, e.ActorID); err == nil {
				actor = u
				view.ActorName = u.FullName()
				view.ActorEmail = u.Email
			}
		}

		if search != "" && !matchesSearch(search, actor, e) {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.From != nil && e.CreatedOn.Before(*filter.From) {
			continue
		}
		if filter.Until != nil && !e.CreatedOn.Before(*filter.Until) {
			continue
		}
		views = append(views, view)
	}

	// Most recent first, insertion order breaking timestamp ties.
	sort.Slice(views, func(i, j int) bool {
		if !views[i].CreatedOn.Equal(views[j].CreatedOn) {
			return views[i].CreatedOn.After(views[j].CreatedOn)
		}
		return views[i].ID > views[j].ID
	})
	return views, nil
}

// matchesSearch mirrors the SQL search predicate: entries without a
// resolvable actor can still match on action or description.
func matchesSearch(search string, actor *entity.User, e entity.AuditEntry) bool {
	if actor != nil {
		if strings.Contains(strings.ToLower(actor.FirstName), search) ||
			strings.Contains(strings.ToLower(actor.LastName), search) ||
			strings.Contains(strings.ToLower(actor.Email), search) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(e.Action), search) ||
		strings.Contains(strings.ToLower(e.Description), search)
}

var _ outbound.AuditRepository = (*AuditRepository)(nil)
