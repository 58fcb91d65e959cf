package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/infrastructure/adapter/memory"
)

type trailFixture struct {
	users    *memory.UserRepository
	repo     *memory.AuditRepository
	recorder *Recorder
	engine   *QueryEngine
}

func newTrailFixture(t *testing.T) *trailFixture {
	t.Helper()
	users := memory.NewUserRepository()
	repo := memory.NewAuditRepository(users)
	return &trailFixture{
		users:    users,
		repo:     repo,
		recorder: NewRecorder(repo),
		engine:   NewQueryEngine(repo),
	}
}

func (f *trailFixture) addUser(t *testing.T, id, first, last, email string) {
	t.Helper()
	user := entity.NewUser(id, email, "secret")
	user.FirstName = first
	user.LastName = last
	require.NoError(t, f.users.Create(context.Background(), user))
}

func (f *trailFixture) recordAt(t *testing.T, ts time.Time, actorID, action, description string) {
	t.Helper()
	f.recorder.now = func() time.Time { return ts }
	err := f.recorder.Record(context.Background(), inbound.Actor{ID: actorID}, action, description, nil)
	require.NoError(t, err)
}

func TestQueryOrdersByTimeThenInsertion(t *testing.T) {
	f := newTrailFixture(t)
	f.addUser(t, "u-1", "Jane", "Doe", "jane@yardops.test")
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	f.recordAt(t, ts, "u-1", entity.ActionLogin, "first at t")
	f.recordAt(t, ts, "u-1", entity.ActionCreateUser, "second at t")
	f.recordAt(t, ts.Add(-time.Second), "u-1", entity.ActionDeleteUser, "earlier")

	page, err := f.engine.Query(context.Background(), inbound.ActivityQuery{})
	require.NoError(t, err)
	require.Len(t, page.Entries, 3)
	// most recent timestamp first; within a tie, later insertion first
	assert.Equal(t, int64(2), page.Entries[0].ID)
	assert.Equal(t, int64(1), page.Entries[1].ID)
	assert.Equal(t, int64(3), page.Entries[2].ID)
}

func TestQueryPaginationClamping(t *testing.T) {
	f := newTrailFixture(t)
	f.addUser(t, "u-1", "Jane", "Doe", "jane@yardops.test")
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		f.recordAt(t, base.Add(time.Duration(i)*time.Minute), "u-1", entity.ActionLogin, fmt.Sprintf("entry %d", i))
	}

	// 7 entries, 3 per page -> 3 pages
	page, err := f.engine.Query(context.Background(), inbound.ActivityQuery{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Entries, 3)

	// page 0 clamps to 1
	first, err := f.engine.Query(context.Background(), inbound.ActivityQuery{Page: 0, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	require.Len(t, first.Entries, 3)

	// far past the end clamps to the last page and returns its rows
	last, err := f.engine.Query(context.Background(), inbound.ActivityQuery{Page: 8, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, last.Page)
	assert.Len(t, last.Entries, 1)
}

func TestQueryEmptyStoreHasOnePage(t *testing.T) {
	f := newTrailFixture(t)
	page, err := f.engine.Query(context.Background(), inbound.ActivityQuery{Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Entries)
}

func TestQuerySearchMatchesActorAndEntryFields(t *testing.T) {
	f := newTrailFixture(t)
	f.addUser(t, "u-1", "Jane", "Doe", "jane@yardops.test")
	f.addUser(t, "u-2", "Bob", "Smith", "bob@yardops.test")
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	f.recordAt(t, ts, "u-1", entity.ActionCreateCarrier, "Created carrier Acme (CAR-001)")
	f.recordAt(t, ts, "u-2", entity.ActionLogin, "User logged in")
	f.recordAt(t, ts, "ghost", entity.ActionDeleteYard, "Deleted yard North")

	// case-insensitive match on actor first name
	page, err := f.engine.Query(context.Background(), inbound.ActivityQuery{SearchTerm: "JANE"})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, entity.ActionCreateCarrier, page.Entries[0].Action)

	// entries without a resolvable actor still match on description
	page, err = f.engine.Query(context.Background(), inbound.ActivityQuery{SearchTerm: "north"})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, entity.UnknownActorName, page.Entries[0].ActorName)
	assert.Equal(t, entity.UnknownActorEmail, page.Entries[0].ActorEmail)

	// match on action tag
	page, err = f.engine.Query(context.Background(), inbound.ActivityQuery{SearchTerm: "login"})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "Bob Smith", page.Entries[0].ActorName)
}

func TestQueryActionFilter(t *testing.T) {
	f := newTrailFixture(t)
	f.addUser(t, "u-1", "Jane", "Doe", "jane@yardops.test")
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f.recordAt(t, ts, "u-1", entity.ActionLogin, "")
	f.recordAt(t, ts, "u-1", entity.ActionCreateUser, "")

	page, err := f.engine.Query(context.Background(), inbound.ActivityQuery{ActionFilter: entity.ActionLogin})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)

	// the sentinel disables the filter
	page, err = f.engine.Query(context.Background(), inbound.ActivityQuery{ActionFilter: AllActions})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
}

func TestQueryDateWindowCoversWholeDays(t *testing.T) {
	f := newTrailFixture(t)
	f.addUser(t, "u-1", "Jane", "Doe", "jane@yardops.test")

	f.recordAt(t, time.Date(2026, 5, 1, 23, 59, 59, 0, time.UTC), "u-1", entity.ActionLogin, "late on the 1st")
	f.recordAt(t, time.Date(2026, 5, 2, 0, 0, 1, 0, time.UTC), "u-1", entity.ActionLogin, "early on the 2nd")
	f.recordAt(t, time.Date(2026, 5, 3, 8, 0, 0, 0, time.UTC), "u-1", entity.ActionLogin, "on the 3rd")

	from := time.Date(2026, 5, 2, 15, 30, 0, 0, time.UTC) // time-of-day ignored
	to := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

	page, err := f.engine.Query(context.Background(), inbound.ActivityQuery{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "early on the 2nd", page.Entries[0].Description)
}

func TestListActionsDistinctSortedWithSentinel(t *testing.T) {
	f := newTrailFixture(t)
	f.addUser(t, "u-1", "Jane", "Doe", "jane@yardops.test")
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f.recordAt(t, ts, "u-1", entity.ActionLogin, "")
	f.recordAt(t, ts, "u-1", entity.ActionCreateUser, "")
	f.recordAt(t, ts, "u-1", entity.ActionLogin, "")

	actions, err := f.engine.ListActions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{AllActions, entity.ActionCreateUser, entity.ActionLogin}, actions)
}
