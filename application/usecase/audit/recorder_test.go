package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/domain/payload"
	"github.com/yardops/yardops/infrastructure/adapter/memory"
)

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *entity.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepository) Count(ctx context.Context, filter outbound.AuditFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockAuditRepository) List(ctx context.Context, filter outbound.AuditFilter, offset, limit int) ([]entity.AuditEntryView, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AuditEntryView), args.Error(1)
}

func (m *mockAuditRepository) DistinctActions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestRecordPersistsOneEntry(t *testing.T) {
	repo := new(mockAuditRepository)
	recorder := NewRecorder(repo)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("CET", 3600))
	recorder.now = func() time.Time { return fixed }

	var captured *entity.AuditEntry
	repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.AuditEntry")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*entity.AuditEntry)
		}).
		Return(nil)

	extra := payload.Object(payload.Field("NewRole", payload.String("Admin")))
	err := recorder.Record(context.Background(), inbound.Actor{ID: "u-1"}, entity.ActionCreateUser, "Created user x@y.z", &extra)

	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Append", 1)
	require.NotNil(t, captured)
	assert.Equal(t, "u-1", captured.ActorID)
	assert.Equal(t, entity.ActionCreateUser, captured.Action)
	assert.Equal(t, "Created user x@y.z", captured.Description)
	assert.Equal(t, `{"NewRole":"Admin"}`, captured.Payload)
	// timestamp is assigned by the recorder, in UTC
	assert.Equal(t, fixed.UTC(), captured.CreatedOn)
	assert.Equal(t, time.UTC, captured.CreatedOn.Location())
}

func TestRecordWithoutPayload(t *testing.T) {
	repo := new(mockAuditRepository)
	recorder := NewRecorder(repo)

	var captured *entity.AuditEntry
	repo.On("Append", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*entity.AuditEntry) }).
		Return(nil)

	require.NoError(t, recorder.Record(context.Background(), inbound.Actor{ID: "u-1"}, entity.ActionLogin, "", nil))
	assert.Empty(t, captured.Payload)
}

func TestRecordSkipsWhenNoActor(t *testing.T) {
	users := memory.NewUserRepository()
	repo := memory.NewAuditRepository(users)
	recorder := NewRecorder(repo)
	engine := NewQueryEngine(repo)

	err := recorder.Record(context.Background(), inbound.Actor{}, entity.ActionCreateUser, "should not be stored", nil)
	require.NoError(t, err)

	page, err := engine.Query(context.Background(), inbound.ActivityQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
}

func TestRecordSurfacesPersistenceFailure(t *testing.T) {
	repo := new(mockAuditRepository)
	recorder := NewRecorder(repo)
	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := recorder.Record(context.Background(), inbound.Actor{ID: "u-1"}, entity.ActionDeleteUser, "", nil)
	assert.ErrorContains(t, err, "connection refused")
}
