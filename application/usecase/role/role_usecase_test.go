package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yardops/yardops/application/port/inbound"
	"github.com/yardops/yardops/application/usecase/audit"
	"github.com/yardops/yardops/domain/entity"
	"github.com/yardops/yardops/infrastructure/adapter/memory"
	"github.com/yardops/yardops/infrastructure/service/logger"
)

type roleFixture struct {
	uc    inbound.RoleUseCase
	roles *memory.RoleRepository
	users *memory.UserRepository
	trail *audit.QueryEngine
}

func newRoleFixture() *roleFixture {
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository(users)
	audits := memory.NewAuditRepository(users)
	log := logger.New(logger.Config{Level: "error", Format: "text", ServiceName: "test"})
	return &roleFixture{
		uc:    NewRoleUseCase(roles, audit.NewRecorder(audits), log),
		roles: roles,
		users: users,
		trail: audit.NewQueryEngine(audits),
	}
}

func (f *roleFixture) lastEntry(t *testing.T) entity.AuditEntryView {
	t.Helper()
	page, err := f.trail.Query(context.Background(), inbound.ActivityQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Entries)
	return page.Entries[0]
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	f := newRoleFixture()
	actor := inbound.Actor{ID: "admin-1"}

	created, err := f.uc.CreateRole(context.Background(), actor, inbound.CreateRoleRequest{Name: "Dispatcher"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entity.StatusActive, created.Status)

	// name comparison is case-insensitive
	_, err = f.uc.CreateRole(context.Background(), actor, inbound.CreateRoleRequest{Name: "dispatcher"})
	assert.ErrorIs(t, err, ErrRoleNameExists)

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionCreateRole, entry.Action)
	assert.Contains(t, entry.Payload, `"RoleName":"Dispatcher"`)
}

func TestUpdateRoleRecordsChangedFields(t *testing.T) {
	f := newRoleFixture()
	actor := inbound.Actor{ID: "admin-1"}

	created, err := f.uc.CreateRole(context.Background(), actor, inbound.CreateRoleRequest{
		Name:        "Dispatcher",
		Description: "Schedules moves",
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateRole(context.Background(), actor, inbound.UpdateRoleRequest{
		ID:          created.ID,
		Name:        "Dispatcher",
		Description: "Schedules yard moves",
		Status:      entity.StatusActive,
	})
	require.NoError(t, err)

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionEditRole, entry.Action)
	assert.Contains(t, entry.Payload, "Description: 'Schedules moves' → 'Schedules yard moves'")
	assert.NotContains(t, entry.Payload, "Name: ")
}

func TestDeleteRoleGuards(t *testing.T) {
	f := newRoleFixture()
	actor := inbound.Actor{ID: "admin-1"}

	system := &entity.Role{ID: "r-system", Name: "Admin", IsSystemRole: true, Status: entity.StatusActive}
	require.NoError(t, f.roles.Create(context.Background(), system))

	err := f.uc.DeleteRole(context.Background(), actor, "r-system")
	assert.ErrorIs(t, err, ErrSystemRole)

	inUse, err := f.uc.CreateRole(context.Background(), actor, inbound.CreateRoleRequest{Name: "Dispatcher"})
	require.NoError(t, err)
	holder := entity.NewUser("u-1", "d@yardops.test", "hash")
	holder.Role = "Dispatcher"
	require.NoError(t, f.users.Create(context.Background(), holder))

	err = f.uc.DeleteRole(context.Background(), actor, inUse.ID)
	assert.ErrorIs(t, err, ErrRoleInUse)

	require.NoError(t, f.users.Delete(context.Background(), "u-1"))
	require.NoError(t, f.uc.DeleteRole(context.Background(), actor, inUse.ID))

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionDeleteRole, entry.Action)
	assert.Contains(t, entry.Payload, `"DeletedRoleName":"Dispatcher"`)
}

func TestListRolesSortedByName(t *testing.T) {
	f := newRoleFixture()
	actor := inbound.Actor{ID: "admin-1"}
	for _, name := range []string{"Viewer", "Admin", "Dispatcher"} {
		_, err := f.uc.CreateRole(context.Background(), actor, inbound.CreateRoleRequest{Name: name})
		require.NoError(t, err)
	}

	roles, err := f.uc.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, "Admin", roles[0].Name)
	assert.Equal(t, "Dispatcher", roles[1].Name)
	assert.Equal(t, "Viewer", roles[2].Name)
}
