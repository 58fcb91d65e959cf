package carrier

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

func TestNextCode(t *testing.T) {
	assert.Equal(t, "CAR-001", NextCode(0))
	assert.Equal(t, "CAR-013", NextCode(12))
	assert.Equal(t, "CAR-100", NextCode(99))
	// padding widens past three digits instead of wrapping
	assert.Equal(t, "CAR-1000", NextCode(999))
}

type carrierFixture struct {
	uc     inbound.CarrierUseCase
	repo   *memory.CarrierRepository
	audits *memory.AuditRepository
	trail  *audit.QueryEngine
}

func newCarrierFixture() *carrierFixture {
	repo := memory.NewCarrierRepository()
	audits := memory.NewAuditRepository(memory.NewUserRepository())
	log := logger.New(logger.Config{Level: "error", Format: "text", ServiceName: "test"})
	return &carrierFixture{
		uc:     NewCarrierUseCase(repo, audit.NewRecorder(audits), log),
		repo:   repo,
		audits: audits,
		trail:  audit.NewQueryEngine(audits),
	}
}

func (f *carrierFixture) lastEntry(t *testing.T) entity.AuditEntryView {
	t.Helper()
	page, err := f.trail.Query(context.Background(), inbound.ActivityQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Entries)
	return page.Entries[0]
}

func TestCreateCarrierAssignsSequentialCodes(t *testing.T) {
	f := newCarrierFixture()
	actor := inbound.Actor{ID: "admin-1"}

	first, err := f.uc.CreateCarrier(context.Background(), actor, inbound.CreateCarrierRequest{
		CompanyName: "Acme Freight",
	})
	require.NoError(t, err)
	assert.Equal(t, "CAR-001", first.CarrierCode)
	assert.Equal(t, entity.StatusActive, first.Status)

	second, err := f.uc.CreateCarrier(context.Background(), actor, inbound.CreateCarrierRequest{
		CompanyName: "Borealis Transport",
	})
	require.NoError(t, err)
	assert.Equal(t, "CAR-002", second.CarrierCode)

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionCreateCarrier, entry.Action)
	assert.Contains(t, entry.Payload, `"CarrierCode":"CAR-002"`)
}

func TestUpdateCarrierRecordsChangedFields(t *testing.T) {
	f := newCarrierFixture()
	actor := inbound.Actor{ID: "admin-1"}

	created, err := f.uc.CreateCarrier(context.Background(), actor, inbound.CreateCarrierRequest{
		CompanyName: "Acme Freight",
		Phone:       "555-0100",
		Status:      entity.StatusActive,
	})
	require.NoError(t, err)

	updated, err := f.uc.UpdateCarrier(context.Background(), actor, inbound.UpdateCarrierRequest{
		ID:          created.ID,
		CompanyName: "Acme Freight",
		Phone:       "555-0199",
		Status:      entity.StatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionEditCarrier, entry.Action)
	assert.Contains(t, entry.Payload, "Phone: '555-0100' → '555-0199'")
	assert.Contains(t, entry.Payload, "Status: 'Active' → 'Inactive'")
	assert.NotContains(t, entry.Payload, "CompanyName: ")
}

func TestDeleteCarrierKeepsDisplayFieldsInTrail(t *testing.T) {
	f := newCarrierFixture()
	actor := inbound.Actor{ID: "admin-1"}

	created, err := f.uc.CreateCarrier(context.Background(), actor, inbound.CreateCarrierRequest{
		CompanyName: "Acme Freight",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteCarrier(context.Background(), actor, created.ID))

	_, err = f.uc.GetCarrier(context.Background(), created.ID)
	assert.Error(t, err)

	entry := f.lastEntry(t)
	assert.Equal(t, entity.ActionDeleteCarrier, entry.Action)
	assert.Contains(t, entry.Payload, `"DeletedCarrierCode":"CAR-001"`)
	assert.Contains(t, entry.Payload, `"DeletedCompanyName":"Acme Freight"`)
}

func TestListCarriersClampsPage(t *testing.T) {
	f := newCarrierFixture()
	actor := inbound.Actor{ID: "admin-1"}
	for i := 0; i < 5; i++ {
		_, err := f.uc.CreateCarrier(context.Background(), actor, inbound.CreateCarrierRequest{
			CompanyName: "Carrier",
		})
		require.NoError(t, err)
	}

	page, err := f.uc.ListCarriers(context.Background(), inbound.ListCarriersRequest{Page: 99, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Carriers, 1)

	empty, err := f.uc.ListCarriers(context.Background(), inbound.ListCarriersRequest{Search: "no such"})
	require.NoError(t, err)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, 1, empty.Page)
	assert.Empty(t, empty.Carriers)
}
