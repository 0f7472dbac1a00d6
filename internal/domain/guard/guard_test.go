package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/guard"
)

func strptr(s string) *string { return &s }

func TestCanDeactivateDriver_BlockedByActiveLoads(t *testing.T) {
	err := guard.CanDeactivateDriver(2)
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "Cannot deactivate driver with active loads")

	assert.NoError(t, guard.CanDeactivateDriver(0))
}

func TestCanDeleteDriver_BlockedByActiveLoads(t *testing.T) {
	err := guard.CanDeleteDriver(1)
	require.Error(t, err)
	assert.EqualError(t, err, "Cannot delete driver with active loads")

	assert.NoError(t, guard.CanDeleteDriver(0))
}

func TestCanAssignLoad(t *testing.T) {
	activeDriver := &entity.Driver{ID: "d1", IsActive: true}
	load := &entity.Load{ID: "l1", Status: entity.LoadPending}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, guard.CanAssignLoad(load, activeDriver, 0))
	})

	t.Run("inactive driver", func(t *testing.T) {
		err := guard.CanAssignLoad(load, &entity.Driver{ID: "d2", IsActive: false}, 0)
		require.Error(t, err)
		assert.EqualError(t, err, "Driver is not active")
	})

	t.Run("driver already committed", func(t *testing.T) {
		err := guard.CanAssignLoad(load, activeDriver, 1)
		require.Error(t, err)
		assert.EqualError(t, err, "Driver is already assigned to an active load")
	})

	t.Run("terminal load", func(t *testing.T) {
		err := guard.CanAssignLoad(&entity.Load{Status: entity.LoadDelivered}, activeDriver, 0)
		require.Error(t, err)
		assert.True(t, domain.IsGuard(err))
	})
}

func TestCanUnassignLoad(t *testing.T) {
	t.Run("in transit is blocked", func(t *testing.T) {
		load := &entity.Load{Status: entity.LoadInTransit, DriverID: strptr("d1")}
		err := guard.CanUnassignLoad(load)
		require.Error(t, err)
		assert.EqualError(t, err, "Cannot unassign driver from load in transit")
	})

	t.Run("no driver assigned", func(t *testing.T) {
		load := &entity.Load{Status: entity.LoadAssigned}
		err := guard.CanUnassignLoad(load)
		require.Error(t, err)
		assert.EqualError(t, err, "No driver assigned to this load")
	})

	t.Run("assigned load with driver", func(t *testing.T) {
		load := &entity.Load{Status: entity.LoadAssigned, DriverID: strptr("d1")}
		assert.NoError(t, guard.CanUnassignLoad(load))
	})
}

func TestCanTransitionLoad(t *testing.T) {
	allowed := [][2]string{
		{entity.LoadPending, entity.LoadAssigned},
		{entity.LoadAssigned, entity.LoadInTransit},
		{entity.LoadInTransit, entity.LoadDelivered},
		{entity.LoadPending, entity.LoadCancelled},
		{entity.LoadAssigned, entity.LoadCancelled},
	}
	for _, tc := range allowed {
		assert.NoError(t, guard.CanTransitionLoad(tc[0], tc[1]), "%s -> %s", tc[0], tc[1])
	}

	blocked := [][2]string{
		{entity.LoadPending, entity.LoadInTransit},
		{entity.LoadPending, entity.LoadDelivered},
		{entity.LoadInTransit, entity.LoadCancelled},
		{entity.LoadDelivered, entity.LoadPending},
		{entity.LoadDelivered, entity.LoadInTransit},
		{entity.LoadCancelled, entity.LoadPending},
		{entity.LoadCancelled, entity.LoadAssigned},
	}
	for _, tc := range blocked {
		err := guard.CanTransitionLoad(tc[0], tc[1])
		require.Error(t, err, "%s -> %s must be rejected", tc[0], tc[1])
		assert.True(t, domain.IsGuard(err))
	}

	// Same-status writes are a no-op, not a violation.
	assert.NoError(t, guard.CanTransitionLoad(entity.LoadAssigned, entity.LoadAssigned))
}

func TestCanConvertQuote(t *testing.T) {
	t.Run("converted status", func(t *testing.T) {
		err := guard.CanConvertQuote(&entity.Quote{Status: entity.QuoteConverted})
		require.Error(t, err)
		assert.EqualError(t, err, "Quote has already been converted to a load")
	})

	t.Run("linked load wins even with stale status", func(t *testing.T) {
		err := guard.CanConvertQuote(&entity.Quote{Status: entity.QuoteAccepted, ConvertedLoadID: strptr("l1")})
		require.Error(t, err)
	})

	t.Run("rejected quote", func(t *testing.T) {
		err := guard.CanConvertQuote(&entity.Quote{Status: entity.QuoteRejected})
		require.Error(t, err)
	})

	t.Run("accepted quote converts", func(t *testing.T) {
		assert.NoError(t, guard.CanConvertQuote(&entity.Quote{Status: entity.QuoteAccepted}))
	})
}

func TestCanProcessApplication(t *testing.T) {
	assert.NoError(t, guard.CanProcessApplication(&entity.FleetApplication{Status: entity.ApplicationPending}))

	for _, status := range []string{entity.ApplicationApproved, entity.ApplicationRejected} {
		err := guard.CanProcessApplication(&entity.FleetApplication{Status: status})
		assert.ErrorIs(t, err, domain.ErrNotFound, "status %s", status)
	}
	assert.ErrorIs(t, guard.CanProcessApplication(nil), domain.ErrNotFound)
}

func TestCanReleaseAssignment(t *testing.T) {
	assert.NoError(t, guard.CanReleaseAssignment(&entity.VehicleAssignment{ID: "a1"}))

	err := guard.CanReleaseAssignment(nil)
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
}
