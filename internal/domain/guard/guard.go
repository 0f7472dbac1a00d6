// Package guard holds the state-transition rules for assignment and status
// changes. Every function is a pure predicate over already-fetched state: the
// caller gathers the rows, the guard decides, the repository mutates. Guard
// rejections carry the exact reason surfaced to the caller.
package guard

import (
	"fmt"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
)

// CanDeactivateDriver rejects while the driver still has loads in the active
// set {pending, assigned, in_transit}.
func CanDeactivateDriver(activeLoads int) error {
	if activeLoads > 0 {
		return domain.NewGuardError("Cannot deactivate driver with active loads")
	}
	return nil
}

// CanDeleteDriver mirrors CanDeactivateDriver for deletion.
func CanDeleteDriver(activeLoads int) error {
	if activeLoads > 0 {
		return domain.NewGuardError("Cannot delete driver with active loads")
	}
	return nil
}

// CanAssignLoad checks a driver+vehicle assignment onto a load:
// the driver must be active and not committed to any other active load, and
// the load must not be terminal. Assigning an already-assigned or in-transit
// load is allowed and must not downgrade its status.
func CanAssignLoad(load *entity.Load, driver *entity.Driver, otherActiveLoads int) error {
	if entity.LoadStatusTerminal(load.Status) {
		return domain.NewGuardError(fmt.Sprintf("Cannot assign driver to a %s load", load.Status))
	}
	if !driver.IsActive {
		return domain.NewGuardError("Driver is not active")
	}
	if otherActiveLoads > 0 {
		return domain.NewGuardError("Driver is already assigned to an active load")
	}
	return nil
}

// CanUnassignLoad rejects unassignment while in transit or when no driver is
// assigned.
func CanUnassignLoad(load *entity.Load) error {
	if load.Status == entity.LoadInTransit {
		return domain.NewGuardError("Cannot unassign driver from load in transit")
	}
	if load.DriverID == nil || *load.DriverID == "" {
		return domain.NewGuardError("No driver assigned to this load")
	}
	return nil
}

// loadTransitions enumerates every legal status edge. Terminal states have no
// outgoing edges.
var loadTransitions = map[string][]string{
	entity.LoadPending:   {entity.LoadAssigned, entity.LoadCancelled},
	entity.LoadAssigned:  {entity.LoadInTransit, entity.LoadCancelled},
	entity.LoadInTransit: {entity.LoadDelivered},
}

// CanTransitionLoad validates a requested status change.
func CanTransitionLoad(from, to string) error {
	if from == to {
		return nil
	}
	for _, next := range loadTransitions[from] {
		if next == to {
			return nil
		}
	}
	return domain.NewGuardError(fmt.Sprintf("Cannot change load status from %s to %s", from, to))
}

// CanConvertQuote allows conversion only for quotes never converted before.
func CanConvertQuote(q *entity.Quote) error {
	if q.Status == entity.QuoteConverted || (q.ConvertedLoadID != nil && *q.ConvertedLoadID != "") {
		return domain.NewGuardError("Quote has already been converted to a load")
	}
	if q.Status == entity.QuoteRejected || q.Status == entity.QuoteExpired {
		return domain.NewGuardError(fmt.Sprintf("Cannot convert a %s quote", q.Status))
	}
	return nil
}

// CanProcessApplication allows approve/reject only while pending. A non-pending
// application is reported as absent, matching the processed-once contract.
func CanProcessApplication(app *entity.FleetApplication) error {
	if app == nil || app.Status != entity.ApplicationPending {
		return domain.ErrNotFound
	}
	return nil
}

// CanReleaseAssignment rejects releasing when there is no open assignment.
func CanReleaseAssignment(open *entity.VehicleAssignment) error {
	if open == nil {
		return domain.NewGuardError("Driver is already unassigned from vehicle")
	}
	return nil
}
