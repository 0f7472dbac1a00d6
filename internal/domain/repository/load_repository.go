package repository

import "github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"

// LoadRepository is the persistence port for Load and its tracking trail.
//
// AssignDriver and UnassignDriver are single-statement conditional updates:
// the WHERE clause re-checks the guard condition so that two concurrent
// requests cannot both pass a read-then-write check. They return the number
// of rows affected; 0 means the condition no longer held.
type LoadRepository interface {
	Create(load *entity.Load) error
	GetByID(companyID, id string) (*entity.Load, error)
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Load, error)
	Update(load *entity.Load) error

	// CountActiveByDriver counts loads in {pending, assigned, in_transit}
	// referencing the driver, excluding excludeLoadID when non-empty.
	CountActiveByDriver(companyID, driverID, excludeLoadID string) (int, error)

	// AssignDriver sets driver/vehicle and bumps pending -> assigned, only
	// while the driver holds no other active load.
	AssignDriver(companyID, loadID, driverID, vehicleID string) (int64, error)

	// UnassignDriver clears driver/vehicle, only while the load is not in
	// transit and a driver is set.
	UnassignDriver(companyID, loadID string) (int64, error)

	// UpdateStatus moves the load from one status to another in one statement;
	// 0 rows means the load left the expected status concurrently.
	UpdateStatus(companyID, loadID, from, to string) (int64, error)

	AppendTracking(t *entity.LoadTracking) error
	ListTracking(companyID, loadID string) ([]*entity.LoadTracking, error)
}
