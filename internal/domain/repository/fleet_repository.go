package repository

import (
	"time"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
)

// DriverRepository is the persistence port for Driver.
type DriverRepository interface {
	Create(driver *entity.Driver) error
	GetByID(companyID, id string) (*entity.Driver, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Driver, error)
	Update(driver *entity.Driver) error
	SetActive(companyID, id string, active bool) error
	Delete(companyID, id string) error
}

// VehicleRepository is the persistence port for Vehicle.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(companyID, id string) (*entity.Vehicle, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	UpdateStatus(companyID, id, status string) error
}

// AssignmentRepository is the persistence port for driver<->vehicle
// assignments (half-open intervals; released_at IS NULL means open).
type AssignmentRepository interface {
	Create(a *entity.VehicleAssignment) error
	GetOpenByDriver(companyID, driverID string) (*entity.VehicleAssignment, error)
	GetOpenByVehicle(companyID, vehicleID string) (*entity.VehicleAssignment, error)
	Release(companyID, id string, at time.Time) error
	ListByDriver(companyID, driverID string, limit, offset int) ([]*entity.VehicleAssignment, error)
}
