package entity

import "time"

// Vehicle statuses.
const (
	VehicleActive       = "active"
	VehicleMaintenance  = "maintenance"
	VehicleOutOfService = "out_of_service"
	VehicleRetired      = "retired"
)

// Vehicle carries registration and compliance dates. At most one driver holds
// an open assignment on a vehicle at any instant.
type Vehicle struct {
	ID              string
	CompanyID       string
	Registration    string
	Make            string
	Model           string
	Year            int
	Status          string // see Vehicle* constants
	LicenseExpiry   *time.Time
	InsuranceExpiry *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VehicleAssignment is a driver<->vehicle link. Assignments form half-open
// intervals: ReleasedAt == nil means the assignment is still open, and there
// is at most one open row per driver and per vehicle.
type VehicleAssignment struct {
	ID         string
	CompanyID  string
	DriverID   string
	VehicleID  string
	AssignedAt time.Time
	ReleasedAt *time.Time
	CreatedAt  time.Time
}
