package dto

import "time"

// CreateDriverRequest new driver.
type CreateDriverRequest struct {
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Phone         string     `json:"phone"`
	LicenseNumber string     `json:"license_number" validate:"required"`
	LicenseClass  string     `json:"license_class"`
	LicenseExpiry *time.Time `json:"license_expiry"`
}

// UpdateDriverRequest mirrors CreateDriverRequest for edits.
type UpdateDriverRequest = CreateDriverRequest

// DriverResponse public view of a driver.
type DriverResponse struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"company_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	LicenseNumber string     `json:"license_number"`
	LicenseClass  string     `json:"license_class,omitempty"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateVehicleRequest new vehicle.
type CreateVehicleRequest struct {
	Registration    string     `json:"registration" validate:"required"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Year            int        `json:"year" validate:"omitempty,gte=1950"`
	LicenseExpiry   *time.Time `json:"license_expiry"`
	InsuranceExpiry *time.Time `json:"insurance_expiry"`
}

// UpdateVehicleStatusRequest status change.
type UpdateVehicleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active maintenance out_of_service retired"`
}

// VehicleResponse public view of a vehicle.
type VehicleResponse struct {
	ID              string     `json:"id"`
	CompanyID       string     `json:"company_id"`
	Registration    string     `json:"registration"`
	Make            string     `json:"make,omitempty"`
	Model           string     `json:"model,omitempty"`
	Year            int        `json:"year,omitempty"`
	Status          string     `json:"status"`
	LicenseExpiry   *time.Time `json:"license_expiry,omitempty"`
	InsuranceExpiry *time.Time `json:"insurance_expiry,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AssignVehicleRequest opens a driver<->vehicle assignment.
type AssignVehicleRequest struct {
	DriverID  string `json:"driver_id" validate:"required,uuid4"`
	VehicleID string `json:"vehicle_id" validate:"required,uuid4"`
}

// AssignmentResponse one assignment interval.
type AssignmentResponse struct {
	ID         string     `json:"id"`
	DriverID   string     `json:"driver_id"`
	VehicleID  string     `json:"vehicle_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}
