package entity

import "time"

// FleetApplication statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// FleetApplication is a fleet-onboarding request. It is processed at most
// once: approving creates a Company and links it here; a second attempt must
// fail as already processed.
type FleetApplication struct {
	ID           string
	CompanyName  string
	RegNumber    string
	ContactName  string
	ContactEmail string
	ContactPhone string
	FleetSize    int
	Status       string // see Application* constants
	CompanyID    *string
	ProcessedBy  *string
	ProcessedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
