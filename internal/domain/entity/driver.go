package entity

import "time"

// Driver holds identity plus license fields. A driver cannot be deleted or
// deactivated while any of its loads is still active (see guard package).
type Driver struct {
	ID            string
	CompanyID     string
	UserID        string // optional link to a login profile
	Name          string
	Email         string
	Phone         string
	LicenseNumber string
	LicenseClass  string
	LicenseExpiry *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
