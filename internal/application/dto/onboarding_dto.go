package dto

import "time"

// CreateApplicationRequest public fleet-onboarding submission.
type CreateApplicationRequest struct {
	CompanyName  string `json:"company_name" validate:"required"`
	RegNumber    string `json:"reg_number"`
	ContactName  string `json:"contact_name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone"`
	FleetSize    int    `json:"fleet_size" validate:"omitempty,gte=1"`
}

// ApplicationResponse public view of an application.
type ApplicationResponse struct {
	ID           string     `json:"id"`
	CompanyName  string     `json:"company_name"`
	RegNumber    string     `json:"reg_number,omitempty"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	FleetSize    int        `json:"fleet_size,omitempty"`
	Status       string     `json:"status"`
	CompanyID    *string    `json:"company_id,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
