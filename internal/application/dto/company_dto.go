package dto

import "time"

// CompanyResponse public view of a tenant.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RegNumber string    `json:"reg_number,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
