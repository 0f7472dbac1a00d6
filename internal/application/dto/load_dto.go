package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoadRequest new load. LoadNumber is optional; when empty a number is
// generated.
type CreateLoadRequest struct {
	CustomerID   string          `json:"customer_id" validate:"required,uuid4"`
	LoadNumber   string          `json:"load_number"`
	Origin       string          `json:"origin" validate:"required"`
	Destination  string          `json:"destination" validate:"required"`
	Commodity    string          `json:"commodity"`
	WeightKG     decimal.Decimal `json:"weight_kg"`
	VolumeM3     decimal.Decimal `json:"volume_m3"`
	Rate         decimal.Decimal `json:"rate"`
	Currency     string          `json:"currency" validate:"omitempty,currency_code"`
	PickupDate   *time.Time      `json:"pickup_date"`
	DeliveryDate *time.Time      `json:"delivery_date"`
}

// AssignLoadRequest driver+vehicle onto a load.
type AssignLoadRequest struct {
	DriverID  string `json:"driver_id" validate:"required,uuid4"`
	VehicleID string `json:"vehicle_id" validate:"required,uuid4"`
}

// UpdateLoadStatusRequest explicit status transition.
type UpdateLoadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending assigned in_transit delivered cancelled"`
	Note   string `json:"note"`
}

// LoadResponse public view of a load.
type LoadResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	CustomerID   string          `json:"customer_id"`
	LoadNumber   string          `json:"load_number"`
	Status       string          `json:"status"`
	Origin       string          `json:"origin"`
	Destination  string          `json:"destination"`
	Commodity    string          `json:"commodity,omitempty"`
	WeightKG     decimal.Decimal `json:"weight_kg"`
	VolumeM3     decimal.Decimal `json:"volume_m3"`
	Rate         decimal.Decimal `json:"rate"`
	Currency     string          `json:"currency"`
	DriverID     *string         `json:"driver_id,omitempty"`
	VehicleID    *string         `json:"vehicle_id,omitempty"`
	PickupDate   *time.Time      `json:"pickup_date,omitempty"`
	DeliveryDate *time.Time      `json:"delivery_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TrackingResponse one tracking entry.
type TrackingResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ActorID   string    `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}
