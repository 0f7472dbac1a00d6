package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Load statuses.
//
//	pending --assign--> assigned --start_transit--> in_transit --deliver--> delivered
//	{pending, assigned} --cancel--> cancelled
//
// delivered and cancelled are terminal; no transition leaves them.
const (
	LoadPending   = "pending"
	LoadAssigned  = "assigned"
	LoadInTransit = "in_transit"
	LoadDelivered = "delivered"
	LoadCancelled = "cancelled"
)

// ActiveLoadStatuses is the non-terminal set: a driver with a load in any of
// these states counts as committed.
var ActiveLoadStatuses = []string{LoadPending, LoadAssigned, LoadInTransit}

// LoadStatusActive reports whether s is in the active set.
func LoadStatusActive(s string) bool {
	for _, a := range ActiveLoadStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// LoadStatusTerminal reports whether s is terminal.
func LoadStatusTerminal(s string) bool {
	return s == LoadDelivered || s == LoadCancelled
}

// Load is the assignable unit of work. Never hard-deleted.
type Load struct {
	ID           string
	CompanyID    string
	CustomerID   string
	LoadNumber   string
	Status       string // see Load* constants
	Origin       string
	Destination  string
	Commodity    string
	WeightKG     decimal.Decimal
	VolumeM3     decimal.Decimal
	Rate         decimal.Decimal
	Currency     string
	DriverID     *string // currently assigned driver, nil when unassigned
	VehicleID    *string
	PickupDate   *time.Time
	DeliveryDate *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoadTracking is one audit entry per status change on a load.
type LoadTracking struct {
	ID        string
	LoadID    string
	CompanyID string
	Status    string
	Note      string
	ActorID   string
	CreatedAt time.Time
}
