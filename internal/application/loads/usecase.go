package loads

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/guard"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/validation"
)

// LoadUseCase load lifecycle: creation with number generation, driver/vehicle
// assignment, unassignment and status transitions with a tracking trail.
//
// Assignment is guarded twice: the usecase pre-checks to name the failing
// rule, and the repository re-checks the same condition inside a single
// conditional UPDATE so concurrent requests cannot both win.
type LoadUseCase struct {
	loads     repository.LoadRepository
	customers repository.CustomerRepository
	drivers   repository.DriverRepository
	vehicles  repository.VehicleRepository
	numbers   *numbering.Generator
}

// NewLoadUseCase builds the usecase.
func NewLoadUseCase(
	loads repository.LoadRepository,
	customers repository.CustomerRepository,
	drivers repository.DriverRepository,
	vehicles repository.VehicleRepository,
	numbers *numbering.Generator,
) *LoadUseCase {
	return &LoadUseCase{
		loads:     loads,
		customers: customers,
		drivers:   drivers,
		vehicles:  vehicles,
		numbers:   numbers,
	}
}

// Create registers a pending load. When no load_number is supplied one is
// generated from the sequence service (with the local fallback).
func (uc *LoadUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateLoadRequest) (*dto.LoadResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	fields := map[string]string{}
	if in.WeightKG.LessThan(decimal.Zero) {
		fields["weight_kg"] = "must not be negative"
	}
	if in.VolumeM3.LessThan(decimal.Zero) {
		fields["volume_m3"] = "must not be negative"
	}
	if in.Rate.LessThan(decimal.Zero) {
		fields["rate"] = "must not be negative"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}
	customer, err := uc.customers.GetByID(companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	number := in.LoadNumber
	if number == "" {
		number, err = uc.numbers.Next(ctx, numbering.TypeLoad, companyID, customer.Name)
		if err != nil {
			return nil, err
		}
	}
	currency := in.Currency
	if currency == "" {
		currency = customer.Currency
	}

	now := time.Now()
	load := &entity.Load{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   in.CustomerID,
		LoadNumber:   number,
		Status:       entity.LoadPending,
		Origin:       in.Origin,
		Destination:  in.Destination,
		Commodity:    in.Commodity,
		WeightKG:     in.WeightKG,
		VolumeM3:     in.VolumeM3,
		Rate:         in.Rate,
		Currency:     currency,
		PickupDate:   in.PickupDate,
		DeliveryDate: in.DeliveryDate,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.loads.Create(load); err != nil {
		return nil, err
	}
	uc.track(load, entity.LoadPending, "Load created", userID)
	return toLoadResponse(load), nil
}

// GetByID fetches one load.
func (uc *LoadUseCase) GetByID(companyID, id string) (*dto.LoadResponse, error) {
	load, err := uc.loads.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, domain.ErrNotFound
	}
	return toLoadResponse(load), nil
}

// List pages the company's loads, optionally filtered by status.
func (uc *LoadUseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.LoadResponse, error) {
	page.DefaultPage()
	list, err := uc.loads.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLoadResponse(l))
	}
	return out, nil
}

// Assign puts a driver+vehicle on the load. The driver must be active and not
// committed elsewhere; a pending load becomes assigned, a later status is
// never downgraded.
func (uc *LoadUseCase) Assign(companyID, loadID, userID string, in dto.AssignLoadRequest) (*dto.LoadResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	load, err := uc.loads.GetByID(companyID, loadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, domain.ErrNotFound
	}
	driver, err := uc.drivers.GetByID(companyID, in.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	vehicle, err := uc.vehicles.GetByID(companyID, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}

	otherActive, err := uc.loads.CountActiveByDriver(companyID, in.DriverID, loadID)
	if err != nil {
		return nil, err
	}
	if err := guard.CanAssignLoad(load, driver, otherActive); err != nil {
		return nil, err
	}

	rows, err := uc.loads.AssignDriver(companyID, loadID, in.DriverID, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// The conditional write lost a race: the driver picked up another
		// active load between the check and the update.
		return nil, domain.NewGuardError("Driver is already assigned to an active load")
	}

	load.DriverID = &in.DriverID
	load.VehicleID = &in.VehicleID
	if load.Status == entity.LoadPending {
		load.Status = entity.LoadAssigned
		uc.track(load, entity.LoadAssigned, "Driver assigned", userID)
	}
	return toLoadResponse(load), nil
}

// Unassign clears the driver/vehicle. Rejected while in transit or when no
// driver is set.
func (uc *LoadUseCase) Unassign(companyID, loadID, userID string) (*dto.LoadResponse, error) {
	load, err := uc.loads.GetByID(companyID, loadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, domain.ErrNotFound
	}
	if err := guard.CanUnassignLoad(load); err != nil {
		return nil, err
	}
	rows, err := uc.loads.UnassignDriver(companyID, loadID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrConflict
	}
	load.DriverID = nil
	load.VehicleID = nil
	uc.track(load, load.Status, "Driver unassigned", userID)
	return toLoadResponse(load), nil
}

// UpdateStatus applies an explicit transition (start_transit, deliver,
// cancel). Terminal states never change again.
func (uc *LoadUseCase) UpdateStatus(companyID, loadID, userID string, in dto.UpdateLoadStatusRequest) (*dto.LoadResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	load, err := uc.loads.GetByID(companyID, loadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, domain.ErrNotFound
	}
	if err := guard.CanTransitionLoad(load.Status, in.Status); err != nil {
		return nil, err
	}
	if load.Status == in.Status {
		return toLoadResponse(load), nil
	}
	rows, err := uc.loads.UpdateStatus(companyID, loadID, load.Status, in.Status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost a race with another transition; the caller can re-read and retry.
		return nil, domain.ErrConflict
	}
	load.Status = in.Status
	uc.track(load, in.Status, in.Note, userID)
	return toLoadResponse(load), nil
}

// Tracking lists the load's status trail.
func (uc *LoadUseCase) Tracking(companyID, loadID string) ([]*dto.TrackingResponse, error) {
	load, err := uc.loads.GetByID(companyID, loadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.loads.ListTracking(companyID, loadID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TrackingResponse, 0, len(list))
	for _, t := range list {
		out = append(out, &dto.TrackingResponse{
			ID:        t.ID,
			Status:    t.Status,
			Note:      t.Note,
			ActorID:   t.ActorID,
			CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}

// track appends a tracking entry. Best-effort: a failed audit write never
// fails the mutation it records.
func (uc *LoadUseCase) track(load *entity.Load, status, note, actorID string) {
	_ = uc.loads.AppendTracking(&entity.LoadTracking{
		ID:        uuid.New().String(),
		LoadID:    load.ID,
		CompanyID: load.CompanyID,
		Status:    status,
		Note:      note,
		ActorID:   actorID,
		CreatedAt: time.Now(),
	})
}

func toLoadResponse(l *entity.Load) *dto.LoadResponse {
	return &dto.LoadResponse{
		ID:           l.ID,
		CompanyID:    l.CompanyID,
		CustomerID:   l.CustomerID,
		LoadNumber:   l.LoadNumber,
		Status:       l.Status,
		Origin:       l.Origin,
		Destination:  l.Destination,
		Commodity:    l.Commodity,
		WeightKG:     l.WeightKG,
		VolumeM3:     l.VolumeM3,
		Rate:         l.Rate,
		Currency:     l.Currency,
		DriverID:     l.DriverID,
		VehicleID:    l.VehicleID,
		PickupDate:   l.PickupDate,
		DeliveryDate: l.DeliveryDate,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
