package fleet

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/guard"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/validation"
)

// AssignmentUseCase manages driver<->vehicle assignment intervals. Before a
// new assignment opens, any open interval for either side is released, so at
// most one open row exists per driver and per vehicle.
type AssignmentUseCase struct {
	assignments repository.AssignmentRepository
	drivers     repository.DriverRepository
	vehicles    repository.VehicleRepository
}

// NewAssignmentUseCase builds the usecase.
func NewAssignmentUseCase(
	assignments repository.AssignmentRepository,
	drivers repository.DriverRepository,
	vehicles repository.VehicleRepository,
) *AssignmentUseCase {
	return &AssignmentUseCase{assignments: assignments, drivers: drivers, vehicles: vehicles}
}

// Assign opens a new assignment for the pair, releasing prior open intervals
// on both sides first.
func (uc *AssignmentUseCase) Assign(companyID string, in dto.AssignVehicleRequest) (*dto.AssignmentResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	driver, err := uc.drivers.GetByID(companyID, in.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	if !driver.IsActive {
		return nil, domain.NewGuardError("Driver is not active")
	}
	vehicle, err := uc.vehicles.GetByID(companyID, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if vehicle.Status != entity.VehicleActive {
		return nil, domain.NewGuardError("Vehicle is not available for assignment")
	}

	now := time.Now()
	if open, err := uc.assignments.GetOpenByDriver(companyID, in.DriverID); err != nil {
		return nil, err
	} else if open != nil {
		if err := uc.assignments.Release(companyID, open.ID, now); err != nil {
			return nil, err
		}
	}
	if open, err := uc.assignments.GetOpenByVehicle(companyID, in.VehicleID); err != nil {
		return nil, err
	} else if open != nil {
		if err := uc.assignments.Release(companyID, open.ID, now); err != nil {
			return nil, err
		}
	}

	a := &entity.VehicleAssignment{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		DriverID:   in.DriverID,
		VehicleID:  in.VehicleID,
		AssignedAt: now,
		CreatedAt:  now,
	}
	if err := uc.assignments.Create(a); err != nil {
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

// Unassign releases the driver's open assignment. Releasing with nothing open
// is a guard error, not a silent no-op.
func (uc *AssignmentUseCase) Unassign(companyID, driverID string) error {
	open, err := uc.assignments.GetOpenByDriver(companyID, driverID)
	if err != nil {
		return err
	}
	if err := guard.CanReleaseAssignment(open); err != nil {
		return err
	}
	return uc.assignments.Release(companyID, open.ID, time.Now())
}

// History pages a driver's assignment intervals, newest first.
func (uc *AssignmentUseCase) History(companyID, driverID string, page dto.PageRequest) ([]*dto.AssignmentResponse, error) {
	page.DefaultPage()
	list, err := uc.assignments.ListByDriver(companyID, driverID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssignmentResponse(a))
	}
	return out, nil
}

func toAssignmentResponse(a *entity.VehicleAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:         a.ID,
		DriverID:   a.DriverID,
		VehicleID:  a.VehicleID,
		AssignedAt: a.AssignedAt,
		ReleasedAt: a.ReleasedAt,
	}
}
