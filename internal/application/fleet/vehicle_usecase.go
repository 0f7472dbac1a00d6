package fleet

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/validation"
)

// VehicleUseCase vehicle CRUD and status changes.
type VehicleUseCase struct {
	vehicles repository.VehicleRepository
}

// NewVehicleUseCase builds the usecase.
func NewVehicleUseCase(vehicles repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{vehicles: vehicles}
}

// Create registers a vehicle as active.
func (uc *VehicleUseCase) Create(companyID string, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Registration:    in.Registration,
		Make:            in.Make,
		Model:           in.Model,
		Year:            in.Year,
		Status:          entity.VehicleActive,
		LicenseExpiry:   in.LicenseExpiry,
		InsuranceExpiry: in.InsuranceExpiry,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.vehicles.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// GetByID fetches one vehicle.
func (uc *VehicleUseCase) GetByID(companyID, id string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.vehicles.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	return toVehicleResponse(vehicle), nil
}

// List pages the company's vehicles.
func (uc *VehicleUseCase) List(companyID string, page dto.PageRequest) ([]*dto.VehicleResponse, error) {
	page.DefaultPage()
	list, err := uc.vehicles.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

// UpdateStatus moves the vehicle between active/maintenance/out_of_service/
// retired. Non-destructive: the row always stays.
func (uc *VehicleUseCase) UpdateStatus(companyID, id string, in dto.UpdateVehicleStatusRequest) (*dto.VehicleResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	vehicle, err := uc.vehicles.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.vehicles.UpdateStatus(companyID, id, in.Status); err != nil {
		return nil, err
	}
	vehicle.Status = in.Status
	return toVehicleResponse(vehicle), nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:              v.ID,
		CompanyID:       v.CompanyID,
		Registration:    v.Registration,
		Make:            v.Make,
		Model:           v.Model,
		Year:            v.Year,
		Status:          v.Status,
		LicenseExpiry:   v.LicenseExpiry,
		InsuranceExpiry: v.InsuranceExpiry,
		CreatedAt:       v.CreatedAt,
	}
}
