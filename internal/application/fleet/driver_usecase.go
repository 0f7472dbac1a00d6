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

// DriverUseCase driver CRUD plus the deactivation/deletion guards. A driver
// committed to an active load cannot disappear from the system.
type DriverUseCase struct {
	drivers repository.DriverRepository
	loads   repository.LoadRepository
}

// NewDriverUseCase builds the usecase.
func NewDriverUseCase(drivers repository.DriverRepository, loads repository.LoadRepository) *DriverUseCase {
	return &DriverUseCase{drivers: drivers, loads: loads}
}

// Create registers a driver, active by default.
func (uc *DriverUseCase) Create(companyID string, in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	driver := &entity.Driver{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		LicenseNumber: in.LicenseNumber,
		LicenseClass:  in.LicenseClass,
		LicenseExpiry: in.LicenseExpiry,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.drivers.Create(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// GetByID fetches one driver.
func (uc *DriverUseCase) GetByID(companyID, id string) (*dto.DriverResponse, error) {
	driver, err := uc.drivers.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	return toDriverResponse(driver), nil
}

// List pages the company's drivers.
func (uc *DriverUseCase) List(companyID string, page dto.PageRequest) ([]*dto.DriverResponse, error) {
	page.DefaultPage()
	list, err := uc.drivers.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DriverResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDriverResponse(d))
	}
	return out, nil
}

// Update edits driver identity and license fields.
func (uc *DriverUseCase) Update(companyID, id string, in dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	driver, err := uc.drivers.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	driver.Name = in.Name
	driver.Email = in.Email
	driver.Phone = in.Phone
	driver.LicenseNumber = in.LicenseNumber
	driver.LicenseClass = in.LicenseClass
	driver.LicenseExpiry = in.LicenseExpiry
	driver.UpdatedAt = time.Now()
	if err := uc.drivers.Update(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// SetActive toggles the active flag. Deactivation is guarded by the driver's
// active-load count; reactivation is always allowed.
func (uc *DriverUseCase) SetActive(companyID, id string, active bool) (*dto.DriverResponse, error) {
	driver, err := uc.drivers.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	if !active {
		n, err := uc.loads.CountActiveByDriver(companyID, id, "")
		if err != nil {
			return nil, err
		}
		if err := guard.CanDeactivateDriver(n); err != nil {
			return nil, err
		}
	}
	if err := uc.drivers.SetActive(companyID, id, active); err != nil {
		return nil, err
	}
	driver.IsActive = active
	return toDriverResponse(driver), nil
}

// Delete removes a driver, guarded the same way as deactivation.
func (uc *DriverUseCase) Delete(companyID, id string) error {
	driver, err := uc.drivers.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if driver == nil {
		return domain.ErrNotFound
	}
	n, err := uc.loads.CountActiveByDriver(companyID, id, "")
	if err != nil {
		return err
	}
	if err := guard.CanDeleteDriver(n); err != nil {
		return err
	}
	return uc.drivers.Delete(companyID, id)
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	return &dto.DriverResponse{
		ID:            d.ID,
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		LicenseNumber: d.LicenseNumber,
		LicenseClass:  d.LicenseClass,
		LicenseExpiry: d.LicenseExpiry,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
	}
}
