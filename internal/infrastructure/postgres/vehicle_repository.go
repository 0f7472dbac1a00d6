package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)
var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// VehicleRepo implements VehicleRepository (usable with pool or tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository builds the adapter. Pass a pool or tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, company_id, registration, make, model, year, status, license_expiry, insurance_expiry, created_at, updated_at`

// Create persists a new vehicle.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.CompanyID, vehicle.Registration, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.Status, vehicle.LicenseExpiry, vehicle.InsuranceExpiry, vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID fetches a vehicle within the company.
func (r *VehicleRepo) GetByID(companyID, id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE company_id = $1 AND id = $2`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&v.ID, &v.CompanyID, &v.Registration, &v.Make, &v.Model, &v.Year,
		&v.Status, &v.LicenseExpiry, &v.InsuranceExpiry, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// ListByCompany pages the company's vehicles.
func (r *VehicleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE company_id = $1 ORDER BY registration LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.Registration, &v.Make, &v.Model, &v.Year,
			&v.Status, &v.LicenseExpiry, &v.InsuranceExpiry, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update rewrites the mutable fields within the company.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET registration = $3, make = $4, model = $5, year = $6,
		                    license_expiry = $7, insurance_expiry = $8, updated_at = $9
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.CompanyID, vehicle.ID, vehicle.Registration, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.LicenseExpiry, vehicle.InsuranceExpiry, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// UpdateStatus flips the vehicle status within the company.
func (r *VehicleRepo) UpdateStatus(companyID, id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE vehicles SET status = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, status)
	if err != nil {
		return fmt.Errorf("update vehicle status: %w", err)
	}
	return nil
}

// AssignmentRepo implements AssignmentRepository. Open assignments are rows
// with released_at IS NULL; at most one per driver and per vehicle.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository builds the adapter.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, company_id, driver_id, vehicle_id, assigned_at, released_at, created_at`

// Create persists a new open assignment.
func (r *AssignmentRepo) Create(a *entity.VehicleAssignment) error {
	query := `
		INSERT INTO vehicle_assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, a.DriverID, a.VehicleID, a.AssignedAt, a.ReleasedAt, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetOpenByDriver fetches the driver's open assignment, nil when none.
func (r *AssignmentRepo) GetOpenByDriver(companyID, driverID string) (*entity.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM vehicle_assignments WHERE company_id = $1 AND driver_id = $2 AND released_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, driverID))
}

// GetOpenByVehicle fetches the vehicle's open assignment, nil when none.
func (r *AssignmentRepo) GetOpenByVehicle(companyID, vehicleID string) (*entity.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM vehicle_assignments WHERE company_id = $1 AND vehicle_id = $2 AND released_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, vehicleID))
}

// Release closes an open assignment.
func (r *AssignmentRepo) Release(companyID, id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE vehicle_assignments SET released_at = $3 WHERE company_id = $1 AND id = $2 AND released_at IS NULL`,
		companyID, id, at)
	if err != nil {
		return fmt.Errorf("release assignment: %w", err)
	}
	return nil
}

// ListByDriver pages the driver's assignment history, newest first.
func (r *AssignmentRepo) ListByDriver(companyID, driverID string, limit, offset int) ([]*entity.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM vehicle_assignments WHERE company_id = $1 AND driver_id = $2
		ORDER BY assigned_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.VehicleAssignment
	for rows.Next() {
		var a entity.VehicleAssignment
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.DriverID, &a.VehicleID, &a.AssignedAt, &a.ReleasedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AssignmentRepo) scanOne(row pgx.Row) (*entity.VehicleAssignment, error) {
	var a entity.VehicleAssignment
	err := row.Scan(&a.ID, &a.CompanyID, &a.DriverID, &a.VehicleID, &a.AssignedAt, &a.ReleasedAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}
