package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implements DriverRepository (usable with pool or tx).
type DriverRepo struct {
	q Querier
}

// NewDriverRepository builds the adapter. Pass a pool or tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

const driverColumns = `id, company_id, user_id, name, email, phone, license_number, license_class, license_expiry, is_active, created_at, updated_at`

// Create persists a new driver.
func (r *DriverRepo) Create(driver *entity.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.CompanyID, nullable(driver.UserID), driver.Name, driver.Email, driver.Phone,
		driver.LicenseNumber, driver.LicenseClass, driver.LicenseExpiry, driver.IsActive,
		driver.CreatedAt, driver.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// GetByID fetches a driver within the company.
func (r *DriverRepo) GetByID(companyID, id string) (*entity.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE company_id = $1 AND id = $2`
	var d entity.Driver
	var userID *string
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&d.ID, &d.CompanyID, &userID, &d.Name, &d.Email, &d.Phone,
		&d.LicenseNumber, &d.LicenseClass, &d.LicenseExpiry, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	if userID != nil {
		d.UserID = *userID
	}
	return &d, nil
}

// ListByCompany pages the company's drivers.
func (r *DriverRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		var userID *string
		if err := rows.Scan(&d.ID, &d.CompanyID, &userID, &d.Name, &d.Email, &d.Phone,
			&d.LicenseNumber, &d.LicenseClass, &d.LicenseExpiry, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		if userID != nil {
			d.UserID = *userID
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update rewrites the mutable fields within the company.
func (r *DriverRepo) Update(driver *entity.Driver) error {
	query := `
		UPDATE drivers SET name = $3, email = $4, phone = $5, license_number = $6, license_class = $7,
		                   license_expiry = $8, updated_at = $9
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		driver.CompanyID, driver.ID, driver.Name, driver.Email, driver.Phone,
		driver.LicenseNumber, driver.LicenseClass, driver.LicenseExpiry, driver.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// SetActive flips the active flag within the company.
func (r *DriverRepo) SetActive(companyID, id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE drivers SET is_active = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, active)
	if err != nil {
		return fmt.Errorf("set driver active: %w", err)
	}
	return nil
}

// Delete removes a driver within the company.
func (r *DriverRepo) Delete(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM drivers WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}
