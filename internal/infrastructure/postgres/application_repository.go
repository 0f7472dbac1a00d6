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

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo implements ApplicationRepository (usable with pool or tx).
// Applications precede the company, so no tenant scoping here.
type ApplicationRepo struct {
	q Querier
}

// NewApplicationRepository builds the adapter. Pass a pool or tx (Querier).
func NewApplicationRepository(q Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

const applicationColumns = `id, company_name, reg_number, contact_name, contact_email, contact_phone,
	fleet_size, status, company_id, processed_by, processed_at, created_at, updated_at`

// Create persists a new application.
func (r *ApplicationRepo) Create(app *entity.FleetApplication) error {
	query := `
		INSERT INTO fleet_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		app.ID, app.CompanyName, app.RegNumber, app.ContactName, app.ContactEmail, app.ContactPhone,
		app.FleetSize, app.Status, app.CompanyID, app.ProcessedBy, app.ProcessedAt,
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID fetches one application.
func (r *ApplicationRepo) GetByID(id string) (*entity.FleetApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM fleet_applications WHERE id = $1`
	var a entity.FleetApplication
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyName, &a.RegNumber, &a.ContactName, &a.ContactEmail, &a.ContactPhone,
		&a.FleetSize, &a.Status, &a.CompanyID, &a.ProcessedBy, &a.ProcessedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &a, nil
}

// List pages applications, newest first; status filters when non-empty.
func (r *ApplicationRepo) List(status string, limit, offset int) ([]*entity.FleetApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM fleet_applications
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	var list []*entity.FleetApplication
	for rows.Next() {
		var a entity.FleetApplication
		if err := rows.Scan(
			&a.ID, &a.CompanyName, &a.RegNumber, &a.ContactName, &a.ContactEmail, &a.ContactPhone,
			&a.FleetSize, &a.Status, &a.CompanyID, &a.ProcessedBy, &a.ProcessedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkProcessed flips a pending application to its final status in one
// conditional statement. 0 rows means absent or already processed.
func (r *ApplicationRepo) MarkProcessed(id, status string, companyID *string, processedBy string) (int64, error) {
	query := `
		UPDATE fleet_applications
		SET status = $2, company_id = $3, processed_by = $4, processed_at = now(), updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(context.Background(), query, id, status, companyID, processedBy)
	if err != nil {
		return 0, fmt.Errorf("mark application processed: %w", err)
	}
	return tag.RowsAffected(), nil
}
