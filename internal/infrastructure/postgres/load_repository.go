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

var _ repository.LoadRepository = (*LoadRepo)(nil)

// LoadRepo implements LoadRepository (usable with pool or tx).
//
// The assignment and status writes are single conditional UPDATEs: the WHERE
// clause re-checks the business condition so concurrent writers cannot both
// pass a read-then-write check. Callers inspect RowsAffected.
type LoadRepo struct {
	q Querier
}

// NewLoadRepository builds the adapter. Pass a pool or tx (Querier).
func NewLoadRepository(q Querier) *LoadRepo {
	return &LoadRepo{q: q}
}

const loadColumns = `id, company_id, customer_id, load_number, status, origin, destination, commodity,
	weight_kg, volume_m3, rate, currency, driver_id, vehicle_id, pickup_date, delivery_date,
	created_by, created_at, updated_at`

// Create persists a new load.
func (r *LoadRepo) Create(load *entity.Load) error {
	query := `
		INSERT INTO loads (` + loadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		load.ID, load.CompanyID, load.CustomerID, load.LoadNumber, load.Status,
		load.Origin, load.Destination, load.Commodity, load.WeightKG, load.VolumeM3,
		load.Rate, load.Currency, load.DriverID, load.VehicleID, load.PickupDate, load.DeliveryDate,
		load.CreatedBy, load.CreatedAt, load.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert load: %w", err)
	}
	return nil
}

// GetByID fetches a load within the company.
func (r *LoadRepo) GetByID(companyID, id string) (*entity.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// ListByCompany pages the company's loads, newest first; status filters when
// non-empty.
func (r *LoadRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list loads: %w", err)
	}
	defer rows.Close()
	var list []*entity.Load
	for rows.Next() {
		l, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Update rewrites the descriptive fields within the company. Status, driver
// and vehicle move only through the conditional writes below.
func (r *LoadRepo) Update(load *entity.Load) error {
	query := `
		UPDATE loads SET origin = $3, destination = $4, commodity = $5, weight_kg = $6, volume_m3 = $7,
		                 rate = $8, currency = $9, pickup_date = $10, delivery_date = $11, updated_at = $12
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		load.CompanyID, load.ID, load.Origin, load.Destination, load.Commodity,
		load.WeightKG, load.VolumeM3, load.Rate, load.Currency,
		load.PickupDate, load.DeliveryDate, load.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update load: %w", err)
	}
	return nil
}

// CountActiveByDriver counts the driver's loads in {pending, assigned,
// in_transit}, excluding excludeLoadID when non-empty.
func (r *LoadRepo) CountActiveByDriver(companyID, driverID, excludeLoadID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM loads
		WHERE company_id = $1 AND driver_id = $2
		  AND status = ANY($3)
		  AND ($4 = '' OR id <> $4)`
	var n int
	err := r.q.QueryRow(context.Background(), query, companyID, driverID, entity.ActiveLoadStatuses, excludeLoadID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active loads: %w", err)
	}
	return n, nil
}

// AssignDriver sets driver and vehicle and bumps pending to assigned, only
// while the load is not terminal and the driver holds no other active load.
func (r *LoadRepo) AssignDriver(companyID, loadID, driverID, vehicleID string) (int64, error) {
	query := `
		UPDATE loads SET driver_id = $3, vehicle_id = $4,
		                 status = CASE WHEN status = 'pending' THEN 'assigned' ELSE status END,
		                 updated_at = now()
		WHERE company_id = $1 AND id = $2
		  AND status IN ('pending', 'assigned', 'in_transit')
		  AND NOT EXISTS (
		      SELECT 1 FROM loads other
		      WHERE other.company_id = $1 AND other.driver_id = $3 AND other.id <> $2
		        AND other.status IN ('pending', 'assigned', 'in_transit'))`
	tag, err := r.q.Exec(context.Background(), query, companyID, loadID, driverID, vehicleID)
	if err != nil {
		return 0, fmt.Errorf("assign driver: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnassignDriver clears driver and vehicle, only while a driver is set and the
// load is not in transit.
func (r *LoadRepo) UnassignDriver(companyID, loadID string) (int64, error) {
	query := `
		UPDATE loads SET driver_id = NULL, vehicle_id = NULL, updated_at = now()
		WHERE company_id = $1 AND id = $2 AND driver_id IS NOT NULL AND status <> 'in_transit'`
	tag, err := r.q.Exec(context.Background(), query, companyID, loadID)
	if err != nil {
		return 0, fmt.Errorf("unassign driver: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateStatus moves the load from one status to another in one statement.
func (r *LoadRepo) UpdateStatus(companyID, loadID, from, to string) (int64, error) {
	query := `
		UPDATE loads SET status = $4, updated_at = now()
		WHERE company_id = $1 AND id = $2 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query, companyID, loadID, from, to)
	if err != nil {
		return 0, fmt.Errorf("update load status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AppendTracking inserts one audit entry.
func (r *LoadRepo) AppendTracking(t *entity.LoadTracking) error {
	query := `
		INSERT INTO load_tracking (id, load_id, company_id, status, note, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.LoadID, t.CompanyID, t.Status, t.Note, t.ActorID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tracking: %w", err)
	}
	return nil
}

// ListTracking lists the load's trail, oldest first.
func (r *LoadRepo) ListTracking(companyID, loadID string) ([]*entity.LoadTracking, error) {
	query := `
		SELECT id, load_id, company_id, status, note, actor_id, created_at
		FROM load_tracking WHERE company_id = $1 AND load_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID, loadID)
	if err != nil {
		return nil, fmt.Errorf("list tracking: %w", err)
	}
	defer rows.Close()
	var list []*entity.LoadTracking
	for rows.Next() {
		var t entity.LoadTracking
		if err := rows.Scan(&t.ID, &t.LoadID, &t.CompanyID, &t.Status, &t.Note, &t.ActorID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tracking: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *LoadRepo) scanOne(row pgx.Row) (*entity.Load, error) {
	var l entity.Load
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.CustomerID, &l.LoadNumber, &l.Status,
		&l.Origin, &l.Destination, &l.Commodity, &l.WeightKG, &l.VolumeM3,
		&l.Rate, &l.Currency, &l.DriverID, &l.VehicleID, &l.PickupDate, &l.DeliveryDate,
		&l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get load: %w", err)
	}
	return &l, nil
}

func (r *LoadRepo) scanRow(rows pgx.Rows) (*entity.Load, error) {
	var l entity.Load
	if err := rows.Scan(
		&l.ID, &l.CompanyID, &l.CustomerID, &l.LoadNumber, &l.Status,
		&l.Origin, &l.Destination, &l.Commodity, &l.WeightKG, &l.VolumeM3,
		&l.Rate, &l.Currency, &l.DriverID, &l.VehicleID, &l.PickupDate, &l.DeliveryDate,
		&l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan load: %w", err)
	}
	return &l, nil
}
