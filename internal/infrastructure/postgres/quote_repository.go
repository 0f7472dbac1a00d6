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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implements QuoteRepository (usable with pool or tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository builds the adapter. Pass a pool or tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, company_id, customer_id, quote_number, status, currency, tax_rate,
	subtotal, tax, total, valid_until, converted_load_id, created_by, created_at, updated_at`

// Create persists the quote header and its items.
func (r *QuoteRepo) Create(quote *entity.Quote, items []*entity.QuoteItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		quote.ID, quote.CompanyID, quote.CustomerID, quote.QuoteNumber, quote.Status,
		quote.Currency, quote.TaxRate, quote.Subtotal, quote.Tax, quote.Total,
		quote.ValidUntil, quote.ConvertedLoadID, quote.CreatedBy, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	itemQuery := `
		INSERT INTO quote_items (id, quote_id, description, quantity, unit_price, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.QuoteID, item.Description, item.Quantity, item.UnitPrice, item.LineTotal, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}
	return nil
}

// GetByID fetches a quote within the company.
func (r *QuoteRepo) GetByID(companyID, id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE company_id = $1 AND id = $2`
	var q entity.Quote
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&q.ID, &q.CompanyID, &q.CustomerID, &q.QuoteNumber, &q.Status,
		&q.Currency, &q.TaxRate, &q.Subtotal, &q.Tax, &q.Total,
		&q.ValidUntil, &q.ConvertedLoadID, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

// GetItems lists the quote's lines in insertion order.
func (r *QuoteRepo) GetItems(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, description, quantity, unit_price, line_total, created_at
		FROM quote_items WHERE quote_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteItem
	for rows.Next() {
		var item entity.QuoteItem
		if err := rows.Scan(&item.ID, &item.QuoteID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.LineTotal, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// ListByCompany pages the company's quotes, newest first; status filters when
// non-empty.
func (r *QuoteRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(
			&q.ID, &q.CompanyID, &q.CustomerID, &q.QuoteNumber, &q.Status,
			&q.Currency, &q.TaxRate, &q.Subtotal, &q.Tax, &q.Total,
			&q.ValidUntil, &q.ConvertedLoadID, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// UpdateStatus flips the quote status within the company.
func (r *QuoteRepo) UpdateStatus(companyID, id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET status = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, status)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}

// MarkConverted flips the quote to converted and links the load, only while it
// has never been converted.
func (r *QuoteRepo) MarkConverted(companyID, id, loadID string) (int64, error) {
	query := `
		UPDATE quotes SET status = 'converted', converted_load_id = $3, updated_at = now()
		WHERE company_id = $1 AND id = $2 AND converted_load_id IS NULL AND status <> 'converted'`
	tag, err := r.q.Exec(context.Background(), query, companyID, id, loadID)
	if err != nil {
		return 0, fmt.Errorf("mark quote converted: %w", err)
	}
	return tag.RowsAffected(), nil
}
