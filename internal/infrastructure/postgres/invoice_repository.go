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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, load_id, invoice_number, status, currency,
	subtotal, tax, total, issue_date, due_date, paid_at, created_by, created_at, updated_at`

// Create persists the invoice header and its items.
func (r *InvoiceRepo) Create(invoice *entity.Invoice, items []*entity.InvoiceItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.LoadID, invoice.InvoiceNumber,
		invoice.Status, invoice.Currency, invoice.Subtotal, invoice.Tax, invoice.Total,
		invoice.IssueDate, invoice.DueDate, invoice.PaidAt, invoice.CreatedBy,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice, item.LineTotal, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID fetches an invoice within the company.
func (r *InvoiceRepo) GetByID(companyID, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND id = $2`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.LoadID, &inv.InvoiceNumber,
		&inv.Status, &inv.Currency, &inv.Subtotal, &inv.Tax, &inv.Total,
		&inv.IssueDate, &inv.DueDate, &inv.PaidAt, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItems lists the invoice's lines in insertion order.
func (r *InvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, line_total, created_at
		FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var item entity.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.LineTotal, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// ListByCompany pages the company's invoices, newest first; status filters
// when non-empty.
func (r *InvoiceRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.LoadID, &inv.InvoiceNumber,
			&inv.Status, &inv.Currency, &inv.Subtotal, &inv.Tax, &inv.Total,
			&inv.IssueDate, &inv.DueDate, &inv.PaidAt, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// UpdateStatus flips the invoice status within the company.
func (r *InvoiceRepo) UpdateStatus(companyID, id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// MarkPaid flips the invoice to paid and stamps paid_at.
func (r *InvoiceRepo) MarkPaid(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = 'paid', paid_at = now(), updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	return nil
}
