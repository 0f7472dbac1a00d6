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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implements DocumentRepository (usable with pool or tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository builds the adapter. Pass a pool or tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, company_id, load_id, invoice_id, quote_id, type, file_name, storage_key,
	size_bytes, mime_type, uploaded_by, created_at`

// Create persists the metadata row.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.CompanyID, doc.LoadID, doc.InvoiceID, doc.QuoteID, doc.Type,
		doc.FileName, doc.StorageKey, doc.SizeBytes, doc.MimeType, doc.UploadedBy, doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID fetches a document within the company.
func (r *DocumentRepo) GetByID(companyID, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 AND id = $2`
	var d entity.Document
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&d.ID, &d.CompanyID, &d.LoadID, &d.InvoiceID, &d.QuoteID, &d.Type,
		&d.FileName, &d.StorageKey, &d.SizeBytes, &d.MimeType, &d.UploadedBy, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// ListByCompany pages the company's documents, newest first; loadID filters
// when non-empty.
func (r *DocumentRepo) ListByCompany(companyID string, loadID string, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE company_id = $1 AND ($2 = '' OR load_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, loadID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.LoadID, &d.InvoiceID, &d.QuoteID, &d.Type,
			&d.FileName, &d.StorageKey, &d.SizeBytes, &d.MimeType, &d.UploadedBy, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete removes the metadata row within the company.
func (r *DocumentRepo) Delete(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM documents WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
