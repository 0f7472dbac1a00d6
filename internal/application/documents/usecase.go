package documents

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/logger"
)

// Signed URL lifetimes, in seconds. Requests outside the range are clamped.
const (
	minURLTTL = 60
	maxURLTTL = 3600
)

var validDocTypes = map[string]bool{
	entity.DocumentPOD:       true,
	entity.DocumentInvoice:   true,
	entity.DocumentQuote:     true,
	entity.DocumentLicense:   true,
	entity.DocumentInsurance: true,
	entity.DocumentOther:     true,
}

// UploadInput carries one multipart upload into the usecase.
type UploadInput struct {
	Type      string
	FileName  string
	MimeType  string
	SizeBytes int64
	LoadID    string
	InvoiceID string
	QuoteID   string
	Body      io.Reader
}

// DocumentUseCase document upload, metadata listing and signed download URLs.
type DocumentUseCase struct {
	docs     repository.DocumentRepository
	blobs    BlobStore
	signer   URLSigner
	maxBytes int64
	baseURL  string
	log      *logger.Logger
}

// NewDocumentUseCase builds the usecase. maxUploadMB caps a single upload;
// baseURL prefixes the signed download links.
func NewDocumentUseCase(
	docs repository.DocumentRepository,
	blobs BlobStore,
	signer URLSigner,
	maxUploadMB int,
	baseURL string,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		docs:     docs,
		blobs:    blobs,
		signer:   signer,
		maxBytes: int64(maxUploadMB) << 20,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// Upload stores the blob and its metadata row. If the metadata insert fails
// the blob is removed again so the store holds no orphans.
func (uc *DocumentUseCase) Upload(ctx context.Context, companyID, userID string, in UploadInput) (*dto.DocumentResponse, error) {
	if !validDocTypes[in.Type] {
		return nil, domain.NewValidationError(map[string]string{"type": "unknown document type"})
	}
	if in.FileName == "" {
		return nil, domain.NewValidationError(map[string]string{"file": "file is required"})
	}
	if uc.maxBytes > 0 && in.SizeBytes > uc.maxBytes {
		return nil, domain.NewValidationError(map[string]string{"file": "file exceeds the upload size limit"})
	}

	name := sanitizeFileName(in.FileName)
	id := uuid.New().String()
	key := companyID + "/" + id + "-" + name

	written, err := uc.blobs.Save(ctx, key, in.Body)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		ID:         id,
		CompanyID:  companyID,
		LoadID:     optional(in.LoadID),
		InvoiceID:  optional(in.InvoiceID),
		QuoteID:    optional(in.QuoteID),
		Type:       in.Type,
		FileName:   name,
		StorageKey: key,
		SizeBytes:  written,
		MimeType:   in.MimeType,
		UploadedBy: userID,
		CreatedAt:  time.Now(),
	}
	if err := uc.docs.Create(doc); err != nil {
		if rmErr := uc.blobs.Remove(ctx, key); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("key", key).Msg("orphaned blob after failed metadata insert")
		}
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// GetByID fetches one document's metadata.
func (uc *DocumentUseCase) GetByID(companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docs.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc), nil
}

// List pages the company's documents, optionally filtered to one load.
func (uc *DocumentUseCase) List(companyID, loadID string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	list, err := uc.docs.ListByCompany(companyID, loadID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(list))
	for _, doc := range list {
		out = append(out, toDocumentResponse(doc))
	}
	return out, nil
}

// SignedURL mints a download link valid for ttlSeconds, clamped to
// [60s, 3600s]. The link works without authentication until it expires.
func (uc *DocumentUseCase) SignedURL(companyID, id string, ttlSeconds int) (*dto.SignedURLResponse, error) {
	doc, err := uc.docs.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	if ttlSeconds < minURLTTL {
		ttlSeconds = minURLTTL
	}
	if ttlSeconds > maxURLTTL {
		ttlSeconds = maxURLTTL
	}
	token, expiresAt, err := uc.signer.Sign(companyID, id, time.Duration(ttlSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	return &dto.SignedURLResponse{
		URL:       uc.baseURL + "/api/v1/documents/download?token=" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// Download resolves a signed token to the blob. The token carries the tenant,
// so no session is needed.
func (uc *DocumentUseCase) Download(ctx context.Context, token string) (io.ReadCloser, *dto.DocumentResponse, error) {
	companyID, id, err := uc.signer.Verify(token)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	doc, err := uc.docs.GetByID(companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	body, err := uc.blobs.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return body, toDocumentResponse(doc), nil
}

// Delete removes the metadata row and then the blob. A failed blob removal is
// logged, not surfaced; the row is already gone.
func (uc *DocumentUseCase) Delete(ctx context.Context, companyID, id string) error {
	doc, err := uc.docs.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := uc.docs.Delete(companyID, id); err != nil {
		return err
	}
	if err := uc.blobs.Remove(ctx, doc.StorageKey); err != nil {
		uc.log.Warn().Err(err).Str("key", doc.StorageKey).Msg("blob removal failed after metadata delete")
	}
	return nil
}

// sanitizeFileName strips path components and anything outside a conservative
// character set.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:        doc.ID,
		CompanyID: doc.CompanyID,
		LoadID:    doc.LoadID,
		InvoiceID: doc.InvoiceID,
		QuoteID:   doc.QuoteID,
		Type:      doc.Type,
		FileName:  doc.FileName,
		SizeBytes: doc.SizeBytes,
		MimeType:  doc.MimeType,
		CreatedAt: doc.CreatedAt,
	}
}
