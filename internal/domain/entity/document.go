package entity

import "time"

// Document types.
const (
	DocumentPOD       = "proof_of_delivery"
	DocumentInvoice   = "invoice"
	DocumentQuote     = "quote"
	DocumentLicense   = "license"
	DocumentInsurance = "insurance"
	DocumentOther     = "other"
)

// Document is file metadata. The binary lives in the blob store under
// StorageKey ({companyID}/{uuid}-{sanitizedFilename}); the row links it
// optionally to a load, invoice or quote, always to a company.
type Document struct {
	ID         string
	CompanyID  string
	LoadID     *string
	InvoiceID  *string
	QuoteID    *string
	Type       string // see Document* constants
	FileName   string
	StorageKey string
	SizeBytes  int64
	MimeType   string
	UploadedBy string
	CreatedAt  time.Time
}
