package dto

import "time"

// DocumentResponse metadata view; the binary is fetched via a signed URL.
type DocumentResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	LoadID    *string   `json:"load_id,omitempty"`
	InvoiceID *string   `json:"invoice_id,omitempty"`
	QuoteID   *string   `json:"quote_id,omitempty"`
	Type      string    `json:"type"`
	FileName  string    `json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

// SignedURLResponse a time-limited download link.
type SignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
