package documents

import (
	"context"
	"io"
	"time"
)

// BlobStore holds the document binaries. Keys are opaque to the store; this
// package composes them as {companyID}/{uuid}-{filename}.
type BlobStore interface {
	// Save writes the blob and returns the number of bytes stored.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// URLSigner mints and verifies the time-limited download tokens embedded in
// signed URLs.
type URLSigner interface {
	Sign(companyID, documentID string, ttl time.Duration) (token string, expiresAt time.Time, err error)
	Verify(token string) (companyID, documentID string, err error)
}
