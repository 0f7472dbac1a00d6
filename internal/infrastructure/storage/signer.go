package storage

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/documents"
)

var _ documents.URLSigner = (*TokenSigner)(nil)

// downloadClaims is the payload of a signed download token.
type downloadClaims struct {
	CompanyID  string `json:"company_id"`
	DocumentID string `json:"document_id"`
	jwt.RegisteredClaims
}

// TokenSigner mints HMAC-signed download tokens. The token carries the tenant
// and document, so a leaked link grants exactly one file until it expires.
type TokenSigner struct {
	secret []byte
	now    func() time.Time
}

// NewTokenSigner builds the signer.
func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), now: time.Now}
}

// Sign mints a token valid for ttl.
func (s *TokenSigner) Sign(companyID, documentID string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := downloadClaims{
		CompanyID:  companyID,
		DocumentID: documentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   documentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign download token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify parses and validates a token, returning the tenant and document it
// grants.
func (s *TokenSigner) Verify(token string) (string, string, error) {
	var claims downloadClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("parse download token: %w", err)
	}
	if !parsed.Valid || claims.CompanyID == "" || claims.DocumentID == "" {
		return "", "", fmt.Errorf("invalid download token")
	}
	return claims.CompanyID, claims.DocumentID, nil
}
