package billing

import (
	"context"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

// ConversionTxRunner runs quote->load conversion inside one transaction: the
// load insert and the conditional converted-flag flip commit or roll back
// together.
type ConversionTxRunner interface {
	RunConversion(ctx context.Context, fn func(
		quotes repository.QuoteRepository,
		loads repository.LoadRepository,
	) error) error
}

// InvoicePDFGenerator renders an invoice into PDF bytes. Pure with respect to
// its inputs; the caller fetches every row first.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		company *entity.Company,
		customer *entity.Customer,
		items []*entity.InvoiceItem,
	) ([]byte, error)
}
