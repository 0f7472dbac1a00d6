package billing

import (
	"context"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

// PDFUseCase renders invoices to PDF.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	companies repository.CompanyRepository
	customers repository.CustomerRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase builds the usecase.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	companies repository.CompanyRepository,
	customers repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoices:  invoices,
		companies: companies,
		customers: customers,
		generator: generator,
	}
}

// GenerateInvoicePDF fetches the invoice with its company, customer and items
// and renders the document. The second return value is the suggested filename.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoices.GetByID(companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customers.GetByID(companyID, invoice.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.invoices.GetItems(invoiceID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.generator.GenerateInvoicePDF(ctx, invoice, company, customer, items)
	if err != nil {
		return nil, "", err
	}
	return pdf, invoice.InvoiceNumber + ".pdf", nil
}
