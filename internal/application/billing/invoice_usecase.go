package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/validation"
)

// defaultDueDays applies when neither the request nor the company settings
// carry a due term.
const defaultDueDays = 30

// InvoiceUseCase invoice creation, listing with derived overdue state, and
// status transitions.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	loads     repository.LoadRepository
	settings  repository.SettingsRepository
	numbers   *numbering.Generator
	now       func() time.Time
}

// NewInvoiceUseCase builds the usecase.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	loads repository.LoadRepository,
	settings repository.SettingsRepository,
	numbers *numbering.Generator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:  invoices,
		customers: customers,
		loads:     loads,
		settings:  settings,
		numbers:   numbers,
		now:       time.Now,
	}
}

// Create registers a pending invoice with server-computed totals. Total =
// subtotal + tax, consistent at creation.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	var loadID *string
	if in.LoadID != "" {
		load, err := uc.loads.GetByID(companyID, in.LoadID)
		if err != nil {
			return nil, err
		}
		if load == nil {
			return nil, domain.ErrNotFound
		}
		loadID = &in.LoadID
	}
	totals, err := ComputeTotals(in.Items, in.TaxRate)
	if err != nil {
		return nil, err
	}
	number, err := uc.numbers.Next(ctx, numbering.TypeInvoice, companyID, customer.Name)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = customer.Currency
	}

	now := uc.now()
	var due time.Time
	if in.DueDate != nil {
		due = *in.DueDate
	} else {
		days := defaultDueDays
		settings, err := uc.settings.GetByCompany(companyID)
		if err != nil {
			return nil, err
		}
		if settings != nil && settings.InvoiceDueDays > 0 {
			days = settings.InvoiceDueDays
		}
		due = now.AddDate(0, 0, days)
	}
	invoice := &entity.Invoice{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    in.CustomerID,
		LoadID:        loadID,
		InvoiceNumber: number,
		Status:        entity.InvoicePending,
		Currency:      currency,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		IssueDate:     now,
		DueDate:       due,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for i, item := range in.Items {
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   totals.LineTotals[i],
			CreatedAt:   now,
		})
	}
	if err := uc.invoices.Create(invoice, items); err != nil {
		return nil, err
	}
	return uc.toInvoiceResponse(invoice, items), nil
}

// GetByID fetches one invoice with items.
func (uc *InvoiceUseCase) GetByID(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoices.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoices.GetItems(id)
	if err != nil {
		return nil, err
	}
	return uc.toInvoiceResponse(invoice, items), nil
}

// List pages the company's invoices, optionally filtered by status.
func (uc *InvoiceUseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoices.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, uc.toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// UpdateStatus applies an explicit status change. Paid and cancelled invoices
// are frozen; marking paid stamps paid_at.
func (uc *InvoiceUseCase) UpdateStatus(companyID, id string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	invoice, err := uc.invoices.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status == entity.InvoicePaid || invoice.Status == entity.InvoiceCancelled {
		return nil, domain.NewGuardError("Cannot change status of a " + invoice.Status + " invoice")
	}
	if in.Status == entity.InvoicePaid {
		if err := uc.invoices.MarkPaid(companyID, id); err != nil {
			return nil, err
		}
		now := uc.now()
		invoice.PaidAt = &now
	} else {
		if err := uc.invoices.UpdateStatus(companyID, id, in.Status); err != nil {
			return nil, err
		}
	}
	invoice.Status = in.Status
	return uc.toInvoiceResponse(invoice, nil), nil
}

func (uc *InvoiceUseCase) toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		LoadID:        inv.LoadID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        inv.Status,
		Overdue:       inv.IsOverdue(uc.now()),
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return resp
}
