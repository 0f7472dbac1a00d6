package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/guard"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
	"github.com/nkwe-logistics/fleetflow-api/pkg/validation"
)

// QuoteUseCase quote lifecycle: create with computed totals, status moves,
// and the once-only conversion to a load.
type QuoteUseCase struct {
	quotes    repository.QuoteRepository
	customers repository.CustomerRepository
	txRunner  ConversionTxRunner
	numbers   *numbering.Generator
}

// NewQuoteUseCase builds the usecase.
func NewQuoteUseCase(
	quotes repository.QuoteRepository,
	customers repository.CustomerRepository,
	txRunner ConversionTxRunner,
	numbers *numbering.Generator,
) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, customers: customers, txRunner: txRunner, numbers: numbers}
}

// Create registers a draft quote. Totals are always recomputed from the
// items, never trusted from the client.
func (uc *QuoteUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
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
	totals, err := ComputeTotals(in.Items, in.TaxRate)
	if err != nil {
		return nil, err
	}
	number, err := uc.numbers.Next(ctx, numbering.TypeQuote, companyID, customer.Name)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = customer.Currency
	}

	now := time.Now()
	quote := &entity.Quote{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CustomerID:  in.CustomerID,
		QuoteNumber: number,
		Status:      entity.QuoteDraft,
		Currency:    currency,
		TaxRate:     in.TaxRate,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		Total:       totals.Total,
		ValidUntil:  in.ValidUntil,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items := make([]*entity.QuoteItem, 0, len(in.Items))
	for i, item := range in.Items {
		items = append(items, &entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quote.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   totals.LineTotals[i],
			CreatedAt:   now,
		})
	}
	if err := uc.quotes.Create(quote, items); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// GetByID fetches one quote with its items.
func (uc *QuoteUseCase) GetByID(companyID, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quotes.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quotes.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// List pages the company's quotes, optionally filtered by status.
func (uc *QuoteUseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	list, err := uc.quotes.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuoteResponse(q, nil))
	}
	return out, nil
}

// UpdateStatus moves a quote through its lifecycle short of conversion.
// Converted quotes are frozen.
func (uc *QuoteUseCase) UpdateStatus(companyID, id string, in dto.UpdateQuoteStatusRequest) (*dto.QuoteResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	quote, err := uc.quotes.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Status == entity.QuoteConverted {
		return nil, domain.NewGuardError("Quote has already been converted to a load")
	}
	if err := uc.quotes.UpdateStatus(companyID, id, in.Status); err != nil {
		return nil, err
	}
	quote.Status = in.Status
	return toQuoteResponse(quote, nil), nil
}

// Convert turns an accepted quote into a pending load, once. The load insert
// and the converted flip run in one transaction; a quote converted
// concurrently aborts the whole operation.
func (uc *QuoteUseCase) Convert(ctx context.Context, companyID, userID, quoteID string, in dto.ConvertQuoteRequest) (*dto.LoadResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	quote, err := uc.quotes.GetByID(companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if err := guard.CanConvertQuote(quote); err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(companyID, quote.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	number, err := uc.numbers.Next(ctx, numbering.TypeLoad, companyID, customer.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	load := &entity.Load{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   quote.CustomerID,
		LoadNumber:   number,
		Status:       entity.LoadPending,
		Origin:       in.Origin,
		Destination:  in.Destination,
		Commodity:    in.Commodity,
		Rate:         quote.Total,
		Currency:     quote.Currency,
		PickupDate:   in.PickupDate,
		DeliveryDate: in.DeliveryDate,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunConversion(ctx, func(quotes repository.QuoteRepository, loads repository.LoadRepository) error {
		if err := loads.Create(load); err != nil {
			return err
		}
		rows, err := quotes.MarkConverted(companyID, quoteID, load.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.NewGuardError("Quote has already been converted to a load")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.LoadResponse{
		ID:           load.ID,
		CompanyID:    load.CompanyID,
		CustomerID:   load.CustomerID,
		LoadNumber:   load.LoadNumber,
		Status:       load.Status,
		Origin:       load.Origin,
		Destination:  load.Destination,
		Commodity:    load.Commodity,
		WeightKG:     load.WeightKG,
		VolumeM3:     load.VolumeM3,
		Rate:         load.Rate,
		Currency:     load.Currency,
		PickupDate:   load.PickupDate,
		DeliveryDate: load.DeliveryDate,
		CreatedAt:    load.CreatedAt,
		UpdatedAt:    load.UpdatedAt,
	}, nil
}

func toQuoteResponse(q *entity.Quote, items []*entity.QuoteItem) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:              q.ID,
		CompanyID:       q.CompanyID,
		CustomerID:      q.CustomerID,
		QuoteNumber:     q.QuoteNumber,
		Status:          q.Status,
		Currency:        q.Currency,
		TaxRate:         q.TaxRate,
		Subtotal:        q.Subtotal,
		Tax:             q.Tax,
		Total:           q.Total,
		ValidUntil:      q.ValidUntil,
		ConvertedLoadID: q.ConvertedLoadID,
		CreatedAt:       q.CreatedAt,
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
