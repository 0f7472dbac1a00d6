package billing_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/billing"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

const (
	convCompanyID  = "11111111-1111-4111-8111-111111111111"
	convCustomerID = "22222222-2222-4222-8222-222222222222"
	convQuoteID    = "33333333-3333-4333-8333-333333333333"
	convUserID     = "44444444-4444-4444-8444-444444444444"
)

// fakeQuoteRepo keeps one quote in memory and mirrors the conditional
// MarkConverted semantics: the flip succeeds exactly once.
type fakeQuoteRepo struct {
	quote *entity.Quote
}

func (f *fakeQuoteRepo) Create(q *entity.Quote, items []*entity.QuoteItem) error { return nil }
func (f *fakeQuoteRepo) GetByID(companyID, id string) (*entity.Quote, error) {
	if f.quote == nil || f.quote.CompanyID != companyID || f.quote.ID != id {
		return nil, nil
	}
	cp := *f.quote
	return &cp, nil
}
func (f *fakeQuoteRepo) GetItems(quoteID string) ([]*entity.QuoteItem, error) { return nil, nil }
func (f *fakeQuoteRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Quote, error) {
	return nil, nil
}
func (f *fakeQuoteRepo) UpdateStatus(companyID, id, status string) error {
	f.quote.Status = status
	return nil
}
func (f *fakeQuoteRepo) MarkConverted(companyID, id, loadID string) (int64, error) {
	if f.quote.Status == entity.QuoteConverted || f.quote.ConvertedLoadID != nil {
		return 0, nil
	}
	f.quote.Status = entity.QuoteConverted
	f.quote.ConvertedLoadID = &loadID
	return 1, nil
}

type fakeCustomerRepo struct {
	customer *entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(companyID, id string) (*entity.Customer, error) {
	if f.customer == nil || f.customer.CompanyID != companyID || f.customer.ID != id {
		return nil, nil
	}
	return f.customer, nil
}
func (f *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Update(c *entity.Customer) error   { return nil }
func (f *fakeCustomerRepo) Delete(companyID, id string) error { return nil }

// convLoadRepo records created loads; the rest of the interface is unused by
// conversion.
type convLoadRepo struct {
	created []*entity.Load
}

func (f *convLoadRepo) Create(l *entity.Load) error { f.created = append(f.created, l); return nil }
func (f *convLoadRepo) GetByID(companyID, id string) (*entity.Load, error) { return nil, nil }
func (f *convLoadRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Load, error) {
	return nil, nil
}
func (f *convLoadRepo) Update(l *entity.Load) error { return nil }
func (f *convLoadRepo) CountActiveByDriver(companyID, driverID, excludeLoadID string) (int, error) {
	return 0, nil
}
func (f *convLoadRepo) AssignDriver(companyID, loadID, driverID, vehicleID string) (int64, error) {
	return 0, nil
}
func (f *convLoadRepo) UnassignDriver(companyID, loadID string) (int64, error) { return 0, nil }
func (f *convLoadRepo) UpdateStatus(companyID, loadID, from, to string) (int64, error) {
	return 0, nil
}
func (f *convLoadRepo) AppendTracking(tr *entity.LoadTracking) error { return nil }
func (f *convLoadRepo) ListTracking(companyID, loadID string) ([]*entity.LoadTracking, error) {
	return nil, nil
}

// fakeConversionRunner hands the fakes straight to the callback. Rollback is
// modelled by the caller never observing partial state on error.
type fakeConversionRunner struct {
	quotes *fakeQuoteRepo
	loads  *convLoadRepo
}

func (f *fakeConversionRunner) RunConversion(ctx context.Context, fn func(repository.QuoteRepository, repository.LoadRepository) error) error {
	return fn(f.quotes, f.loads)
}

func newConversionFixture(status string) (*billing.QuoteUseCase, *fakeQuoteRepo, *convLoadRepo) {
	quotes := &fakeQuoteRepo{quote: &entity.Quote{
		ID:          convQuoteID,
		CompanyID:   convCompanyID,
		CustomerID:  convCustomerID,
		QuoteNumber: "QT-2608-001",
		Status:      status,
		Currency:    "ZAR",
		TaxRate:     decimal.NewFromInt(15),
		Subtotal:    decimal.NewFromInt(1000),
		Tax:         decimal.NewFromInt(150),
		Total:       decimal.NewFromInt(1150),
		CreatedAt:   time.Now(),
	}}
	customers := &fakeCustomerRepo{customer: &entity.Customer{
		ID:        convCustomerID,
		CompanyID: convCompanyID,
		Name:      "Okavango Mining Supplies",
		Currency:  "ZAR",
	}}
	loads := &convLoadRepo{}
	runner := &fakeConversionRunner{quotes: quotes, loads: loads}
	uc := billing.NewQuoteUseCase(quotes, customers, runner, numbering.NewGenerator(nil))
	return uc, quotes, loads
}

func TestConvertQuote_CreatesPendingLoad(t *testing.T) {
	uc, quotes, loads := newConversionFixture(entity.QuoteAccepted)

	resp, err := uc.Convert(context.Background(), convCompanyID, convUserID, convQuoteID, dto.ConvertQuoteRequest{
		Origin:      "Gaborone",
		Destination: "Francistown",
		Commodity:   "Mining equipment",
	})
	require.NoError(t, err)

	require.Len(t, loads.created, 1)
	load := loads.created[0]
	assert.Equal(t, entity.LoadPending, load.Status)
	assert.True(t, load.Rate.Equal(decimal.NewFromInt(1150)), "rate carries the quote total")
	assert.Equal(t, "ZAR", load.Currency)
	assert.Equal(t, convUserID, load.CreatedBy)

	assert.Equal(t, entity.QuoteConverted, quotes.quote.Status)
	require.NotNil(t, quotes.quote.ConvertedLoadID)
	assert.Equal(t, load.ID, *quotes.quote.ConvertedLoadID)

	// Customer "Okavango..." codes to OKA; the sequencer is absent so the
	// suffix comes from the local fallback.
	assert.Regexp(t, regexp.MustCompile(`^LD-OKA-\d{4}-\d{3}$`), resp.LoadNumber)
}

func TestConvertQuote_SecondConvertFails(t *testing.T) {
	uc, _, loads := newConversionFixture(entity.QuoteAccepted)

	_, err := uc.Convert(context.Background(), convCompanyID, convUserID, convQuoteID, dto.ConvertQuoteRequest{
		Origin: "Gaborone", Destination: "Francistown",
	})
	require.NoError(t, err)

	_, err = uc.Convert(context.Background(), convCompanyID, convUserID, convQuoteID, dto.ConvertQuoteRequest{
		Origin: "Gaborone", Destination: "Francistown",
	})
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "Quote has already been converted to a load")
	assert.Len(t, loads.created, 1, "the losing convert must not leave a load behind")
}

func TestConvertQuote_RejectedQuote(t *testing.T) {
	uc, _, _ := newConversionFixture(entity.QuoteRejected)

	_, err := uc.Convert(context.Background(), convCompanyID, convUserID, convQuoteID, dto.ConvertQuoteRequest{
		Origin: "Gaborone", Destination: "Francistown",
	})
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "Cannot convert a rejected quote")
}

func TestConvertQuote_WrongTenantIsAbsent(t *testing.T) {
	uc, _, _ := newConversionFixture(entity.QuoteAccepted)

	_, err := uc.Convert(context.Background(), "99999999-9999-4999-8999-999999999999", convUserID, convQuoteID, dto.ConvertQuoteRequest{
		Origin: "Gaborone", Destination: "Francistown",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
