package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/billing"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals_RoundsEachStep(t *testing.T) {
	// 2 * 100.005 = 200.01 (exact), plus 1 * 50 = 250.01.
	// 15% of 250.01 = 37.5015 -> 37.50. Total 287.51.
	items := []dto.LineItemRequest{
		{Description: "Line haul", Quantity: dec("2"), UnitPrice: dec("100.005")},
		{Description: "Fuel levy", Quantity: dec("1"), UnitPrice: dec("50")},
	}
	totals, err := billing.ComputeTotals(items, dec("15"))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("250.01")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(dec("37.50")), "tax = %s", totals.Tax)
	assert.True(t, totals.Total.Equal(dec("287.51")), "total = %s", totals.Total)

	require.Len(t, totals.LineTotals, 2)
	assert.True(t, totals.LineTotals[0].Equal(dec("200.01")))
	assert.True(t, totals.LineTotals[1].Equal(dec("50")))
}

func TestComputeTotals_ZeroTaxRate(t *testing.T) {
	items := []dto.LineItemRequest{
		{Description: "Flat rate", Quantity: dec("1"), UnitPrice: dec("1200")},
	}
	totals, err := billing.ComputeTotals(items, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(dec("1200")))
}

func TestComputeTotals_RejectsNonPositiveQuantity(t *testing.T) {
	items := []dto.LineItemRequest{
		{Description: "ok", Quantity: dec("1"), UnitPrice: dec("10")},
		{Description: "bad", Quantity: decimal.Zero, UnitPrice: dec("10")},
	}
	_, err := billing.ComputeTotals(items, dec("15"))
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items[1].quantity")
}

func TestComputeTotals_RejectsNegativePriceAndRate(t *testing.T) {
	items := []dto.LineItemRequest{
		{Description: "bad", Quantity: dec("1"), UnitPrice: dec("-5")},
	}
	_, err := billing.ComputeTotals(items, dec("15"))
	require.Error(t, err)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items[0].unit_price")

	_, err = billing.ComputeTotals([]dto.LineItemRequest{
		{Description: "ok", Quantity: dec("1"), UnitPrice: dec("5")},
	}, dec("-1"))
	require.Error(t, err)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "tax_rate")
}
