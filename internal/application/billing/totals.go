package billing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
)

// centPlaces is the precision applied at every step of the totals chain.
const centPlaces = 2

// Totals is the computed money summary of a line-item document.
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	LineTotals []decimal.Decimal
}

// ComputeTotals derives subtotal, tax and total from the items:
//
//	subtotal = round2(sum(quantity * unit_price))
//	tax      = round2(subtotal * rate/100)
//	total    = round2(subtotal + tax)
//
// Each line is also rounded to cents for display. Validation: quantity > 0,
// unit_price >= 0, rate >= 0; violations are reported per field.
func ComputeTotals(items []dto.LineItemRequest, taxRate decimal.Decimal) (*Totals, error) {
	if taxRate.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError(map[string]string{"tax_rate": "must not be negative"})
	}
	sum := decimal.Zero
	lineTotals := make([]decimal.Decimal, 0, len(items))
	fields := map[string]string{}
	for i, item := range items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			fields[indexedField("quantity", i)] = "must be greater than 0"
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			fields[indexedField("unit_price", i)] = "must not be negative"
		}
		line := item.Quantity.Mul(item.UnitPrice)
		lineTotals = append(lineTotals, line.Round(centPlaces))
		sum = sum.Add(line)
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	subtotal := sum.Round(centPlaces)
	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(centPlaces)
	total := subtotal.Add(tax).Round(centPlaces)
	return &Totals{Subtotal: subtotal, Tax: tax, Total: total, LineTotals: lineTotals}, nil
}

func indexedField(name string, i int) string {
	return "items[" + strconv.Itoa(i) + "]." + name
}
