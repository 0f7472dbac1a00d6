package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,currency_code"`
	Age      int    `json:"age" validate:"omitempty,gte=18"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Email: "ops@example.com", Name: "Dineo", Currency: "ZAR", Age: 30})
	assert.NoError(t, err)
}

func TestStruct_ReportsEveryFieldByJSONName(t *testing.T) {
	err := Struct(sample{Email: "not-an-email", Age: 12})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be a valid email", ve.Fields["email"])
	assert.Equal(t, "is required", ve.Fields["name"])
	assert.Equal(t, "must be at least 18", ve.Fields["age"])
}

func TestStruct_CurrencyCode(t *testing.T) {
	err := Struct(sample{Email: "ops@example.com", Name: "Dineo", Currency: "EUR"})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["currency"], "must be one of")

	for _, code := range []string{"USD", "ZAR", "BWP", "NAD", "ZWL", "ZMW", "MZN"} {
		assert.NoError(t, Struct(sample{Email: "ops@example.com", Name: "Dineo", Currency: code}), code)
	}
}
