package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
)

// Supported currencies. Matches the CHECK constraint on the money columns.
var currencies = map[string]bool{
	"USD": true, "ZAR": true, "BWP": true, "NAD": true,
	"ZWL": true, "ZMW": true, "MZN": true,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json name, not the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return currencies[fl.Field().String()]
	})
	return v
}

// Struct validates a tagged DTO and returns a domain.ValidationError listing
// every violated field. Deterministic, no I/O; never panics on expected bad input.
func Struct(in any) error {
	if err := validate.Struct(in); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.NewValidationError(map[string]string{"_": "invalid input"})
		}
		fields := make(map[string]string, len(errs))
		for _, fe := range errs {
			fields[fe.Field()] = message(fe)
		}
		return domain.NewValidationError(fields)
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "uuid4", "uuid":
		return "must be a valid UUID"
	case "currency_code":
		return "must be one of USD, ZAR, BWP, NAD, ZWL, ZMW, MZN"
	case "eqfield":
		return fmt.Sprintf("must match %s", strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}
