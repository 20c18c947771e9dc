// Package form validates and coerces the string-keyed field bags submitted by
// dashboard forms before they reach storage.
package form

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Fields is the raw form payload, keyed by input name.
type Fields map[string]string

// Get returns the first non-empty trimmed value among keys.
func (f Fields) Get(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(f[key]); value != "" {
			return value
		}
	}
	return ""
}

var ErrValidation = errors.New("validation_error")

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError lists every offending field of a submission.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation error: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// InvoiceInput is the coerced invoice form. ID and date are never read from the form.
type InvoiceInput struct {
	CustomerID string  `form:"customer_id" validate:"required"`
	Amount     float64 `form:"amount"`
	Status     string  `form:"status" validate:"required,oneof=pending paid"`
}

// Credentials is the coerced login form.
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

var fieldOrder = map[string]int{
	"customer_id": 0,
	"amount":      1,
	"status":      2,
	"email":       3,
	"password":    4,
}

// ParseInvoice validates an invoice submission. Both the form input name
// (customerId) and the stored field name (customer_id) are accepted.
func ParseInvoice(fields Fields) (InvoiceInput, error) {
	input := InvoiceInput{
		CustomerID: fields.Get("customerId", "customer_id"),
		Status:     fields.Get("status"),
	}

	var errs []FieldError
	amount, err := parseAmount(fields.Get("amount"))
	if err != nil {
		errs = append(errs, FieldError{
			Field:   "amount",
			Code:    "invalid_amount",
			Message: err.Error(),
		})
	}
	input.Amount = amount

	errs = append(errs, validateStruct(input)...)
	if len(errs) > 0 {
		return InvoiceInput{}, newValidationError(errs)
	}
	return input, nil
}

// ParseCredentials validates a login submission.
func ParseCredentials(fields Fields) (Credentials, error) {
	creds := Credentials{
		Email:    fields.Get("email"),
		Password: fields["password"],
	}
	if errs := validateStruct(creds); len(errs) > 0 {
		return Credentials{}, newValidationError(errs)
	}
	return creds, nil
}

func parseAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("amount is required")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("amount %q is not a finite number", raw)
	}
	if math.Abs(value*100) >= math.MaxInt64 {
		return 0, fmt.Errorf("amount %q is out of range", raw)
	}
	return value, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

func validateStruct(v any) []FieldError {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "form", Code: "invalid_form", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Code:    codeFor(fe),
			Message: messageFor(fe),
		})
	}
	return out
}

func codeFor(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "required"
	}
	return "invalid_" + fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "email must be a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

func newValidationError(errs []FieldError) *ValidationError {
	sort.SliceStable(errs, func(i, j int) bool {
		return fieldOrder[errs[i].Field] < fieldOrder[errs[j].Field]
	})
	return &ValidationError{Fields: errs}
}
