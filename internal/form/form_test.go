package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceValid(t *testing.T) {
	input, err := ParseInvoice(Fields{
		"customerId": " c1 ",
		"amount":     "45.00",
		"status":     "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", input.CustomerID)
	assert.Equal(t, 45.0, input.Amount)
	assert.Equal(t, StatusPending, input.Status)
}

func TestParseInvoiceAcceptsStoredFieldName(t *testing.T) {
	input, err := ParseInvoice(Fields{
		"customer_id": "c2",
		"amount":      "1",
		"status":      "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, "c2", input.CustomerID)
	assert.Equal(t, StatusPaid, input.Status)
}

func TestParseInvoiceStatusIsCaseSensitive(t *testing.T) {
	_, err := ParseInvoice(Fields{"customerId": "c2", "amount": "1", "status": "PAID"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("status"))
}

func TestParseInvoiceReportsEveryField(t *testing.T) {
	_, err := ParseInvoice(Fields{
		"amount": "forty",
		"status": "overdue",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, "customer_id", verr.Fields[0].Field)
	assert.Equal(t, "amount", verr.Fields[1].Field)
	assert.Equal(t, "status", verr.Fields[2].Field)
	assert.Equal(t, "invalid_status", verr.Fields[2].Code)
}

func TestParseInvoiceRejectsNonFiniteAmount(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "-Inf", ""} {
		_, err := ParseInvoice(Fields{"customerId": "c1", "amount": raw, "status": "paid"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "amount %q", raw)
		assert.True(t, verr.Has("amount"))
		assert.False(t, verr.Has("status"))
	}
}

func TestParseInvoiceRejectsAmountBeyondCents(t *testing.T) {
	for _, raw := range []string{"1e17", "-1e17", "1e300"} {
		_, err := ParseInvoice(Fields{"customerId": "c1", "amount": raw, "status": "paid"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "amount %q", raw)
		require.True(t, verr.Has("amount"))
		assert.Equal(t, "invalid_amount", verr.Fields[0].Code)
	}

	input, err := ParseInvoice(Fields{"customerId": "c1", "amount": "1e15", "status": "paid"})
	require.NoError(t, err)
	assert.Equal(t, 1e15, input.Amount)
}

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials(Fields{"email": "User@Nextmail.com", "password": "123456"})
	require.NoError(t, err)
	assert.Equal(t, "User@Nextmail.com", creds.Email)

	_, err = ParseCredentials(Fields{"email": "not-an-email", "password": "123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("email"))
	assert.True(t, verr.Has("password"))
}
