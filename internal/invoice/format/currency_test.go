package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	cases := map[int64]string{
		0:         "$0.00",
		5:         "$0.05",
		4500:      "$45.00",
		123456:    "$1,234.56",
		100000000: "$1,000,000.00",
		-1250:     "-$12.50",
	}
	for cents, want := range cases {
		assert.Equal(t, want, Currency(cents, ""), "cents=%d", cents)
	}
	assert.Equal(t, "€3.00", Currency(300, "€"))
}

func TestCentsRoundTrip(t *testing.T) {
	assert.Equal(t, int64(4500), ToCents(45))
	assert.Equal(t, int64(4510), ToCents(45.1))
	assert.Equal(t, int64(29), ToCents(0.29))
	assert.Equal(t, 45.0, FromCents(4500))
	assert.Equal(t, 0.29, FromCents(29))
}
