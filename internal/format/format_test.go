package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/gift-tracker/internal/model"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{1234.56, "USD", "$1,234.56"},
		{1234.56, "EUR", "€1,234.56"},
		{35.5, "GBP", "£35.50"},
		{0, "USD", "$0.00"},
		{1000000, "CAD", "C$1,000,000.00"},
		{-12.3, "USD", "-$12.30"},
		{5, "XYZ", "$5.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.amount, tt.code), "%v %s", tt.amount, tt.code)
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "12/25/2024", Date("2024-12-25", DateShort))
	assert.Equal(t, "25/12/2024", Date("2024-12-25", DateEU))
	assert.Equal(t, "2024-12-25", Date("2024-12-25", DateISO))
	assert.Equal(t, "December 25, 2024", Date("2024-12-25", DateLong))
	assert.Equal(t, "12/25/2024", Date("2024-12-25", "MM/dd/yyyy"))
	assert.Equal(t, "12/25/2024", Date("2024-12-25T10:00:00Z", "bogus"))
	assert.Equal(t, "someday", Date("someday", DateShort))
}

func TestRelative(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 days ago", Relative(now.Add(-72*time.Hour), now))
	assert.Equal(t, "3 days from now", Relative(now.Add(72*time.Hour), now))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 12, 20, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, DaysUntil("2025-12-25", now))
	assert.Equal(t, 0, DaysUntil("2025-12-20", now))
	assert.Equal(t, -1, DaysUntil("2025-12-19", now))
	assert.Equal(t, 0, DaysUntil("not a date", now))
}

func TestDaysUntilNext(t *testing.T) {
	now := time.Date(2025, 12, 20, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, DaysUntilNext("1990-12-25", now))
	assert.Equal(t, 0, DaysUntilNext("1990-12-20", now))
	assert.Equal(t, 364, DaysUntilNext("1990-12-19", now))
	assert.Equal(t, 12, DaysUntilNext("1985-01-01", now))
	assert.Equal(t, -1, DaysUntilNext("", now))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 gift", Pluralize(1, "gift", ""))
	assert.Equal(t, "5 gifts", Pluralize(5, "gift", ""))
	assert.Equal(t, "0 gifts", Pluralize(0, "gift", ""))
	assert.Equal(t, "2 people", Pluralize(2, "person", "people"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Hello...", Truncate("Hello World", 8))
	assert.Equal(t, "Hello", Truncate("Hello", 8))
	assert.Equal(t, "Crème...", Truncate("Crème brûlée", 8))
	assert.Equal(t, "He", Truncate("Hello", 2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "75%", Percent(0.75, 0))
	assert.Equal(t, "75.67%", Percent(0.7567, 2))
}

func TestAddress(t *testing.T) {
	r := model.RecipientBase{
		AddressLine1: "1 Main St",
		AddressLine2: "Apt 2",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
		Country:      model.DefaultCountry,
	}
	assert.Equal(t, "1 Main St\nApt 2\nSpringfield, IL, 62701", Address(r))

	r.Country = "Canada"
	r.AddressLine2 = ""
	assert.Equal(t, "1 Main St\nSpringfield, IL, 62701\nCanada", Address(r))

	assert.Equal(t, "", Address(model.RecipientBase{}))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "(123) 456-7890", Phone("1234567890"))
	assert.Equal(t, "+1 (123) 456-7890", Phone("1-123-456-7890"))
	assert.Equal(t, "+44 20 7946 0958", Phone("+44 20 7946 0958"))
}

func TestTrackingURL(t *testing.T) {
	assert.Equal(t, "https://www.ups.com/track?tracknum=1Z999", TrackingURL("ups", "1Z999"))
	assert.Equal(t, "https://www.fedex.com/fedextrack/?trknbr=42", TrackingURL("FedEx", "42"))
	assert.Equal(t, "", TrackingURL("other", "42"))
	assert.Equal(t, "", TrackingURL("usps", ""))
}
