package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   Money
		currency string
		want     string
	}{
		{name: "rupees with grouping", amount: FromMajor(19800), currency: "INR", want: "₹19,800"},
		{name: "lowercase code", amount: FromMajor(4800), currency: "inr", want: "₹4,800"},
		{name: "minor units", amount: 1250, currency: "USD", want: "$12.50"},
		{name: "zero", amount: 0, currency: "EUR", want: "€0"},
		{name: "negative", amount: -FromMajor(1500), currency: "GBP", want: "-£1,500"},
		{name: "unknown currency", amount: FromMajor(7), currency: "jpy", want: "JPY 7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.amount.Format(tt.currency))
		})
	}
}

func TestMoneyMajor(t *testing.T) {
	assert.Equal(t, 12.5, Money(1250).Major())
	assert.Equal(t, Money(300000), FromMajor(3000))
}

func TestListingFormCloneIsDeep(t *testing.T) {
	f := NewListingForm()
	f.Images = []string{"a"}
	f.Amenities[AmenityWiFi] = true

	c := f.Clone()
	c.Images[0] = "b"
	c.Amenities[AmenityWiFi] = false
	c.Amenities[AmenityAC] = true

	assert.Equal(t, "a", f.Images[0])
	assert.True(t, f.Amenities[AmenityWiFi])
	assert.NotContains(t, f.Amenities, AmenityAC)
}

func TestBookingFormDefaults(t *testing.T) {
	f := NewBookingForm()
	assert.Equal(t, DefaultGuestCount, f.GuestCount)

	f.StartTime, f.EndTime = "10:00", "14:00"
	assert.Equal(t, "10:00 - 14:00", f.TimeRange())
}

func TestSpaceSummary(t *testing.T) {
	s := Space{ID: "x", Title: "Hall", Image: "img", Location: "Downtown", Capacity: 10}
	assert.Equal(t, SpaceSummary{Title: "Hall", Image: "img", Location: "Downtown"}, s.Summary())
}

func TestServiceCategory(t *testing.T) {
	assert.True(t, CategoryCatering.PerPerson())
	assert.False(t, CategoryCleaning.PerPerson())
	assert.True(t, CategorySecurity.Valid())
	assert.False(t, ServiceCategory("spa").Valid())
}
