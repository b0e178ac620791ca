package pricing

import (
	"errors"
	"testing"

	"flexispace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cleaning = models.SelectedService{ID: "1", Name: "Professional Cleaning", Provider: "CleanPro SF", Price: models.FromMajor(3500), Category: models.CategoryCleaning}
	security = models.SelectedService{ID: "2", Name: "Security Guard", Provider: "SecureSpace", Price: models.FromMajor(2000), Category: models.CategorySecurity}
	sound    = models.SelectedService{ID: "3", Name: "Sound System Rental", Provider: "AudioTech", Price: models.FromMajor(4500), Category: models.CategoryEquipment}
	catering = models.SelectedService{ID: "4", Name: "Catering Service", Provider: "Local Bites", Price: models.FromMajor(300), Category: models.CategoryCatering}
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "morning", in: "10:00", want: 600},
		{name: "single digit hour", in: "9:30", want: 570},
		{name: "last minute", in: "23:59", want: 1439},
		{name: "midnight", in: "00:00", want: 0},
		{name: "hour out of range", in: "24:00", wantErr: true},
		{name: "minute out of range", in: "10:60", wantErr: true},
		{name: "missing colon", in: "1000", wantErr: true},
		{name: "garbage", in: "ab:cd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	mins, err := DurationMinutes("10:00", "14:00")
	require.NoError(t, err)
	assert.Equal(t, 240, mins)

	hours, err := DurationHours("10:00", "14:30")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, hours, 1e-9)

	mins, err = DurationMinutes("", "14:00")
	require.NoError(t, err)
	assert.Zero(t, mins)

	_, err = DurationMinutes("14:00", "14:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = DurationMinutes("22:00", "02:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestSpaceSubtotal_FourHourBooking(t *testing.T) {
	mins, err := DurationMinutes("10:00", "14:00")
	require.NoError(t, err)

	subtotal := SpaceSubtotal(models.FromMajor(1200), mins)
	assert.Equal(t, models.FromMajor(4800), subtotal)
	assert.Equal(t, "₹4,800", subtotal.Format("INR"))
}

func TestSpaceSubtotal_ExactAndMonotonic(t *testing.T) {
	prev := models.Money(0)
	for hours := 1; hours <= 12; hours++ {
		got := SpaceSubtotal(models.FromMajor(750), hours*60)
		assert.Equal(t, models.FromMajor(750)*models.Money(hours), got)
		assert.GreaterOrEqual(t, int64(got), int64(prev))
		prev = got
	}

	prev = 0
	for rate := models.Money(0); rate <= 5000; rate += 250 {
		got := SpaceSubtotal(rate, 90)
		assert.GreaterOrEqual(t, int64(got), int64(prev))
		prev = got
	}

	assert.Equal(t, models.Money(1), SpaceSubtotal(1, 30), "half a unit rounds up")
	assert.Equal(t, models.Money(0), SpaceSubtotal(1, 29))
	assert.Zero(t, SpaceSubtotal(models.FromMajor(1200), 0))
}

func TestServiceCost(t *testing.T) {
	assert.Equal(t, models.FromMajor(15000), ServiceCost(catering, 50))
	assert.Equal(t, models.FromMajor(3500), ServiceCost(cleaning, 50))
	assert.Equal(t, models.FromMajor(3500), ServiceCost(cleaning, 1))
	assert.Zero(t, ServiceCost(catering, -3))
}

func TestQuote_CateringScenario(t *testing.T) {
	form := models.NewBookingForm()
	form.StartTime = "10:00"
	form.EndTime = "14:00"

	b, err := Quote(models.FromMajor(1200), "INR", form, []models.SelectedService{catering})
	require.NoError(t, err)

	assert.Equal(t, 240, b.Minutes)
	assert.Equal(t, models.FromMajor(4800), b.SpaceSubtotal)
	assert.Equal(t, models.FromMajor(15000), b.ServicesTotal)
	assert.Equal(t, models.FromMajor(19800), b.Total)
	assert.Equal(t, "₹19,800", b.TotalDisplay)
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "Space rental", b.Lines[0].Label)
	assert.Equal(t, "4", b.Lines[1].ServiceID)
	assert.Equal(t, "₹15,000", b.Lines[1].Display)
}

func TestQuote_InvalidRangePricesServicesOnly(t *testing.T) {
	form := models.NewBookingForm()
	form.StartTime = "14:00"
	form.EndTime = "10:00"

	b, err := Quote(models.FromMajor(1200), "INR", form, []models.SelectedService{security})
	assert.True(t, errors.Is(err, ErrInvalidTimeRange))
	assert.Zero(t, b.SpaceSubtotal)
	assert.Equal(t, models.FromMajor(2000), b.Total)
}

func TestSelection_AddRemoveRestoresTotal(t *testing.T) {
	form := models.NewBookingForm()
	form.StartTime = "09:00"
	form.EndTime = "17:00"
	rate := models.FromMajor(1200)

	sel := NewSelection(cleaning, sound)
	before, err := Quote(rate, "INR", form, sel.Items())
	require.NoError(t, err)

	for _, svc := range []models.SelectedService{security, catering} {
		assert.True(t, sel.Toggle(svc))
		with, err := Quote(rate, "INR", form, sel.Items())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, int64(with.Total), int64(before.Total))

		assert.False(t, sel.Toggle(svc))
		after, err := Quote(rate, "INR", form, sel.Items())
		require.NoError(t, err)
		assert.Equal(t, before.Total, after.Total)
	}
}

func TestSelection_ToggleTwiceKeepsOrder(t *testing.T) {
	sel := NewSelection(cleaning, security, sound)
	original := sel.Items()

	sel.Toggle(security)
	assert.Equal(t, []string{"1", "3"}, ids(sel.Items()))

	sel.Toggle(security)
	assert.Equal(t, []string{"1", "3", "2"}, ids(sel.Items()), "re-added service goes to the end")

	sel.Toggle(catering)
	sel.Toggle(catering)
	assert.Len(t, sel.Items(), 3)

	fresh := NewSelection(original...)
	fresh.Toggle(catering)
	fresh.Toggle(catering)
	assert.Equal(t, original, fresh.Items())
}

func TestSelection_ItemsIsACopy(t *testing.T) {
	sel := NewSelection(cleaning)
	items := sel.Items()
	items[0].Name = "changed"
	assert.Equal(t, "Professional Cleaning", sel.Items()[0].Name)

	clone := sel.Clone()
	clone.Toggle(sound)
	assert.Equal(t, 1, sel.Len())
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, []string{"Professional Cleaning", "Sound System Rental"}, clone.Names())
}

func ids(items []models.SelectedService) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
