package pricing

import (
	"flexispace/models"
)

// SpaceSubtotal is the hourly rate applied to a duration in minutes.
// Whole-hour durations are exact; a sub-unit remainder is rounded half up.
func SpaceSubtotal(ratePerHour models.Money, minutes int) models.Money {
	if minutes <= 0 || ratePerHour <= 0 {
		return 0
	}
	return (ratePerHour*models.Money(minutes) + 30) / 60
}

// ServiceCost prices one add-on: catering per guest, everything else flat.
func ServiceCost(s models.SelectedService, guestCount int) models.Money {
	if s.Category.PerPerson() {
		if guestCount < 0 {
			guestCount = 0
		}
		return s.Price * models.Money(guestCount)
	}
	return s.Price
}

// ServicesTotal sums ServiceCost over the selection.
func ServicesTotal(selected []models.SelectedService, guestCount int) models.Money {
	var total models.Money
	for _, s := range selected {
		total += ServiceCost(s, guestCount)
	}
	return total
}

// LineItem is one row of a price breakdown.
type LineItem struct {
	Label     string       `json:"label"`
	ServiceID string       `json:"serviceId,omitempty"`
	Amount    models.Money `json:"amount"`
	Display   string       `json:"display"`
}

// Breakdown is the full price of a booking as shown on the review step.
type Breakdown struct {
	Minutes       int          `json:"minutes"`
	Hours         float64      `json:"hours"`
	RatePerHour   models.Money `json:"ratePerHour"`
	SpaceSubtotal models.Money `json:"spaceSubtotal"`
	ServicesTotal models.Money `json:"servicesTotal"`
	Total         models.Money `json:"total"`
	Currency      string       `json:"currency"`
	Lines         []LineItem   `json:"lines"`
	TotalDisplay  string       `json:"totalDisplay"`
}

// Quote computes the price of a booking form at the given hourly rate.
// It never mutates its inputs. An invalid time range is reported as an error
// alongside a breakdown that prices the services only.
func Quote(ratePerHour models.Money, currency string, form models.BookingForm, selected []models.SelectedService) (Breakdown, error) {
	minutes, durErr := DurationMinutes(form.StartTime, form.EndTime)

	b := Breakdown{
		Minutes:       minutes,
		Hours:         float64(minutes) / 60,
		RatePerHour:   ratePerHour,
		SpaceSubtotal: SpaceSubtotal(ratePerHour, minutes),
		ServicesTotal: ServicesTotal(selected, form.GuestCount),
		Currency:      currency,
	}
	b.Total = b.SpaceSubtotal + b.ServicesTotal

	b.Lines = make([]LineItem, 0, len(selected)+1)
	b.Lines = append(b.Lines, LineItem{
		Label:   "Space rental",
		Amount:  b.SpaceSubtotal,
		Display: b.SpaceSubtotal.Format(currency),
	})
	for _, s := range selected {
		cost := ServiceCost(s, form.GuestCount)
		b.Lines = append(b.Lines, LineItem{
			Label:     s.Name,
			ServiceID: s.ID,
			Amount:    cost,
			Display:   cost.Format(currency),
		})
	}
	b.TotalDisplay = b.Total.Format(currency)
	return b, durErr
}
