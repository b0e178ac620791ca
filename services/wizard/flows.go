package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"flexispace/models"
	"flexispace/services/pricing"
)

// Booking flow step indexes.
const (
	BookingStepSchedule = iota
	BookingStepServices
	BookingStepContact
	BookingStepConfirm
)

// Listing flow step indexes.
const (
	ListingStepBasics = iota
	ListingStepPricing
	ListingStepAmenities
	ListingStepMedia
	ListingStepAvailability
	ListingStepReview
)

// BookingSteps defines the booking flow for a space holding up to capacity guests.
// A capacity of zero leaves the guest count unbounded above.
func BookingSteps(capacity int) []Step[models.BookingForm] {
	return []Step[models.BookingForm]{
		{Label: "Select Date & Time", Validate: scheduleValidator(capacity)},
		{Label: "Add Services"},
		{Label: "Contact Info"},
		{Label: "Payment & Confirm"},
	}
}

func NewBookingWizard(capacity int) *Wizard[models.BookingForm] {
	w, _ := New(models.NewBookingForm(), BookingSteps(capacity)...)
	return w
}

func scheduleValidator(capacity int) func(models.BookingForm) *ValidationError {
	return func(f models.BookingForm) *ValidationError {
		if strings.TrimSpace(f.Date) == "" {
			return Invalid(RuleDateRequired, "date", "Event date is required")
		}
		if _, err := time.Parse(time.DateOnly, f.Date); err != nil {
			return Invalid(RuleInvalidDate, "date", "Event date must be YYYY-MM-DD")
		}
		if strings.TrimSpace(f.StartTime) == "" || strings.TrimSpace(f.EndTime) == "" {
			return Invalid(RuleTimeRequired, "startTime", "Start and end time are required")
		}
		if _, err := pricing.DurationMinutes(f.StartTime, f.EndTime); err != nil {
			if errors.Is(err, pricing.ErrInvalidClock) {
				return Invalid(RuleInvalidTimeRange, "startTime", "Times must be HH:MM")
			}
			return Invalid(RuleInvalidTimeRange, "endTime", "End time must be after start time")
		}
		if f.GuestCount < 1 {
			return Invalid(RuleGuestCountOutOfRange, "guestCount", "At least one guest is required")
		}
		if capacity > 0 && f.GuestCount > capacity {
			return Invalid(RuleGuestCountOutOfRange, "guestCount",
				fmt.Sprintf("Guest count must be between 1 and %d", capacity))
		}
		return nil
	}
}

// ListingSteps defines the host listing flow.
func ListingSteps() []Step[models.ListingForm] {
	return []Step[models.ListingForm]{
		{Label: "Basics", Validate: validateBasics},
		{Label: "Pricing", Validate: validatePricing},
		{Label: "Amenities"},
		{Label: "Media", Validate: validateMedia},
		{Label: "Availability"},
		{Label: "Review"},
	}
}

func NewListingWizard() *Wizard[models.ListingForm] {
	w, _ := New(models.NewListingForm(), ListingSteps()...)
	return w
}

func validateBasics(f models.ListingForm) *ValidationError {
	if len([]rune(strings.TrimSpace(f.Title))) <= 2 {
		return Invalid(RuleTitleTooShort, "title", "Title must be at least 3 characters")
	}
	if len([]rune(strings.TrimSpace(f.City))) <= 1 {
		return Invalid(RuleCityTooShort, "city", "City must be at least 2 characters")
	}
	return nil
}

func validatePricing(f models.ListingForm) *ValidationError {
	if f.BasePrice <= 0 {
		return Invalid(RuleBasePriceNotPositive, "basePrice", "Base price must be greater than 0")
	}
	return nil
}

func validateMedia(f models.ListingForm) *ValidationError {
	for _, u := range f.Images {
		if len(strings.TrimSpace(u)) > 5 {
			return nil
		}
	}
	return Invalid(RuleNoImageProvided, "images", "At least one image URL is required")
}
