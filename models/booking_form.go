package models

type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingForm is the data entered across the booking wizard.
type BookingForm struct {
	Date            string      `json:"date"`
	StartTime       string      `json:"startTime"`
	EndTime         string      `json:"endTime"`
	GuestCount      int         `json:"guestCount"`
	SpecialRequests string      `json:"specialRequests"`
	ContactInfo     ContactInfo `json:"contactInfo"`
}

const DefaultGuestCount = 50

func NewBookingForm() BookingForm {
	return BookingForm{GuestCount: DefaultGuestCount}
}

// Clone returns an independent copy. BookingForm holds no reference types.
func (f BookingForm) Clone() BookingForm {
	return f
}

// TimeRange formats the booked window as shown on records, e.g. "10:00 - 14:00".
func (f BookingForm) TimeRange() string {
	return f.StartTime + " - " + f.EndTime
}
