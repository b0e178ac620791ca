package models

// Space is a bookable venue. Read-only input to the booking engine.
type Space struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Image     string   `json:"image"`
	Location  string   `json:"location"`
	City      string   `json:"city"`
	Type      string   `json:"type"`
	BasePrice Money    `json:"basePrice"` // per hour
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities,omitempty"`
	Rating    float64  `json:"rating"`
}

// Summary returns the denormalized fields stored on a booking.
func (s Space) Summary() SpaceSummary {
	return SpaceSummary{Title: s.Title, Image: s.Image, Location: s.Location}
}
