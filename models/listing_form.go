package models

import "time"

type AmenityKey string

const (
	AmenityWiFi      AmenityKey = "wifi"
	AmenityParking   AmenityKey = "parking"
	AmenityRestrooms AmenityKey = "restrooms"
	AmenitySecurity  AmenityKey = "security"
	AmenityAC        AmenityKey = "ac"
	AmenityKitchen   AmenityKey = "kitchen"
	AmenityProjector AmenityKey = "projector"
	AmenitySound     AmenityKey = "sound"
)

// AmenityLabels lists the amenities a host can offer, in display order.
var AmenityLabels = []struct {
	Key   AmenityKey `json:"key"`
	Label string     `json:"label"`
}{
	{AmenityWiFi, "High-speed WiFi"},
	{AmenityParking, "Parking"},
	{AmenityRestrooms, "Restrooms"},
	{AmenitySecurity, "Security"},
	{AmenityAC, "Air Conditioning"},
	{AmenityKitchen, "Kitchen"},
	{AmenityProjector, "Projector/Screen"},
	{AmenitySound, "Sound System"},
}

// KnownAmenity reports whether key is offered by the listing form.
func KnownAmenity(key AmenityKey) bool {
	for _, a := range AmenityLabels {
		if a.Key == key {
			return true
		}
	}
	return false
}

type Availability struct {
	WeekdaysStart string `json:"weekdaysStart"`
	WeekdaysEnd   string `json:"weekdaysEnd"`
	WeekendsStart string `json:"weekendsStart"`
	WeekendsEnd   string `json:"weekendsEnd"`
}

// ListingForm is the data entered across the host listing wizard.
type ListingForm struct {
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Type             string              `json:"type"`
	Address          string              `json:"address"`
	City             string              `json:"city"`
	Capacity         int                 `json:"capacity"`
	BasePrice        Money               `json:"basePrice"`
	WeekendSurcharge Money               `json:"weekendSurcharge"`
	Images           []string            `json:"images"`
	Amenities        map[AmenityKey]bool `json:"amenities"`
	Availability     Availability        `json:"availability"`
	PricingModel     string              `json:"pricingModel"`
}

func NewListingForm() ListingForm {
	return ListingForm{
		Type:      "Hall",
		Capacity:  20,
		BasePrice: FromMajor(2000),
		Images:    []string{""},
		Amenities: map[AmenityKey]bool{},
		Availability: Availability{
			WeekdaysStart: "09:00",
			WeekdaysEnd:   "18:00",
			WeekendsStart: "10:00",
			WeekendsEnd:   "20:00",
		},
		PricingModel: "flat",
	}
}

// Clone returns a deep copy so successive generations never share images or amenities.
func (f ListingForm) Clone() ListingForm {
	out := f
	out.Images = append([]string(nil), f.Images...)
	out.Amenities = make(map[AmenityKey]bool, len(f.Amenities))
	for k, v := range f.Amenities {
		out.Amenities[k] = v
	}
	return out
}

const ListingPendingReview = "pending_review"

// ListingSubmission is the artifact stored when a host submits the listing wizard.
type ListingSubmission struct {
	ID        string      `json:"id"`
	Listing   ListingForm `json:"listing"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}
