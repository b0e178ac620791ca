package models

import "time"

type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// SpaceSummary is the snapshot of a space kept on a booking record.
type SpaceSummary struct {
	Title    string `json:"title" bson:"title"`
	Image    string `json:"image" bson:"image"`
	Location string `json:"location" bson:"location"`
}

// BookingRecord represents a confirmed reservation. Records are created once and never mutated.
type BookingRecord struct {
	ID              string        `json:"id" bson:"id"`
	Space           SpaceSummary  `json:"space" bson:"space"`
	Date            string        `json:"date" bson:"date"` // "YYYY-MM-DD"
	Time            string        `json:"time" bson:"time"` // "HH:MM - HH:MM"
	GuestCount      int           `json:"guestCount" bson:"guestCount"`
	Services        []string      `json:"services,omitempty" bson:"services,omitempty"`
	Status          BookingStatus `json:"status" bson:"status"`
	Amount          Money         `json:"amount" bson:"amount"`
	Currency        string        `json:"currency" bson:"currency"`
	ContractAddress string        `json:"smartContract,omitempty" bson:"smartContract,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
}
