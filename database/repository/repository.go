package repository

import (
	listingsRepo "flexispace/database/repository/listings"
	recordsRepo "flexispace/database/repository/records"
)

// Re-export the BookingRecordRepository interface and constructors.
type BookingRecordRepository = recordsRepo.BookingRecordRepository

var (
	NewKVRecordRepo    = recordsRepo.NewKVRecordRepo
	NewMongoRecordRepo = recordsRepo.NewMongoRecordRepo
)

// Re-export the ListingRepository interface and constructor.
type ListingRepository = listingsRepo.ListingRepository

var NewKVListingRepo = listingsRepo.NewKVListingRepo
