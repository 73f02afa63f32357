package domain

import "time"

type Property struct {
	ID          int64
	VendorEmail string
	Name        string
	Price       float64
	Image       string // URI of the listing thumbnail
	Description string
	Category    string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time // nil until first update
}

// PropertyUpdate carries the mutable fields of a listing. The vendor
// email and creation timestamp never change after insert.
type PropertyUpdate struct {
	Name        string
	Price       float64
	Image       string
	Description string
	Category    string
	Location    string
}

// UpdateResult reports how many rows each leg of the update touched.
// The two legs are independent statements, so the counts can disagree
// with expectations after a partial failure.
type UpdateResult struct {
	PropertiesModified int64
	ReviewsModified    int64
}

type DeleteResult struct {
	PropertiesDeleted int64
	ReviewsDeleted    int64
}
