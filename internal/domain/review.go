package domain

import "time"

type Review struct {
	ID            int64
	PropertyID    int64 // references Property.ID by convention, no FK constraint
	ReviewerEmail string
	Text          string
	Rating        float64
	PropertyName  string // denormalized from the property at write time
	Thumbnail     string // denormalized from the property's image
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
