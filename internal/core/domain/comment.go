package domain

import "time"

// Comment is an append-only remark a student leaves on a listing.
type Comment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	ListingID string    `json:"listingId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
