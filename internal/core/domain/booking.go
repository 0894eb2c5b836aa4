package domain

import "time"

// BookingStatus is the review state of a booking request.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// IsDecision reports whether s is a status an administrator may set.
// Re-deciding an already decided request is not prevented.
func (s BookingStatus) IsDecision() bool {
	return s == BookingApproved || s == BookingRejected
}

// BookingRequest records a student's interest in a listing.
type BookingRequest struct {
	ID        string        `json:"id"`
	StudentID string        `json:"studentId"`
	ListingID string        `json:"listingId"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
