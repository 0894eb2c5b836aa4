package domain

import "time"

// ListingType distinguishes a whole unit from a shared one.
type ListingType string

const (
	ListingPrivate ListingType = "private"
	ListingShared  ListingType = "shared"
)

// Listing is a housing unit offered by an owner. It is hidden from students
// until an administrator approves it.
type Listing struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	Title       string      `json:"title"`
	Address     string      `json:"address"`
	Description string      `json:"description"`
	Rent        int         `json:"rent"`
	Images      []string    `json:"images"`
	Approved    bool        `json:"approved"`
	Type        ListingType `json:"type"`
	CreatedAt   time.Time   `json:"createdAt"`
}
