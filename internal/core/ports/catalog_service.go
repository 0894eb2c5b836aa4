package ports

import (
	"context"

	"github.com/sakan/student-housing/internal/core/domain"
)

// NewListingInput carries the owner supplied fields of a listing. The engine
// stores whatever it is given; callers reject empty images beforehand.
type NewListingInput struct {
	OwnerID     string             `json:"ownerId"     validate:"required"`
	Title       string             `json:"title"       validate:"required"`
	Address     string             `json:"address"     validate:"required"`
	Description string             `json:"description" validate:"required"`
	Rent        int                `json:"rent"        validate:"gt=0"`
	Images      []string           `json:"images"      validate:"min=1,max=5,dive,required"`
	Type        domain.ListingType `json:"type"        validate:"required,oneof=private shared"`
}

// ListingFilter narrows Listings. Zero values disable a predicate; the
// enabled predicates combine with AND.
type ListingFilter struct {
	ApprovedOnly bool
	OwnerID      string
	Type         domain.ListingType
	MaxRent      int    // <= 0 means no limit
	Query        string // case-insensitive substring of title, address or description
}

// BookingRequestFilter narrows BookingRequests. Empty fields match anything.
type BookingRequestFilter struct {
	Status    domain.BookingStatus
	StudentID string
	ListingID string
}

// NewContactMessageInput carries a contact form submission.
type NewContactMessageInput struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CatalogService owns listings, comments, booking requests and contact
// messages. Mutations keyed by id are silent no-ops when the id is unknown.
type CatalogService interface {
	AddListing(ctx context.Context, in NewListingInput) (*domain.Listing, error)
	ApproveListing(ctx context.Context, id string) error
	ListingByID(ctx context.Context, id string) (domain.Listing, bool, error)
	Listings(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	PendingListings(ctx context.Context) ([]domain.Listing, error)

	AddComment(ctx context.Context, studentID, listingID, content string) (*domain.Comment, error)
	CommentsFor(ctx context.Context, listingID string) ([]domain.Comment, error)

	AddBookingRequest(ctx context.Context, studentID, listingID string) (*domain.BookingRequest, error)
	SetBookingRequestStatus(ctx context.Context, id string, status domain.BookingStatus) error
	BookingRequestByID(ctx context.Context, id string) (domain.BookingRequest, bool, error)
	BookingRequests(ctx context.Context, filter BookingRequestFilter) ([]domain.BookingRequest, error)

	AddContactMessage(ctx context.Context, in NewContactMessageInput) (*domain.ContactMessage, error)
	SetContactMessageStatus(ctx context.Context, id string, status domain.ContactStatus) error
	ContactMessages(ctx context.Context, status domain.ContactStatus) ([]domain.ContactMessage, error)

	EnsureSeeded(ctx context.Context) (bool, error)
}
