package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/core/ports"
	"github.com/sakan/student-housing/internal/infrastructure/store"
	"github.com/sakan/student-housing/internal/metrics"
)

// CatalogService implements listings, comments, booking requests and
// contact messages over the durable store. It takes actor ids from the
// caller and never consults the session.
type CatalogService struct {
	listings *store.Collection[domain.Listing]
	comments *store.Collection[domain.Comment]
	requests *store.Collection[domain.BookingRequest]
	messages *store.Collection[domain.ContactMessage]
	clock    clockwork.Clock
	log      zerolog.Logger
}

var _ ports.CatalogService = (*CatalogService)(nil)

func NewCatalogService(kv ports.KeyValueStore, clock clockwork.Clock, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		listings: store.NewCollection[domain.Listing](kv, store.KeyListings),
		comments: store.NewCollection[domain.Comment](kv, store.KeyComments),
		requests: store.NewCollection[domain.BookingRequest](kv, store.KeyBookingRequests),
		messages: store.NewCollection[domain.ContactMessage](kv, store.KeyContactMessages),
		clock:    clock,
		log:      log,
	}
}

// --- Listings ---

// AddListing stores a new unapproved listing exactly as given.
func (s *CatalogService) AddListing(ctx context.Context, in ports.NewListingInput) (*domain.Listing, error) {
	listing := domain.Listing{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Address:     in.Address,
		Description: in.Description,
		Rent:        in.Rent,
		Images:      slices.Clone(in.Images),
		Approved:    false,
		Type:        in.Type,
		CreatedAt:   s.clock.Now().UTC(),
	}

	err := s.listings.Update(ctx, func(items []domain.Listing) ([]domain.Listing, bool) {
		return append(items, listing), true
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to store listing")
		return nil, fmt.Errorf("add listing: %w", err)
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(listing.Type)).Inc()
	s.log.Info().Str("listing_id", listing.ID).Str("owner_id", listing.OwnerID).Msg("listing added")
	return &listing, nil
}

// ApproveListing makes listing id visible to students. Unknown ids and
// already approved listings are no-ops.
func (s *CatalogService) ApproveListing(ctx context.Context, id string) error {
	approved := false
	err := s.listings.Update(ctx, func(items []domain.Listing) ([]domain.Listing, bool) {
		i := slices.IndexFunc(items, func(l domain.Listing) bool { return l.ID == id })
		if i < 0 || items[i].Approved {
			return items, false
		}
		l := items[i]
		l.Approved = true
		items[i] = l
		approved = true
		return items, true
	})
	if err != nil {
		return fmt.Errorf("approve listing: %w", err)
	}
	if approved {
		metrics.ApprovalsTotal.WithLabelValues("listing", "approved").Inc()
		s.log.Info().Str("listing_id", id).Msg("listing approved")
	}
	return nil
}

func (s *CatalogService) ListingByID(ctx context.Context, id string) (domain.Listing, bool, error) {
	items, err := s.listings.Load(ctx)
	if err != nil {
		return domain.Listing{}, false, fmt.Errorf("get listing: %w", err)
	}
	i := slices.IndexFunc(items, func(l domain.Listing) bool { return l.ID == id })
	if i < 0 {
		return domain.Listing{}, false, nil
	}
	return items[i], true, nil
}

// Listings returns the listings matching every enabled predicate of f, in
// insertion order.
func (s *CatalogService) Listings(ctx context.Context, f ports.ListingFilter) ([]domain.Listing, error) {
	items, err := s.listings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	query := strings.ToLower(f.Query)
	out := make([]domain.Listing, 0, len(items))
	for _, l := range items {
		if matchesListing(l, f, query) {
			out = append(out, l)
		}
	}
	return out, nil
}

func matchesListing(l domain.Listing, f ports.ListingFilter, query string) bool {
	if f.ApprovedOnly && !l.Approved {
		return false
	}
	if f.OwnerID != "" && l.OwnerID != f.OwnerID {
		return false
	}
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.MaxRent > 0 && l.Rent > f.MaxRent {
		return false
	}
	if query != "" {
		return strings.Contains(strings.ToLower(l.Title), query) ||
			strings.Contains(strings.ToLower(l.Address), query) ||
			strings.Contains(strings.ToLower(l.Description), query)
	}
	return true
}

// PendingListings returns listings awaiting administrator approval.
func (s *CatalogService) PendingListings(ctx context.Context) ([]domain.Listing, error) {
	items, err := s.listings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending listings: %w", err)
	}
	out := make([]domain.Listing, 0)
	for _, l := range items {
		if !l.Approved {
			out = append(out, l)
		}
	}
	return out, nil
}

// EnsureSeeded stores the sample listings when the listings collection is
// absent or empty, and reports whether it did. Once any listing exists it
// never fires again.
func (s *CatalogService) EnsureSeeded(ctx context.Context) (bool, error) {
	seeded := false
	err := s.listings.Update(ctx, func(items []domain.Listing) ([]domain.Listing, bool) {
		if len(items) > 0 {
			return items, false
		}
		seeded = true
		return sampleListings(s.clock.Now().UTC()), true
	})
	if err != nil {
		return false, fmt.Errorf("seed listings: %w", err)
	}
	if seeded {
		s.log.Info().Msg("catalog seeded with sample listings")
	}
	return seeded, nil
}

// --- Comments ---

// AddComment appends a comment. Neither the student nor the listing is
// checked for existence.
func (s *CatalogService) AddComment(ctx context.Context, studentID, listingID, content string) (*domain.Comment, error) {
	comment := domain.Comment{
		ID:        uuid.NewString(),
		StudentID: studentID,
		ListingID: listingID,
		Content:   content,
		CreatedAt: s.clock.Now().UTC(),
	}

	err := s.comments.Update(ctx, func(items []domain.Comment) ([]domain.Comment, bool) {
		return append(items, comment), true
	})
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	s.log.Info().Str("comment_id", comment.ID).Str("listing_id", listingID).Msg("comment added")
	return &comment, nil
}

// CommentsFor returns the comments on listingID in insertion order.
func (s *CatalogService) CommentsFor(ctx context.Context, listingID string) ([]domain.Comment, error) {
	items, err := s.comments.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	out := make([]domain.Comment, 0)
	for _, c := range items {
		if c.ListingID == listingID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- Booking requests ---

func (s *CatalogService) AddBookingRequest(ctx context.Context, studentID, listingID string) (*domain.BookingRequest, error) {
	req := domain.BookingRequest{
		ID:        uuid.NewString(),
		StudentID: studentID,
		ListingID: listingID,
		Status:    domain.BookingPending,
		CreatedAt: s.clock.Now().UTC(),
	}

	err := s.requests.Update(ctx, func(items []domain.BookingRequest) ([]domain.BookingRequest, bool) {
		return append(items, req), true
	})
	if err != nil {
		return nil, fmt.Errorf("add booking request: %w", err)
	}

	metrics.BookingRequestsTotal.WithLabelValues(string(domain.BookingPending)).Inc()
	s.log.Info().Str("request_id", req.ID).Str("listing_id", listingID).Msg("booking request added")
	return &req, nil
}

// SetBookingRequestStatus records an approve/reject decision. Only approved
// and rejected are accepted; re-deciding is allowed. Unknown ids are no-ops.
func (s *CatalogService) SetBookingRequestStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if !status.IsDecision() {
		return fmt.Errorf("%w: booking request %q", domain.ErrInvalidStatus, status)
	}

	changed := false
	err := s.requests.Update(ctx, func(items []domain.BookingRequest) ([]domain.BookingRequest, bool) {
		i := slices.IndexFunc(items, func(r domain.BookingRequest) bool { return r.ID == id })
		if i < 0 || items[i].Status == status {
			return items, false
		}
		r := items[i]
		r.Status = status
		items[i] = r
		changed = true
		return items, true
	})
	if err != nil {
		return fmt.Errorf("set booking request status: %w", err)
	}
	if changed {
		metrics.BookingRequestsTotal.WithLabelValues(string(status)).Inc()
		s.log.Info().Str("request_id", id).Str("status", string(status)).Msg("booking request updated")
	}
	return nil
}

func (s *CatalogService) BookingRequestByID(ctx context.Context, id string) (domain.BookingRequest, bool, error) {
	items, err := s.requests.Load(ctx)
	if err != nil {
		return domain.BookingRequest{}, false, fmt.Errorf("get booking request: %w", err)
	}
	i := slices.IndexFunc(items, func(r domain.BookingRequest) bool { return r.ID == id })
	if i < 0 {
		return domain.BookingRequest{}, false, nil
	}
	return items[i], true, nil
}

func (s *CatalogService) BookingRequests(ctx context.Context, f ports.BookingRequestFilter) ([]domain.BookingRequest, error) {
	items, err := s.requests.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list booking requests: %w", err)
	}
	out := make([]domain.BookingRequest, 0, len(items))
	for _, r := range items {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.StudentID != "" && r.StudentID != f.StudentID {
			continue
		}
		if f.ListingID != "" && r.ListingID != f.ListingID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// --- Contact messages ---

func (s *CatalogService) AddContactMessage(ctx context.Context, in ports.NewContactMessageInput) (*domain.ContactMessage, error) {
	msg := domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    domain.ContactUnread,
		CreatedAt: s.clock.Now().UTC(),
	}

	err := s.messages.Update(ctx, func(items []domain.ContactMessage) ([]domain.ContactMessage, bool) {
		return append(items, msg), true
	})
	if err != nil {
		return nil, fmt.Errorf("add contact message: %w", err)
	}

	metrics.ContactMessagesTotal.WithLabelValues(string(domain.ContactUnread)).Inc()
	s.log.Info().Str("message_id", msg.ID).Msg("contact message received")
	return &msg, nil
}

// SetContactMessageStatus marks a message read or replied. Ordering between
// the two is not enforced. Unknown ids are no-ops.
func (s *CatalogService) SetContactMessageStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	if !status.IsProgress() {
		return fmt.Errorf("%w: contact message %q", domain.ErrInvalidStatus, status)
	}

	changed := false
	err := s.messages.Update(ctx, func(items []domain.ContactMessage) ([]domain.ContactMessage, bool) {
		i := slices.IndexFunc(items, func(m domain.ContactMessage) bool { return m.ID == id })
		if i < 0 || items[i].Status == status {
			return items, false
		}
		m := items[i]
		m.Status = status
		items[i] = m
		changed = true
		return items, true
	})
	if err != nil {
		return fmt.Errorf("set contact message status: %w", err)
	}
	if changed {
		metrics.ContactMessagesTotal.WithLabelValues(string(status)).Inc()
		s.log.Info().Str("message_id", id).Str("status", string(status)).Msg("contact message updated")
	}
	return nil
}

// ContactMessages returns messages with the given status, or all of them
// when status is empty.
func (s *CatalogService) ContactMessages(ctx context.Context, status domain.ContactStatus) ([]domain.ContactMessage, error) {
	items, err := s.messages.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	if status == "" {
		return items, nil
	}
	out := make([]domain.ContactMessage, 0)
	for _, m := range items {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}
