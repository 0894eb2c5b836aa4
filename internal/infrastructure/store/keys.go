package store

// Store keys. Each collection key holds the JSON array of its records;
// KeyCurrentSession holds a single account record.
const (
	KeyAccounts        = "accounts"
	KeyListings        = "listings"
	KeyComments        = "comments"
	KeyBookingRequests = "booking-requests"
	KeyContactMessages = "contact-messages"
	KeyCurrentSession  = "current-session"
)
