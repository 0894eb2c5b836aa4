// Package metrics defines and registers the Prometheus metrics of the housing
// engine. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "housing"

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreWritesTotal counts whole-collection writes to the durable store.
// Label:
//   - collection: the store key written (e.g. "listings")
var StoreWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_writes_total",
		Help:      "Total number of whole-collection writes to the durable store.",
	},
	[]string{"collection"},
)

// StoreErrorsTotal counts failed store interactions.
// Labels:
//   - collection: the store key involved
//   - op: "read", "write", "delete" or "decode"
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of failed durable store operations.",
	},
	[]string{"collection", "op"},
)

// ── Identity metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "admin", "not_approved" or "invalid"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Labels:
//   - role: requested role
//   - result: "created" or "email_taken"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// ApprovalsTotal counts approval gate flips and rejections.
// Labels:
//   - entity: "account" or "listing"
//   - decision: "approved" or "rejected"
var ApprovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approvals_total",
		Help:      "Total number of administrator approval decisions.",
	},
	[]string{"entity", "decision"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts newly added listings.
// Label:
//   - type: "private" or "shared"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings added, by type.",
	},
	[]string{"type"},
)

// BookingRequestsTotal counts booking requests entering a status.
// Label:
//   - status: "pending" on creation, then "approved" or "rejected"
var BookingRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_requests_total",
		Help:      "Total number of booking request status changes, by resulting status.",
	},
	[]string{"status"},
)

// ContactMessagesTotal counts contact messages entering a status.
// Label:
//   - status: "unread" on creation, then "read" or "replied"
var ContactMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact message status changes, by resulting status.",
	},
	[]string{"status"},
)

// ImagesEncodedTotal counts image ingest attempts.
// Label:
//   - result: "ok", "too_large", "not_image" or "read_error"
var ImagesEncodedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_encoded_total",
		Help:      "Total number of image to data-URI conversions, by result.",
	},
	[]string{"result"},
)
