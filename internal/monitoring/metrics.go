package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	checkoutSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_checkout_submissions_total",
			Help: "Checkout submissions by outcome",
		},
		[]string{"outcome"},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_validation_failures_total",
			Help: "Missing attendee fields reported to shoppers",
		},
		[]string{"field"},
	)

	attendeeProvisioning = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_attendee_provisioning_total",
			Help: "Attendee account provisioning by outcome",
		},
		[]string{"outcome"},
	)

	groupMemberships = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_group_memberships_total",
			Help: "Group membership assignments by status",
		},
		[]string{"status"},
	)

	malformedBlobs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_malformed_blobs_total",
			Help: "Stored attendee blobs that could not be decoded",
		},
	)
)

// Checkout outcomes
const (
	CheckoutRejected  = "rejected"
	CheckoutCompleted = "completed"
	CheckoutError     = "error"
)

// Provisioning outcomes
const (
	ProvisionExisting = "existing"
	ProvisionCreated  = "created"
	ProvisionFailed   = "failed"
)

// TrackCheckout counts a checkout submission
func TrackCheckout(outcome string) {
	checkoutSubmissions.WithLabelValues(outcome).Inc()
}

// TrackValidationFailure counts one missing attendee field
func TrackValidationFailure(field string) {
	validationFailures.WithLabelValues(field).Inc()
}

// TrackProvisioning counts one attendee provisioning attempt
func TrackProvisioning(outcome string) {
	attendeeProvisioning.WithLabelValues(outcome).Inc()
}

// TrackGroupMembership counts one group membership assignment
func TrackGroupMembership(status string) {
	groupMemberships.WithLabelValues(status).Inc()
}

// TrackMalformedBlob counts an undecodable attendee blob
func TrackMalformedBlob() {
	malformedBlobs.Inc()
}

// Handler exposes the registered metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
