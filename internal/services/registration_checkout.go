package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"event-registrations/internal/models"
	"event-registrations/internal/monitoring"
)

// CheckoutRequest is a submitted checkout form
type CheckoutRequest struct {
	CartID       string
	BillingEmail string
	BillingName  string
	Values       models.SubmittedValues
}

// CheckoutResult describes the outcome of a checkout submission. When
// Failures is non-empty nothing was written.
type CheckoutResult struct {
	Order            *models.Order
	Failures         []models.ValidationFailure
	ProvisionedUsers []int
}

// Accepted returns true if the submission passed validation
func (r *CheckoutResult) Accepted() bool {
	return len(r.Failures) == 0 && r.Order != nil
}

// AttendeeGroupView is one registration group of an order as shown to admins
type AttendeeGroupView struct {
	Key       string
	Title     string
	DateLabel string
	Attendees []models.AttendeePair
	Malformed bool
}

// Heading returns "Title - Date" or just the title
func (v AttendeeGroupView) Heading() string {
	return models.GroupKey(v.Title, v.DateLabel)
}

// RegistrationCheckoutService ties attendee numbering, validation, storage and
// provisioning into the checkout flow
type RegistrationCheckoutService struct {
	carts       CartSource
	orders      OrderStore
	provisioner *RegistrationProvisioner
}

// NewRegistrationCheckoutService creates a new registration checkout service
func NewRegistrationCheckoutService(carts CartSource, orders OrderStore, provisioner *RegistrationProvisioner) *RegistrationCheckoutService {
	return &RegistrationCheckoutService{
		carts:       carts,
		orders:      orders,
		provisioner: provisioner,
	}
}

// AttendeeSection describes the attendee inputs for the session cart. It
// returns nil when the cart holds no registration tickets.
func (s *RegistrationCheckoutService) AttendeeSection(ctx context.Context, cartID string, values models.SubmittedValues) (*AttendeeSection, error) {
	lines, err := s.carts.GetCartLines(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return DescribeAttendeeSection(AssignSlots(lines), values), nil
}

// SubmitCheckout validates the attendee and billing fields and, when they are
// complete, creates the order with its attendee data in one transaction and
// then provisions attendee accounts. Each validation failure is reported
// separately and no data is written.
func (s *RegistrationCheckoutService) SubmitCheckout(ctx context.Context, req *CheckoutRequest, notices NoticeReporter) (*CheckoutResult, error) {
	lines, err := s.carts.GetCartLines(ctx, req.CartID)
	if err != nil {
		monitoring.TrackCheckout(monitoring.CheckoutError)
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		monitoring.TrackCheckout(monitoring.CheckoutError)
		return nil, fmt.Errorf("%w: cart is empty", models.ErrInvalidInput)
	}

	orderReq := &models.OrderCreateRequest{
		BillingEmail: strings.TrimSpace(req.BillingEmail),
		BillingName:  strings.TrimSpace(req.BillingName),
		Status:       models.OrderPending,
	}

	slots := AssignSlots(lines)
	failures := ValidateAttendees(slots, req.Values)
	billingErr := orderReq.Validate()

	if len(failures) > 0 || billingErr != nil {
		if billingErr != nil {
			notices.ReportUserFacingError(billingErr.Error())
		}
		ReportFailures(notices, failures)
		for _, failure := range failures {
			monitoring.TrackValidationFailure(string(failure.Field))
		}
		monitoring.TrackCheckout(monitoring.CheckoutRejected)
		return &CheckoutResult{Failures: failures}, nil
	}

	records := BuildAttendeeRecords(slots, req.Values)

	orderLines := make([]models.OrderLine, 0, len(lines))
	for i, line := range lines {
		orderLines = append(orderLines, models.NewOrderLine(i+1, line))
	}

	order, err := s.orders.CreateWithAttendees(orderReq, orderLines, BuildAttendeeMeta(records))
	if err != nil {
		monitoring.TrackCheckout(monitoring.CheckoutError)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	result := &CheckoutResult{Order: order}
	for _, lineRecords := range groupRecordsByLine(records) {
		title := lineRecords[0].Slot.SourceLine.ParentProductTitle
		result.ProvisionedUsers = append(result.ProvisionedUsers, s.provisioner.ProvisionAttendees(title, lineRecords)...)
	}

	monitoring.TrackCheckout(monitoring.CheckoutCompleted)
	return result, nil
}

// AttendeesForOrder returns the stored attendee groups of an order in line
// order. A group whose blob cannot be decoded is flagged as malformed and the
// remaining groups are still returned.
func (s *RegistrationCheckoutService) AttendeesForOrder(orderID int) ([]AttendeeGroupView, error) {
	lines, err := s.orders.GetLines(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}

	var views []AttendeeGroupView
	seen := make(map[string]bool)
	for _, line := range lines {
		key := line.GroupKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		blob, ok, err := s.orders.GetMeta(orderID, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load attendees for %q: %w", key, err)
		}
		if !ok || blob == "" {
			continue
		}

		view := AttendeeGroupView{Key: key, Title: line.ParentProductTitle, DateLabel: line.VariantDateLabel}
		pairs, err := DecodeAttendees(blob)
		if errors.Is(err, models.ErrMalformedBlob) {
			log.Printf("Order %d: attendee data for %q is malformed: %v", orderID, key, err)
			monitoring.TrackMalformedBlob()
			view.Malformed = true
		} else {
			view.Attendees = pairs
		}
		views = append(views, view)
	}
	return views, nil
}

// BuildAttendeeRecords collects the sanitized submitted values of every slot
func BuildAttendeeRecords(slots []models.AttendeeSlot, values models.SubmittedValues) []models.AttendeeRecord {
	records := make([]models.AttendeeRecord, 0, len(slots))
	for _, slot := range slots {
		records = append(records, models.AttendeeRecord{
			Slot:     slot,
			Name:     SanitizeText(values.Get(slot.GlobalIndex, models.FieldName)),
			LastName: SanitizeText(values.Get(slot.GlobalIndex, models.FieldLastName)),
			Email:    SanitizeText(values.Get(slot.GlobalIndex, models.FieldEmail)),
		})
	}
	return records
}

// BuildAttendeeMeta encodes records into one blob per registration group key.
// Records of lines sharing a key are stored together in global index order.
func BuildAttendeeMeta(records []models.AttendeeRecord) map[string]string {
	byKey := make(map[string][]models.AttendeeRecord)
	for _, record := range records {
		key := models.RegistrationGroupKey(*record.Slot.SourceLine)
		byKey[key] = append(byKey[key], record)
	}

	meta := make(map[string]string, len(byKey))
	for key, group := range byKey {
		meta[key] = EncodeAttendees(group)
	}
	return meta
}

func groupRecordsByLine(records []models.AttendeeRecord) [][]models.AttendeeRecord {
	var runs [][]models.AttendeeRecord
	for i, record := range records {
		if i == 0 || record.Slot.SourceLine != records[i-1].Slot.SourceLine {
			runs = append(runs, nil)
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], record)
	}
	return runs
}
