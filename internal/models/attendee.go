package models

import (
	"fmt"
	"strconv"
	"strings"
)

// GroupKeySeparator joins a product title and its variant date label
const GroupKeySeparator = " - "

// FieldKind identifies one of the attendee input fields
type FieldKind string

const (
	FieldName     FieldKind = "name"
	FieldLastName FieldKind = "last_name"
	FieldEmail    FieldKind = "email"
)

// AttendeeFieldKinds lists the attendee fields in form order
var AttendeeFieldKinds = []FieldKind{FieldName, FieldLastName, FieldEmail}

const fieldKeyPrefix = "attendee_"

// AttendeeSlot represents one registration seat in the cart
type AttendeeSlot struct {
	GlobalIndex        int       `json:"global_index"`
	SourceLine         *CartLine `json:"-"`
	PositionWithinLine int       `json:"position_within_line"`
}

// AttendeeRecord holds the submitted details of one attendee
type AttendeeRecord struct {
	Slot     AttendeeSlot `json:"slot"`
	Name     string       `json:"name"`
	LastName string       `json:"last_name"`
	Email    string       `json:"email"`
}

// AttendeePair is a decoded (name, email) entry of a stored blob
type AttendeePair struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FieldKey addresses one input field of one attendee slot
type FieldKey struct {
	Slot int
	Kind FieldKind
}

// SubmittedValues maps field keys to raw submitted values
type SubmittedValues map[FieldKey]string

// String returns the form field identifier, e.g. attendee_email_3
func (k FieldKey) String() string {
	return fmt.Sprintf("%s%s_%d", fieldKeyPrefix, k.Kind, k.Slot)
}

// ParseFieldKey parses a form field identifier back into a FieldKey
func ParseFieldKey(id string) (FieldKey, bool) {
	rest, ok := strings.CutPrefix(id, fieldKeyPrefix)
	if !ok {
		return FieldKey{}, false
	}

	sep := strings.LastIndex(rest, "_")
	if sep <= 0 {
		return FieldKey{}, false
	}

	slot, err := strconv.Atoi(rest[sep+1:])
	if err != nil || slot < 1 {
		return FieldKey{}, false
	}

	kind := FieldKind(rest[:sep])
	switch kind {
	case FieldName, FieldLastName, FieldEmail:
		return FieldKey{Slot: slot, Kind: kind}, true
	default:
		return FieldKey{}, false
	}
}

// Get returns the submitted value for a slot field
func (v SubmittedValues) Get(slot int, kind FieldKind) string {
	return v[FieldKey{Slot: slot, Kind: kind}]
}

// ValidationFailure reports a missing required field for one slot
type ValidationFailure struct {
	SlotIndex int       `json:"slot_index"`
	Field     FieldKind `json:"field"`
}

// FieldKey returns the key of the failing field
func (f ValidationFailure) FieldKey() FieldKey {
	return FieldKey{Slot: f.SlotIndex, Kind: f.Field}
}

// Message returns the notice shown to the shopper
func (f ValidationFailure) Message() string {
	switch f.Field {
	case FieldEmail:
		return fmt.Sprintf("Please enter a correct email to attendee #%d", f.SlotIndex)
	case FieldLastName:
		return fmt.Sprintf("Please enter a correct surname to attendee #%d", f.SlotIndex)
	default:
		return fmt.Sprintf("Please enter a correct name to attendee #%d", f.SlotIndex)
	}
}

// RegistrationGroupKey builds the key under which a line's attendees are stored
func RegistrationGroupKey(line CartLine) string {
	return GroupKey(line.ParentProductTitle, line.VariantDateLabel)
}

// GroupKey joins a title and an optional date label
func GroupKey(title, dateLabel string) string {
	if dateLabel == "" {
		return title
	}
	return title + GroupKeySeparator + dateLabel
}
