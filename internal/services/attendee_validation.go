package services

import (
	"net/url"
	"strings"

	"event-registrations/internal/models"
)

// ValidateAttendees checks that every slot has a non-blank name and email.
// All slots are checked; one failure is returned per missing field, in slot
// order. Last name is collected but not required. Values are not modified.
func ValidateAttendees(slots []models.AttendeeSlot, values models.SubmittedValues) []models.ValidationFailure {
	var failures []models.ValidationFailure
	for _, slot := range slots {
		for _, kind := range []models.FieldKind{models.FieldName, models.FieldEmail} {
			if strings.TrimSpace(values.Get(slot.GlobalIndex, kind)) == "" {
				failures = append(failures, models.ValidationFailure{SlotIndex: slot.GlobalIndex, Field: kind})
			}
		}
	}
	return failures
}

// ReportFailures sends one notice per validation failure
func ReportFailures(reporter NoticeReporter, failures []models.ValidationFailure) {
	for _, failure := range failures {
		reporter.ReportUserFacingError(failure.Message())
	}
}

// ParseSubmittedValues picks the attendee fields out of a submitted form.
// Unrelated form fields are ignored.
func ParseSubmittedValues(form url.Values) models.SubmittedValues {
	values := make(models.SubmittedValues)
	for id, raw := range form {
		key, ok := models.ParseFieldKey(id)
		if !ok || len(raw) == 0 {
			continue
		}
		values[key] = raw[0]
	}
	return values
}
