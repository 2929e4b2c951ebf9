package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"event-registrations/internal/models"
)

// AttendeeDelimiter separates the tokens of an encoded attendee blob
const AttendeeDelimiter = ","

// EncodeAttendees joins the records of one registration group as
// name,email,name,email,... in the given order. Values are written as is;
// callers sanitize them first with SanitizeText, which also removes the
// delimiter.
func EncodeAttendees(records []models.AttendeeRecord) string {
	tokens := make([]string, 0, 2*len(records))
	for _, record := range records {
		tokens = append(tokens, record.Name, record.Email)
	}
	return strings.Join(tokens, AttendeeDelimiter)
}

// DecodeAttendees splits a stored blob back into (name, email) pairs. An odd
// number of tokens yields ErrMalformedBlob. An empty blob has no attendees.
func DecodeAttendees(blob string) ([]models.AttendeePair, error) {
	if blob == "" {
		return nil, nil
	}

	tokens := strings.Split(blob, AttendeeDelimiter)
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: %d tokens", models.ErrMalformedBlob, len(tokens))
	}

	pairs := make([]models.AttendeePair, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		pairs = append(pairs, models.AttendeePair{Name: tokens[i], Email: tokens[i+1]})
	}
	return pairs, nil
}

var (
	htmlTagRegex  = regexp.MustCompile(`<[^>]*>`)
	octetRegex    = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// SanitizeText cleans a single-line text input: tags and percent-encoded
// octets are stripped, control characters and line breaks become spaces,
// runs of whitespace collapse and the result is trimmed. Commas are removed
// because they delimit stored attendee blobs.
func SanitizeText(value string) string {
	value = htmlTagRegex.ReplaceAllString(value, "")
	value = octetRegex.ReplaceAllString(value, "")
	value = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, value)
	value = strings.ReplaceAll(value, AttendeeDelimiter, " ")
	value = whitespaceRun.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}
