package services

import (
	"fmt"

	"event-registrations/internal/models"
)

const (
	AttendeeSectionTitle       = "Attendees details"
	AttendeeSectionDescription = "Provide the details of each participant"
)

// FieldDescriptor describes one input to be rendered by the form renderer
type FieldDescriptor struct {
	ID           string
	Key          models.FieldKey
	Type         string
	Label        string
	Placeholder  string
	CSSClasses   []string
	CurrentValue string
}

// AttendeeFields holds the inputs of one attendee slot
type AttendeeFields struct {
	GlobalIndex int
	Position    int
	Heading     string
	Fields      []FieldDescriptor
}

// FieldGroup holds the attendee inputs of one cart line
type FieldGroup struct {
	Title     string
	DateLabel string
	Attendees []AttendeeFields
}

// AttendeeSection is the wrapper rendered around all field groups
type AttendeeSection struct {
	Title       string
	Description string
	Groups      []FieldGroup
}

type fieldTemplate struct {
	inputType   string
	label       string
	placeholder string
	cssClass    string
}

var attendeeFieldTemplates = map[models.FieldKind]fieldTemplate{
	models.FieldName:     {inputType: "text", label: "Name", placeholder: "Mary Anna", cssClass: "attendee-name"},
	models.FieldLastName: {inputType: "text", label: "Surname", placeholder: "Smith", cssClass: "attendee-last-name"},
	models.FieldEmail:    {inputType: "email", label: "Email", placeholder: "mary@anna.com.br", cssClass: "attendee-email"},
}

// DescribeFieldGroups returns one group per cart line with the name, last
// name and email inputs of each of its slots. No slots means no groups.
func DescribeFieldGroups(slots []models.AttendeeSlot) []FieldGroup {
	runs := groupSlotsByLine(slots)
	if len(runs) == 0 {
		return nil
	}

	groups := make([]FieldGroup, 0, len(runs))
	for _, run := range runs {
		line := run[0].SourceLine
		group := FieldGroup{
			Title:     line.ParentProductTitle,
			DateLabel: line.VariantDateLabel,
			Attendees: make([]AttendeeFields, 0, len(run)),
		}
		for _, slot := range run {
			group.Attendees = append(group.Attendees, describeSlot(slot))
		}
		groups = append(groups, group)
	}
	return groups
}

// DescribeAttendeeSection wraps the field groups of slots and fills in any
// previously submitted values. It returns nil when there is nothing to render.
func DescribeAttendeeSection(slots []models.AttendeeSlot, values models.SubmittedValues) *AttendeeSection {
	groups := DescribeFieldGroups(slots)
	if len(groups) == 0 {
		return nil
	}

	for g := range groups {
		for a := range groups[g].Attendees {
			fields := groups[g].Attendees[a].Fields
			for f := range fields {
				fields[f].CurrentValue = values[fields[f].Key]
			}
		}
	}

	return &AttendeeSection{
		Title:       AttendeeSectionTitle,
		Description: AttendeeSectionDescription,
		Groups:      groups,
	}
}

func describeSlot(slot models.AttendeeSlot) AttendeeFields {
	fields := make([]FieldDescriptor, 0, len(models.AttendeeFieldKinds))
	for _, kind := range models.AttendeeFieldKinds {
		tmpl := attendeeFieldTemplates[kind]
		key := models.FieldKey{Slot: slot.GlobalIndex, Kind: kind}
		fields = append(fields, FieldDescriptor{
			ID:          key.String(),
			Key:         key,
			Type:        tmpl.inputType,
			Label:       tmpl.label,
			Placeholder: tmpl.placeholder,
			CSSClasses:  []string{tmpl.cssClass, "form-row-wide"},
		})
	}

	return AttendeeFields{
		GlobalIndex: slot.GlobalIndex,
		Position:    slot.PositionWithinLine,
		Heading:     fmt.Sprintf("Attendee #%d", slot.PositionWithinLine),
		Fields:      fields,
	}
}
