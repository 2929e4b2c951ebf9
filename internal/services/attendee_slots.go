package services

import "event-registrations/internal/models"

// AssignSlots numbers every registration seat in the cart. Numbering starts at
// 1 and is shared by all qualifying lines in cart order; lines that are not
// registration tickets are skipped and consume no numbers. The slots point
// into a private copy of lines so callers may reuse their slice.
func AssignSlots(lines []models.CartLine) []models.AttendeeSlot {
	owned := make([]models.CartLine, len(lines))
	copy(owned, lines)

	var slots []models.AttendeeSlot
	next := 1
	for i := range owned {
		line := &owned[i]
		if !line.IsRegistrationTicket() {
			continue
		}
		slots, next = appendLineSlots(slots, line, next)
	}
	return slots
}

// appendLineSlots emits one slot per unit of quantity and returns the next
// free global index.
func appendLineSlots(slots []models.AttendeeSlot, line *models.CartLine, next int) ([]models.AttendeeSlot, int) {
	for pos := 1; pos <= line.Quantity; pos++ {
		slots = append(slots, models.AttendeeSlot{
			GlobalIndex:        next,
			SourceLine:         line,
			PositionWithinLine: pos,
		})
		next++
	}
	return slots, next
}

// groupSlotsByLine splits slots into runs that share a source line, keeping
// slot order. Slots of one line are always contiguous.
func groupSlotsByLine(slots []models.AttendeeSlot) [][]models.AttendeeSlot {
	var runs [][]models.AttendeeSlot
	for i, slot := range slots {
		if i == 0 || slot.SourceLine != slots[i-1].SourceLine {
			runs = append(runs, nil)
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], slot)
	}
	return runs
}
