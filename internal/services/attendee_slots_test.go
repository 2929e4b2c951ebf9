package services

import (
	"testing"

	"event-registrations/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSlots(t *testing.T) {
	tests := []struct {
		name          string
		lines         []models.CartLine
		wantGlobal    []int
		wantPositions []int
		wantTitles    []string
	}{
		{
			name:  "no lines",
			lines: nil,
		},
		{
			name:  "only non-registration lines",
			lines: []models.CartLine{plainLine("T-shirt", 3)},
		},
		{
			name:          "single line",
			lines:         []models.CartLine{registrationLine("Workshop", "", 3)},
			wantGlobal:    []int{1, 2, 3},
			wantPositions: []int{1, 2, 3},
			wantTitles:    []string{"Workshop", "Workshop", "Workshop"},
		},
		{
			name: "numbering spans lines and skips other products",
			lines: []models.CartLine{
				registrationLine("Workshop", "May 3", 2),
				plainLine("T-shirt", 5),
				registrationLine("Gala", "", 1),
			},
			wantGlobal:    []int{1, 2, 3},
			wantPositions: []int{1, 2, 1},
			wantTitles:    []string{"Workshop", "Workshop", "Gala"},
		},
		{
			name: "zero quantity line consumes nothing",
			lines: []models.CartLine{
				registrationLine("Workshop", "", 0),
				registrationLine("Gala", "", 2),
			},
			wantGlobal:    []int{1, 2},
			wantPositions: []int{1, 2},
			wantTitles:    []string{"Gala", "Gala"},
		},
		{
			name: "variation of another product type is ignored",
			lines: []models.CartLine{
				{ProductType: models.ProductTypeVariation, ParentProductType: "variable", ParentProductTitle: "Hoodie", Quantity: 2},
				registrationLine("Gala", "", 1),
			},
			wantGlobal:    []int{1},
			wantPositions: []int{1},
			wantTitles:    []string{"Gala"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := AssignSlots(tt.lines)
			require.Len(t, slots, len(tt.wantGlobal))

			for i, slot := range slots {
				assert.Equal(t, tt.wantGlobal[i], slot.GlobalIndex)
				assert.Equal(t, tt.wantPositions[i], slot.PositionWithinLine)
				require.NotNil(t, slot.SourceLine)
				assert.Equal(t, tt.wantTitles[i], slot.SourceLine.ParentProductTitle)
			}
		})
	}
}

func TestAssignSlots_DenseNumbering(t *testing.T) {
	lines := []models.CartLine{
		registrationLine("A", "", 4),
		plainLine("B", 2),
		registrationLine("C", "Jun 1", 3),
		registrationLine("D", "", 1),
	}

	slots := AssignSlots(lines)

	total := 0
	for _, line := range lines {
		if line.IsRegistrationTicket() {
			total += line.Quantity
		}
	}
	require.Len(t, slots, total)
	for i, slot := range slots {
		assert.Equal(t, i+1, slot.GlobalIndex)
	}
}

func TestAssignSlots_StableAndIndependent(t *testing.T) {
	lines := []models.CartLine{
		registrationLine("Workshop", "", 2),
		registrationLine("Gala", "", 1),
	}

	first := AssignSlots(lines)
	second := AssignSlots(lines)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].GlobalIndex, second[i].GlobalIndex)
		assert.Equal(t, *first[i].SourceLine, *second[i].SourceLine)
	}

	// Slots keep their own copy of the lines
	lines[0].ParentProductTitle = "Changed"
	assert.Equal(t, "Workshop", first[0].SourceLine.ParentProductTitle)
}

func TestGroupSlotsByLine(t *testing.T) {
	slots := AssignSlots([]models.CartLine{
		registrationLine("Workshop", "", 2),
		plainLine("T-shirt", 1),
		registrationLine("Gala", "", 3),
	})

	runs := groupSlotsByLine(slots)
	require.Len(t, runs, 2)
	assert.Len(t, runs[0], 2)
	assert.Len(t, runs[1], 3)
	assert.Equal(t, 3, runs[1][0].GlobalIndex)

	assert.Nil(t, groupSlotsByLine(nil))
}
