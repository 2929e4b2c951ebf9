package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartLine_IsRegistrationTicket(t *testing.T) {
	tests := []struct {
		name string
		line CartLine
		want bool
	}{
		{
			name: "variation of registrations product",
			line: CartLine{ProductType: ProductTypeVariation, ParentProductType: ProductTypeRegistrations},
			want: true,
		},
		{
			name: "variation of a simple product",
			line: CartLine{ProductType: ProductTypeVariation, ParentProductType: "variable"},
			want: false,
		},
		{
			name: "simple product",
			line: CartLine{ProductType: "simple"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.IsRegistrationTicket())
		})
	}
}

func TestCart_TicketCount(t *testing.T) {
	cart := &Cart{Lines: []CartLine{
		{ProductType: ProductTypeVariation, ParentProductType: ProductTypeRegistrations, Quantity: 2},
		{ProductType: "simple", Quantity: 5},
		{ProductType: ProductTypeVariation, ParentProductType: ProductTypeRegistrations, Quantity: 3},
	}}

	assert.Equal(t, 5, cart.TicketCount())
	assert.False(t, cart.IsEmpty())
	assert.True(t, (&Cart{}).IsEmpty())
}

func TestRegistrationGroupKey(t *testing.T) {
	withDate := CartLine{ParentProductTitle: "Go Workshop", VariantDateLabel: "2026-11-02"}
	withoutDate := CartLine{ParentProductTitle: "Go Workshop"}

	assert.Equal(t, "Go Workshop - 2026-11-02", RegistrationGroupKey(withDate))
	assert.Equal(t, "Go Workshop", RegistrationGroupKey(withoutDate))
}

func TestFieldKey_String(t *testing.T) {
	assert.Equal(t, "attendee_name_1", FieldKey{Slot: 1, Kind: FieldName}.String())
	assert.Equal(t, "attendee_last_name_12", FieldKey{Slot: 12, Kind: FieldLastName}.String())
	assert.Equal(t, "attendee_email_3", FieldKey{Slot: 3, Kind: FieldEmail}.String())
}

func TestParseFieldKey(t *testing.T) {
	tests := []struct {
		id     string
		want   FieldKey
		wantOK bool
	}{
		{id: "attendee_name_1", want: FieldKey{Slot: 1, Kind: FieldName}, wantOK: true},
		{id: "attendee_last_name_7", want: FieldKey{Slot: 7, Kind: FieldLastName}, wantOK: true},
		{id: "attendee_email_30", want: FieldKey{Slot: 30, Kind: FieldEmail}, wantOK: true},
		{id: "attendee_phone_1", wantOK: false},
		{id: "attendee_name_0", wantOK: false},
		{id: "attendee_name_x", wantOK: false},
		{id: "billing_email", wantOK: false},
		{id: "attendee_", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ParseFieldKey(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.id, got.String())
			}
		})
	}
}

func TestValidationFailure_Message(t *testing.T) {
	assert.Equal(t, "Please enter a correct name to attendee #2",
		ValidationFailure{SlotIndex: 2, Field: FieldName}.Message())
	assert.Equal(t, "Please enter a correct email to attendee #3",
		ValidationFailure{SlotIndex: 3, Field: FieldEmail}.Message())
	assert.Equal(t, FieldKey{Slot: 3, Kind: FieldEmail},
		ValidationFailure{SlotIndex: 3, Field: FieldEmail}.FieldKey())
}
