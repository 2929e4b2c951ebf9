package models

// Product type names as reported by the store catalog
const (
	ProductTypeVariation     = "variation"
	ProductTypeRegistrations = "registrations"
)

// Cart represents the shopping cart snapshot of one session
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	ExpiresAt int64      `json:"expires_at"` // Unix timestamp
}

// CartLine represents one entry in the shopping cart
type CartLine struct {
	ProductVariantID   int    `json:"product_variant_id"`
	ProductType        string `json:"product_type"`
	ParentProductType  string `json:"parent_product_type"`
	ParentProductTitle string `json:"parent_product_title"`
	Quantity           int    `json:"quantity"`
	VariantDateLabel   string `json:"variant_date_label,omitempty"`
}

// IsRegistrationTicket returns true if the line is a ticketed variation of a
// registrations product. Only these lines take part in attendee collection.
func (l CartLine) IsRegistrationTicket() bool {
	return l.ProductType == ProductTypeVariation && l.ParentProductType == ProductTypeRegistrations
}

// HasDateLabel returns true if the variant carries a session date label
func (l CartLine) HasDateLabel() bool {
	return l.VariantDateLabel != ""
}

// TicketCount returns the number of registration seats in the cart
func (c *Cart) TicketCount() int {
	total := 0
	for _, line := range c.Lines {
		if line.IsRegistrationTicket() {
			total += line.Quantity
		}
	}
	return total
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
