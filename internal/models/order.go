package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Order represents an order in the system
type Order struct {
	ID           int         `json:"id" db:"id"`
	OrderNumber  string      `json:"order_number" db:"order_number"`
	Status       OrderStatus `json:"status" db:"status"`
	BillingEmail string      `json:"billing_email" db:"billing_email"`
	BillingName  string      `json:"billing_name" db:"billing_name"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderLine is a purchased cart line kept against an order. Title and date
// label are stored separately so the attendee group key never has to be split.
type OrderLine struct {
	ID                 int    `json:"id" db:"id"`
	OrderID            int    `json:"order_id" db:"order_id"`
	Position           int    `json:"position" db:"position"`
	ProductVariantID   int    `json:"product_variant_id" db:"product_variant_id"`
	ProductType        string `json:"product_type" db:"product_type"`
	ParentProductType  string `json:"parent_product_type" db:"parent_product_type"`
	ParentProductTitle string `json:"parent_product_title" db:"parent_product_title"`
	VariantDateLabel   string `json:"variant_date_label" db:"variant_date_label"`
	Quantity           int    `json:"quantity" db:"quantity"`
}

// OrderCreateRequest represents the data needed to create a new order
type OrderCreateRequest struct {
	BillingEmail string      `json:"billing_email"`
	BillingName  string      `json:"billing_name"`
	Status       OrderStatus `json:"status"`
}

var (
	// Order number format: ORD-YYYYMMDD-XXXXXX (e.g., ORD-20240101-123456)
	orderNumberRegex = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)
)

// Validate validates the order data
func (o *Order) Validate() error {
	if o.OrderNumber == "" {
		return errors.New("order number is required")
	}

	if !orderNumberRegex.MatchString(o.OrderNumber) {
		return errors.New("order number format is invalid")
	}

	if err := validateOrderStatus(o.Status); err != nil {
		return err
	}

	return validateOrderBillingInfo(o.BillingEmail, o.BillingName)
}

// Validate validates order creation data
func (req *OrderCreateRequest) Validate() error {
	if err := validateOrderStatus(req.Status); err != nil {
		return err
	}

	return validateOrderBillingInfo(req.BillingEmail, req.BillingName)
}

// validateOrderStatus validates an order status
func validateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderPending, OrderCompleted, OrderCancelled:
		return nil
	default:
		return errors.New("invalid order status")
	}
}

// validateOrderBillingInfo validates order billing information
func validateOrderBillingInfo(billingEmail, billingName string) error {
	if billingEmail == "" {
		return errors.New("billing email is required")
	}

	if strings.TrimSpace(billingName) == "" {
		return errors.New("billing name is required")
	}

	if len(billingEmail) > 255 {
		return errors.New("billing email must be less than 255 characters")
	}

	if len(billingName) > 255 {
		return errors.New("billing name must be less than 255 characters")
	}

	if !emailRegex.MatchString(billingEmail) {
		return errors.New("billing email format is invalid")
	}

	return nil
}

// NewOrderLine copies a cart line into an order line at the given position
func NewOrderLine(position int, line CartLine) OrderLine {
	return OrderLine{
		Position:           position,
		ProductVariantID:   line.ProductVariantID,
		ProductType:        line.ProductType,
		ParentProductType:  line.ParentProductType,
		ParentProductTitle: line.ParentProductTitle,
		VariantDateLabel:   line.VariantDateLabel,
		Quantity:           line.Quantity,
	}
}

// CartLine converts the order line back into its cart form
func (l OrderLine) CartLine() CartLine {
	return CartLine{
		ProductVariantID:   l.ProductVariantID,
		ProductType:        l.ProductType,
		ParentProductType:  l.ParentProductType,
		ParentProductTitle: l.ParentProductTitle,
		VariantDateLabel:   l.VariantDateLabel,
		Quantity:           l.Quantity,
	}
}

// GroupKey returns the attendee metadata key of this line
func (l OrderLine) GroupKey() string {
	return GroupKey(l.ParentProductTitle, l.VariantDateLabel)
}

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	// Generate a 6-digit random number using crypto/rand for better uniqueness
	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		randomPart := now.UnixNano() % 1000000
		return fmt.Sprintf("ORD-%s-%06d", dateStr, randomPart)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderCompleted
}

// GetStatusDisplayName returns a human-readable status name
func (o *Order) GetStatusDisplayName() string {
	switch o.Status {
	case OrderPending:
		return "Pending Payment"
	case OrderCompleted:
		return "Completed"
	case OrderCancelled:
		return "Cancelled"
	default:
		return string(o.Status)
	}
}
