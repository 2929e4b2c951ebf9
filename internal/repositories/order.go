package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"event-registrations/internal/models"
)

// OrderRepository handles orders, their lines and per-order metadata
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithAttendees creates an order together with its lines and attendee
// metadata in one transaction. Nothing is stored if any insert fails.
func (r *OrderRepository) CreateWithAttendees(req *models.OrderCreateRequest, lines []models.OrderLine, meta map[string]string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderNumber, err := uniqueOrderNumber(tx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO orders (order_number, status, billing_email, billing_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, order_number, status, billing_email, billing_name, created_at, updated_at`

	now := time.Now()
	order := &models.Order{}
	err = tx.QueryRow(query, orderNumber, req.Status, req.BillingEmail, req.BillingName, now, now).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.Status,
		&order.BillingEmail,
		&order.BillingName,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, line := range lines {
		_, err = tx.Exec(`
			INSERT INTO order_lines (order_id, position, product_variant_id, product_type, parent_product_type, parent_product_title, variant_date_label, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.ID, line.Position, line.ProductVariantID, line.ProductType, line.ParentProductType,
			line.ParentProductTitle, line.VariantDateLabel, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to create order line %d: %w", line.Position, err)
		}
	}

	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err = upsertMeta(tx, order.ID, key, meta[key]); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	return order, nil
}

// uniqueOrderNumber generates an order number not yet used, retrying on collision
func uniqueOrderNumber(tx *sql.Tx) (string, error) {
	orderNumber := models.GenerateOrderNumber()
	for i := 0; i < 5; i++ {
		var exists bool
		err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM orders WHERE order_number = $1)", orderNumber).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("failed to check order number uniqueness: %w", err)
		}
		if !exists {
			return orderNumber, nil
		}
		orderNumber = models.GenerateOrderNumber()
	}
	return "", fmt.Errorf("failed to generate a unique order number")
}

func upsertMeta(tx *sql.Tx, orderID int, key, value string) error {
	_, err := tx.Exec(`
		INSERT INTO order_meta (order_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`,
		orderID, key, value)
	if err != nil {
		return fmt.Errorf("failed to store order meta %q: %w", key, err)
	}
	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	query := `
		SELECT id, order_number, status, billing_email, billing_name, created_at, updated_at
		FROM orders
		WHERE id = $1`

	order := &models.Order{}
	err := r.db.QueryRow(query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.Status,
		&order.BillingEmail,
		&order.BillingName,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order with id %d: %w", id, models.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// GetLines returns the lines of an order in cart order. An unknown order
// yields ErrOrderNotFound.
func (r *OrderRepository) GetLines(orderID int) ([]models.OrderLine, error) {
	var exists bool
	if err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)", orderID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check order: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("order with id %d: %w", orderID, models.ErrOrderNotFound)
	}

	rows, err := r.db.Query(`
		SELECT id, order_id, position, product_variant_id, product_type, parent_product_type, parent_product_title, variant_date_label, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.Position,
			&line.ProductVariantID,
			&line.ProductType,
			&line.ParentProductType,
			&line.ParentProductTitle,
			&line.VariantDateLabel,
			&line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return lines, nil
}

// GetMeta returns a metadata value of an order and whether it was set
func (r *OrderRepository) GetMeta(orderID int, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT meta_value FROM order_meta WHERE order_id = $1 AND meta_key = $2`, orderID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get order meta: %w", err)
	}
	return value, true, nil
}
