package services

import (
	"context"

	"event-registrations/internal/models"
)

// CartSource returns the read-only cart snapshot of a session
type CartSource interface {
	GetCartLines(ctx context.Context, cartID string) ([]models.CartLine, error)
}

// CartWriter stores and clears session carts
type CartWriter interface {
	SaveCart(ctx context.Context, cart *models.Cart) error
	ClearCart(ctx context.Context, cartID string) error
}

// OrderStore persists orders, their lines and per-order attendee metadata
type OrderStore interface {
	CreateWithAttendees(req *models.OrderCreateRequest, lines []models.OrderLine, meta map[string]string) (*models.Order, error)
	GetByID(id int) (*models.Order, error)
	GetLines(orderID int) ([]models.OrderLine, error)
	GetMeta(orderID int, key string) (string, bool, error)
}

// UserDirectory looks up and creates user accounts
type UserDirectory interface {
	GetByEmail(email string) (*models.User, error)
	Create(req *models.UserCreateRequest) (*models.User, error)
	UpdateNames(id int, req *models.UserNamesUpdate) (*models.User, error)
}

// GroupDirectory manages user groups. It is optional; when absent no group
// operations are attempted.
type GroupDirectory interface {
	CreateGroup(name string) (*models.Group, error)
	GetGroupByName(name string) (*models.Group, error)
	AddUserToGroup(groupID, userID int) error
}

// WelcomeNotifier sends account notifications for newly created users
type WelcomeNotifier interface {
	SendWelcomeEmail(email, userName string) error
	SendNewUserAdminNotice(email, userName string) error
}

// NoticeReporter surfaces messages to the shopper, one call per message
type NoticeReporter interface {
	ReportUserFacingError(message string)
}

// NoticeList is a NoticeReporter that keeps messages in order
type NoticeList []string

// ReportUserFacingError appends a message to the list
func (n *NoticeList) ReportUserFacingError(message string) {
	*n = append(*n, message)
}
