package models

import "errors"

// Common errors used throughout the application
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrMalformedBlob      = errors.New("malformed attendee blob")
	ErrProvisioningFailed = errors.New("attendee provisioning failed")
)
