package models

import (
	"errors"
	"strings"
	"time"
)

// Group is a named set of users, one per registration product
type Group struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ValidateGroupName validates a group name
func ValidateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("group name is required")
	}

	if len(name) > 255 {
		return errors.New("group name must be less than 255 characters")
	}

	return nil
}
