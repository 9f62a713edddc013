package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxItemNameLength = 255

// Item is a unit of inventory assigned to exactly one location.
// Properties is an open-ended string-to-string attribute map persisted as a
// schemaless JSONB document.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	LocationID  string
	Properties  map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem constructs a valid Item with a generated id. Timestamps are set by
// the store on insert.
func NewItem(name, description, locationID string, properties map[string]string) (*Item, error) {
	if err := ValidateItemName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(locationID) == "" {
		return nil, fmt.Errorf("item location id must not be blank")
	}
	if properties == nil {
		properties = map[string]string{}
	}
	return &Item{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		LocationID:  locationID,
		Properties:  properties,
	}, nil
}

// ValidateItemName enforces the structural rules for an item name.
func ValidateItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("item name must not be blank")
	}
	if len(name) > maxItemNameLength {
		return fmt.Errorf("item name must not exceed %d characters", maxItemNameLength)
	}
	return nil
}
