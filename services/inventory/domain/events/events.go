package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the inventory context.
const (
	TopicLocationCreated = "location.created"
	TopicItemCreated     = "item.created"
	TopicItemMoved       = "item.moved"
)

// LocationCreatedEvent is published after a new Location is persisted.
// It carries the full read model so subscribers can warm caches without a
// database round trip.
type LocationCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	LocationID  string    `json:"location_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    *string   `json:"parent_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemCreatedEvent is published after a new Item is persisted.
type ItemCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	LocationID string    `json:"location_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemMovedEvent is published after a batch of items is reassigned to a new
// location.
type ItemMovedEvent struct {
	EventID       uuid.UUID   `json:"event_id"`
	Version       int         `json:"version"`
	ItemIDs       []uuid.UUID `json:"item_ids"`
	NewLocationID string      `json:"new_location_id"`
	MovedCount    int64       `json:"moved_count"`
	OccurredAt    time.Time   `json:"occurred_at"`
}
