package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Subscribers rebuild the location read model from the event alone, so the
// payload must carry every field the cache stores.
func TestLocationCreatedEventPayload(t *testing.T) {
	parent := "warehouse"
	evt := LocationCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		LocationID:  "shelf-1",
		Name:        "Shelf 1",
		Description: "ground floor, west wall",
		ParentID:    &parent,
		OccurredAt:  time.Now().UTC().Truncate(time.Millisecond),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got LocationCreatedEvent
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Description != evt.Description {
		t.Fatalf("description = %q, want %q", got.Description, evt.Description)
	}
	if got.Name != evt.Name || got.LocationID != evt.LocationID {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.ParentID == nil || *got.ParentID != parent {
		t.Fatalf("parent_id = %v, want %q", got.ParentID, parent)
	}
}
