package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxLocationIDLength   = 64
	maxLocationNameLength = 255
)

// ParentRef is the hierarchy position of a location: either a root or a
// child of another location. The persisted column is a plain nullable
// string; this type keeps the two cases explicit at every call site.
type ParentRef struct {
	id    string
	child bool
}

// Root returns a ParentRef marking a root location.
func Root() ParentRef {
	return ParentRef{}
}

// ChildOf returns a ParentRef pointing at the given parent location id.
func ChildOf(parentID string) ParentRef {
	return ParentRef{id: parentID, child: true}
}

// ParentFromNullable converts a nullable database value into a ParentRef.
// Both nil and blank strings mean root.
func ParentFromNullable(parentID *string) ParentRef {
	if parentID == nil || strings.TrimSpace(*parentID) == "" {
		return Root()
	}
	return ChildOf(*parentID)
}

// IsRoot reports whether the location has no parent.
func (p ParentRef) IsRoot() bool {
	return !p.child
}

// ParentID returns the parent location id and whether one is set.
func (p ParentRef) ParentID() (string, bool) {
	return p.id, p.child
}

// Nullable returns the value to persist in the nullable parent column.
func (p ParentRef) Nullable() *string {
	if !p.child {
		return nil
	}
	id := p.id
	return &id
}

// Location is the hierarchical container aggregate. The id is a
// human-chosen opaque string and doubles as the user-facing identifier.
type Location struct {
	ID          string
	Name        string
	Description string
	Parent      ParentRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLocation constructs a Location after validating id and name. Timestamps
// are set by the store on insert.
func NewLocation(id, name, description string, parent ParentRef) (*Location, error) {
	if err := ValidateLocationID(id); err != nil {
		return nil, err
	}
	if err := ValidateLocationName(name); err != nil {
		return nil, err
	}
	return &Location{
		ID:          id,
		Name:        name,
		Description: description,
		Parent:      parent,
	}, nil
}

// ValidateLocationID enforces the structural rules for a location id:
// non-blank, no whitespace, at most 64 bytes.
func ValidateLocationID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("location id must not be blank")
	}
	if strings.ContainsAny(id, " \t\n\r") {
		return fmt.Errorf("location id must not contain whitespace")
	}
	if len(id) > maxLocationIDLength {
		return fmt.Errorf("location id must not exceed %d characters", maxLocationIDLength)
	}
	return nil
}

// ValidateLocationName enforces the structural rules for a location name.
func ValidateLocationName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("location name must not be blank")
	}
	if len(name) > maxLocationNameLength {
		return fmt.Errorf("location name must not exceed %d characters", maxLocationNameLength)
	}
	return nil
}
