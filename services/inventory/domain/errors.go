package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrLocationNotFound indicates the requested location does not exist.
	ErrLocationNotFound = errors.New("location not found")

	// ErrLocationExists indicates a location with the same id already exists.
	ErrLocationExists = errors.New("location already exists")

	// ErrParentNotFound indicates the proposed parent location does not exist.
	ErrParentNotFound = errors.New("parent location not found")

	// ErrCycleDetected indicates a parent assignment that would make a
	// location its own ancestor.
	ErrCycleDetected = errors.New("location hierarchy cycle detected")

	// ErrLocationHasChildren indicates a write was rejected because the
	// location still has child locations.
	ErrLocationHasChildren = errors.New("location has child locations")

	// ErrLocationHasItems indicates a delete was rejected because the
	// location still contains items.
	ErrLocationHasItems = errors.New("location still contains items")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidArgument indicates caller-supplied values failed basic
	// validation (empty required fields, self-parenting, bad pagination).
	ErrInvalidArgument = errors.New("invalid argument")
)
