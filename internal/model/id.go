package model

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID string for use as an entity identifier.
func NewID() string {
	return ulid.Make().String()
}

// NewSessionID generates a UUID for grouping authoring runs into a
// teacher session.
func NewSessionID() string {
	return uuid.NewString()
}
