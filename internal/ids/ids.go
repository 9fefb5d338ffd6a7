// Package ids mints the opaque identifiers used across the API.
package ids

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// New returns a random UUID for users, questions and answers.
func New() string {
	return uuid.NewString()
}

// NewSortable returns a KSUID. Its string form sorts by creation time, which
// keeps session listings in issue order without an extra index.
func NewSortable() string {
	return ksuid.New().String()
}
