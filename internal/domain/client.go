// Package domain contains core business types and interfaces.
//
// This file defines the Client record type. Client records are read-only
// from the form's point of view: they are looked up by the typeahead and
// attached to a request, never created or mutated here.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Client Domain Type
// =============================================================================

// Client represents a client record from the client directory.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Label returns the display label used once a client is selected,
// e.g. "Acme Co (Acme)".
func (c Client) Label() string {
	if c.Company == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Company)
}

// =============================================================================
// Search Parameters
// =============================================================================

// MinSearchLength is the minimum query length before a directory lookup
// is issued. Shorter queries return no results and trigger no query.
const MinSearchLength = 2

// MaxSearchResults caps the number of records a single lookup may return.
const MaxSearchResults = 10

// SearchClientsParams contains parameters for a client directory search.
type SearchClientsParams struct {
	Query string // Substring matched against name and email, case-insensitive
	Limit int32  // Max results to return
}
