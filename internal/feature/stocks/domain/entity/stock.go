// Package entity defines the domain models for the stocks feature.
package entity

import "time"

// Stock represents a tradable financial instrument.
// The ID is assigned exactly once by the identifier allocator at creation time.
type Stock struct {
	ID             uint64    // Allocator-assigned primary key, immutable
	Name           string    // Display name (e.g., "Microsoft Corp.")
	Ticker         string    // Trading symbol (e.g., "MSFT")
	ISIN           string    // Security identifier; placeholder UUID when not in the dump
	IdentifierCode string    // Secondary identifier; placeholder UUID when not in the dump
	CreatedAt      time.Time // Creation metadata
	UpdatedAt      time.Time // Update metadata
}
