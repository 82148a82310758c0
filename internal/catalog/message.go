// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog implements the staged encouragement message system.

Messages are keyed by the number of clean days at which they unlock, and grouped
into a closed set of categories. The catalog is loaded once at process start and
is immutable afterwards.

Architecture:

  - Message: Immutable value describing one encouragement entry.
  - Category: Closed enum (health, habit). Unknown values are load errors.
  - Catalog: In-memory, ordered collection with pure selection logic.

The package renders nothing and stores nothing; it is a pure domain library
consumed by the recovery engine.
*/
package catalog

import "fmt"

// # Categories

// Category classifies an encouragement message.
//
// The set is closed. Rows with any other value fail the catalog load
// rather than passing through as free-form strings.
type Category string

const (
	// CategoryHealth marks messages about physical recovery milestones.
	CategoryHealth Category = "health"
	// CategoryHabit marks messages about behavioral and psychological progress.
	CategoryHabit Category = "habit"
)

// ParseCategory converts a raw string into a [Category].
// It returns an error for any value outside the closed enum.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryHealth:
		return CategoryHealth, nil
	case CategoryHabit:
		return CategoryHabit, nil
	default:
		return "", fmt.Errorf("unknown message category %q", raw)
	}
}

// # Entries

// Message is a single encouragement entry in the catalog.
type Message struct {
	// UnlockDay is the minimum number of clean days required to see this message.
	UnlockDay int `json:"unlock_day"`
	// Category is the closed-enum grouping of the message.
	Category Category `json:"category"`
	// Text is the encouragement shown to the user.
	Text string `json:"text"`
}
