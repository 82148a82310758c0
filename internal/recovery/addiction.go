// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recovery implements the recovery state engine, the core domain of Resolve.

It owns the per-user recovery record (tracked addictions, onboarding state), the
day-count progress calculator, and the orchestration that joins both with the
message catalog.

Architecture:

  - Entities: Addiction, UserRecord and the derived ProgressView.
  - Service: Mutation contract over the record (read-freshest, copy, full write).
  - Repository: Abstracted persistence for the single-record-per-user model.

The engine renders nothing and owns no presentation state; the HTTP layer is a
thin transport adapter over [Service].
*/
package recovery

import (
	"time"

	"github.com/taibuivan/resolve/internal/catalog"
	"github.com/taibuivan/resolve/internal/platform/constants"
)

// # Calendar Dates

// Date is a calendar date without a time-of-day component.
//
// It marshals to and from the "YYYY-MM-DD" wire format, so a record written to
// storage and read back reconstructs the exact same calendar date regardless
// of server timezone.
type Date struct {
	time.Time
}

// NewDate builds a Date from a year, month, and day (UTC midnight).
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date in the instant's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return Date{}, err
	}
	return Date{parsed}, nil
}

// MarshalJSON implements json.Marshaler using the calendar-date layout.
func (date Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + date.Format(constants.DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for the calendar-date layout.
func (date *Date) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	parsed, err := time.Parse(constants.DateLayout, raw)
	if err != nil {
		return err
	}
	date.Time = parsed
	return nil
}

// String returns the "YYYY-MM-DD" representation.
func (date Date) String() string {
	return date.Format(constants.DateLayout)
}

// # Domain Entities

// Addiction is one tracked habit inside a user's recovery record.
//
// The surrogate ID is the structural key; the name is a display label whose
// uniqueness (case-sensitive exact match) is enforced as a validation rule at
// mutation time. Names are not renameable; only the quit date is mutable.
type Addiction struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	QuitDate Date   `json:"quit_date"`
}

// UserSnapshot is the identity subset embedded inside a recovery record.
type UserSnapshot struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// UserRecord is the full persisted recovery state for one user.
//
// # Persistence Model
//
// Exactly one record exists per user, written as a whole on every mutation.
// There are no partial or delta updates; the freshest stored record is always
// the single source of truth.
type UserRecord struct {
	User        UserSnapshot `json:"user"`
	Addictions  []Addiction  `json:"addictions"`
	IsOnboarded bool         `json:"is_onboarded"`
}

// NewRecord builds an empty recovery record for a freshly registered user.
func NewRecord(user UserSnapshot) *UserRecord {
	return &UserRecord{
		User:       user,
		Addictions: []Addiction{},
	}
}

// Clone returns a deep copy of the record.
//
// Mutations operate on the clone so a failed persist leaves the original
// (and anything holding a reference to it) untouched.
func (record *UserRecord) Clone() *UserRecord {
	addictions := make([]Addiction, len(record.Addictions))
	copy(addictions, record.Addictions)

	return &UserRecord{
		User:        record.User,
		Addictions:  addictions,
		IsOnboarded: record.IsOnboarded,
	}
}

// FindAddiction returns the addiction with the given ID (or slug as a
// fallback), or nil when absent.
func (record *UserRecord) FindAddiction(id string) *Addiction {
	for index := range record.Addictions {
		if record.Addictions[index].ID == id || record.Addictions[index].Slug == id {
			return &record.Addictions[index]
		}
	}
	return nil
}

// HasName reports whether an addiction with the exact name already exists.
func (record *UserRecord) HasName(name string) bool {
	for _, addiction := range record.Addictions {
		if addiction.Name == name {
			return true
		}
	}
	return false
}

// ProgressView is the derived per-addiction progress report. Never stored.
type ProgressView struct {
	Addiction Addiction `json:"addiction"`
	// DaysClean is clamped to zero for display; a quit date later than the
	// reference day reads as zero, not a negative count.
	DaysClean int               `json:"days_clean"`
	Messages  []catalog.Message `json:"messages"`
}

// # Preset Addiction Types

// DefaultAddictionTypes is the onboarding category list offered to new users.
// The final entry is the marker for a free-form, user-defined addiction.
var DefaultAddictionTypes = []string{
	"Nicotine (Cigarettes, Vapes, Pouches)",
	"Cannabis (Weed, Hash, Edibles)",
	"Alcohol (Beer, Wine, Spirits)",
	"Stimulants (Cocaine, MDMA, Amphetamines)",
	"Opiates (Heroin, Oxycodone, Fentanyl)",
	"Behavioral (Porn, Gambling, Social Media)",
	"Custom Addiction (User-defined)",
}

// # Field Identifiers

// Global field names for validation and identity mapping in the recovery domain.
const (
	FieldName       = "name"
	FieldQuitDate   = "quit_date"
	FieldAddictions = "addictions"
	FieldOn         = "on"
)
