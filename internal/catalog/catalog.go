// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taibuivan/resolve/internal/platform/apperr"
)

// Catalog is the immutable, ordered set of encouragement messages.
//
// # Invariants
//
// The message order and the category first-seen order are fixed at load time
// and never change. All methods are safe for concurrent use because the
// catalog is never mutated after [Load] returns.
type Catalog struct {
	messages      []Message
	categoryOrder []Category
}

/*
Load parses the full message catalog from CSV data.

Description: Rows have the form "day,type,message". The load is strict: a row
with the wrong arity, a non-integer or negative day, or an unknown category
fails the WHOLE load. A partial catalog is never returned; startup aborts
instead of silently serving an empty or truncated message set.

Parameters:
  - reader: io.Reader (CSV source)

Returns:
  - *Catalog: Fully parsed, immutable catalog
  - error: apperr.CatalogInvalid wrapping the first defect encountered
*/
func Load(reader io.Reader) (*Catalog, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = 3

	catalog := &Catalog{}
	seen := make(map[Category]bool)

	for line := 1; ; line++ {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.CatalogInvalid(fmt.Errorf("row %d: %w", line, err))
		}

		day, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, apperr.CatalogInvalid(fmt.Errorf("row %d: day %q is not an integer", line, record[0]))
		}
		if day < 0 {
			return nil, apperr.CatalogInvalid(fmt.Errorf("row %d: day %d is negative", line, day))
		}

		category, err := ParseCategory(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, apperr.CatalogInvalid(fmt.Errorf("row %d: %w", line, err))
		}

		text := strings.TrimSpace(record[2])
		if text == "" {
			return nil, apperr.CatalogInvalid(fmt.Errorf("row %d: message text is empty", line))
		}

		// Track category first-seen order for stable selection output.
		if !seen[category] {
			seen[category] = true
			catalog.categoryOrder = append(catalog.categoryOrder, category)
		}

		catalog.messages = append(catalog.messages, Message{
			UnlockDay: day,
			Category:  category,
			Text:      text,
		})
	}

	return catalog, nil
}

/*
LoadFile opens and parses the catalog from a filesystem path.

Parameters:
  - path: string (Location of the CSV file)

Returns:
  - *Catalog: Fully parsed catalog
  - error: apperr.CatalogInvalid on read or parse failures
*/
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperr.CatalogInvalid(fmt.Errorf("open %s: %w", path, err))
	}
	defer file.Close()

	return Load(file)
}

/*
Select returns the unlocked message for each category at the given day count.

Description: For every category present in the catalog, the message with the
greatest UnlockDay that does not exceed daysClean is chosen. A category with
no qualifying message is omitted entirely, never defaulted. When two messages
in the same category share an UnlockDay, the one appearing first in catalog
order wins. Output is ordered by category first-seen order.

The selection is pure and repeatable, so it can be used for previews at
arbitrary day counts without side effects.

Parameters:
  - daysClean: int (May be negative; nothing unlocks then unless day-0 rows exist and daysClean >= 0)

Returns:
  - []Message: At most one message per category
*/
func (catalog *Catalog) Select(daysClean int) []Message {
	selected := make([]Message, 0, len(catalog.categoryOrder))

	for _, category := range catalog.categoryOrder {
		best := -1
		for index, message := range catalog.messages {
			if message.Category != category {
				continue
			}
			if message.UnlockDay > daysClean {
				continue
			}
			// Strictly-greater comparison keeps the FIRST message on ties.
			if best == -1 || message.UnlockDay > catalog.messages[best].UnlockDay {
				best = index
			}
		}
		if best >= 0 {
			selected = append(selected, catalog.messages[best])
		}
	}

	return selected
}

// Messages returns a defensive copy of every entry in catalog order.
func (catalog *Catalog) Messages() []Message {
	out := make([]Message, len(catalog.messages))
	copy(out, catalog.messages)
	return out
}

// Size returns the total number of messages in the catalog.
func (catalog *Catalog) Size() int {
	return len(catalog.messages)
}
