// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/resolve/internal/catalog"
	"github.com/taibuivan/resolve/internal/platform/apperr"
)

func mustLoad(t *testing.T, csvData string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(strings.NewReader(csvData))
	require.NoError(t, err)
	return c
}

/*
TestCatalog_Select_StagedUnlocks verifies the canonical selection scenario:
with health messages at days 1 and 7 and a habit message at day 1, a user at
5 clean days sees exactly the day-1 health and day-1 habit messages.
*/
func TestCatalog_Select_StagedUnlocks(t *testing.T) {
	c := mustLoad(t, strings.Join([]string{
		`1,health,A`,
		`1,habit,B`,
		`7,health,C`,
	}, "\n"))

	selected := c.Select(5)

	require.Len(t, selected, 2)
	assert.Equal(t, "A", selected[0].Text)
	assert.Equal(t, catalog.CategoryHealth, selected[0].Category)
	assert.Equal(t, "B", selected[1].Text)
	assert.Equal(t, catalog.CategoryHabit, selected[1].Category)
}

/*
TestCatalog_Select_NeverExceedsDays asserts that no selected message has an
unlock day greater than the requested day count.
*/
func TestCatalog_Select_NeverExceedsDays(t *testing.T) {
	c := mustLoad(t, strings.Join([]string{
		`1,health,A`,
		`3,health,B`,
		`7,health,C`,
		`14,habit,D`,
		`30,habit,E`,
	}, "\n"))

	for days := -1; days <= 40; days++ {
		for _, message := range c.Select(days) {
			assert.LessOrEqual(t, message.UnlockDay, days)
		}
	}
}

/*
TestCatalog_Select_PicksHighestQualifying checks that the message with the
greatest qualifying unlock day wins within each category.
*/
func TestCatalog_Select_PicksHighestQualifying(t *testing.T) {
	c := mustLoad(t, strings.Join([]string{
		`1,health,A`,
		`3,health,B`,
		`7,health,C`,
	}, "\n"))

	selected := c.Select(10)
	require.Len(t, selected, 1)
	assert.Equal(t, "C", selected[0].Text)
	assert.Equal(t, 7, selected[0].UnlockDay)
}

/*
TestCatalog_Select_DayZeroBoundary verifies the day-0 boundary: a message with
unlock day 0 is visible at exactly 0 clean days, and nothing with day 1 is.
*/
func TestCatalog_Select_DayZeroBoundary(t *testing.T) {
	c := mustLoad(t, strings.Join([]string{
		`0,habit,Start`,
		`1,habit,Later`,
	}, "\n"))

	selected := c.Select(0)
	require.Len(t, selected, 1)
	assert.Equal(t, "Start", selected[0].Text)
}

/*
TestCatalog_Select_OmitsCategoryWithNothingUnlocked checks that a category
whose earliest message has not been reached is omitted entirely rather than
defaulted.
*/
func TestCatalog_Select_OmitsCategoryWithNothingUnlocked(t *testing.T) {
	c := mustLoad(t, strings.Join([]string{
		`1,health,A`,
		`14,habit,B`,
	}, "\n"))

	selected := c.Select(5)
	require.Len(t, selected, 1)
	assert.Equal(t, catalog.CategoryHealth, selected[0].Category)

	// Nothing at all unlocked yet.
	assert.Empty(t, c.Select(-3))
}

/*
TestCatalog_Select_TieBreakFirstInCatalogWins asserts the documented
deterministic tie-break: two messages in the same category sharing an unlock
day resolve to the one appearing first in catalog order.
*/
func TestCatalog_Select_TieBreakFirstInCatalogWins(t *testing.T) {
	c := mustLoad(t, strings.Join([]string{
		`7,health,First`,
		`7,health,Second`,
	}, "\n"))

	selected := c.Select(7)
	require.Len(t, selected, 1)
	assert.Equal(t, "First", selected[0].Text)
}

/*
TestCatalog_Select_CategoryFirstSeenOrder verifies that selection output
follows the order in which categories first appear in the catalog, not
alphabetical or insertion-of-selection order.
*/
func TestCatalog_Select_CategoryFirstSeenOrder(t *testing.T) {
	c := mustLoad(t, strings.Join([]string{
		`1,habit,B`,
		`1,health,A`,
	}, "\n"))

	selected := c.Select(1)
	require.Len(t, selected, 2)
	assert.Equal(t, catalog.CategoryHabit, selected[0].Category)
	assert.Equal(t, catalog.CategoryHealth, selected[1].Category)
}

/*
TestCatalog_Load_StrictFailures asserts that any malformed row fails the whole
load. A partial catalog must never be produced.
*/
func TestCatalog_Load_StrictFailures(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"non_integer_day", "one,health,A"},
		{"negative_day", "-1,health,A"},
		{"unknown_category", "1,wellness,A"},
		{"wrong_arity", "1,health"},
		{"empty_text", "1,health,"},
		{"bad_row_after_good_rows", "1,health,A\n3,habit,B\nx,health,C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.Load(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Nil(t, c)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CATALOG_INVALID", ae.Code)
		})
	}
}

/*
TestCatalog_Load_EmptyIsValid checks that an empty source yields an empty but
usable catalog (selection returns nothing).
*/
func TestCatalog_Load_EmptyIsValid(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())
	assert.Empty(t, c.Select(100))
}

/*
TestCatalog_Messages_DefensiveCopy verifies that mutating the returned slice
does not affect subsequent selections.
*/
func TestCatalog_Messages_DefensiveCopy(t *testing.T) {
	c := mustLoad(t, "1,health,A")

	out := c.Messages()
	require.Len(t, out, 1)
	out[0].Text = "tampered"

	selected := c.Select(1)
	require.Len(t, selected, 1)
	assert.Equal(t, "A", selected[0].Text)
}
