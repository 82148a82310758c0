// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recovery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/resolve/internal/platform/apperr"
	"github.com/taibuivan/resolve/internal/recovery"
)

/*
TestDaysClean_WholeDayTruncation verifies that the count only advances when
the calendar date rolls over, regardless of time-of-day.
*/
func TestDaysClean_WholeDayTruncation(t *testing.T) {
	quit := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same_day_morning", time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC), 0},
		{"same_day_last_second", time.Date(2026, time.January, 10, 23, 59, 59, 0, time.UTC), 0},
		{"next_day_first_second", time.Date(2026, time.January, 11, 0, 0, 1, 0, time.UTC), 1},
		{"almost_two_days", time.Date(2026, time.January, 11, 23, 0, 0, 0, time.UTC), 1},
		{"thirty_days", time.Date(2026, time.February, 9, 12, 0, 0, 0, time.UTC), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := recovery.DaysClean(quit, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestDaysClean_MonotonicOverTime asserts that for a fixed quit date the count
never decreases as the reference instant advances.
*/
func TestDaysClean_MonotonicOverTime(t *testing.T) {
	quit := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	previous := -1 << 30
	for hour := 0; hour < 24*14; hour++ {
		now := quit.Add(time.Duration(hour) * time.Hour)
		got, err := recovery.DaysClean(quit, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, previous)
		previous = got
	}
}

/*
TestDaysClean_FutureQuitDateIsNegative checks that the raw result is signed:
a quit date after the reference instant yields a negative count, which the
display layer clamps separately.
*/
func TestDaysClean_FutureQuitDateIsNegative(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	quit := time.Date(2026, time.June, 4, 0, 0, 0, 0, time.UTC)

	got, err := recovery.DaysClean(quit, now)
	require.NoError(t, err)
	assert.Equal(t, -3, got)

	assert.Equal(t, 0, recovery.ClampDays(got))
	assert.Equal(t, 7, recovery.ClampDays(7))
}

/*
TestDaysClean_TimezoneReduction verifies that the reference instant is reduced
in the quit date's location: an instant that is already "tomorrow" in UTC but
still "today" in the quit date's zone counts as the same day.
*/
func TestDaysClean_TimezoneReduction(t *testing.T) {
	zone := time.FixedZone("UTC-8", -8*60*60)
	quit := time.Date(2026, time.January, 10, 0, 0, 0, 0, zone)

	// 2026-01-11 04:00 UTC is 2026-01-10 20:00 in UTC-8.
	now := time.Date(2026, time.January, 11, 4, 0, 0, 0, time.UTC)

	got, err := recovery.DaysClean(quit, now)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

/*
TestDaysClean_ZeroValuesRejected asserts the INVALID_DATE guard for zero-value
inputs.
*/
func TestDaysClean_ZeroValuesRejected(t *testing.T) {
	valid := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := recovery.DaysClean(time.Time{}, valid)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_DATE", ae.Code)

	_, err = recovery.DaysClean(valid, time.Time{})
	require.Error(t, err)
}
