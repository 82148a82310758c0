// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recovery

import (
	"time"

	"github.com/taibuivan/resolve/internal/platform/apperr"
)

/*
DaysClean computes the number of whole calendar days between a quit date and a
reference instant.

Description: Both instants are reduced to calendar dates before diffing. The
reference instant is first shifted into the quit date's location, so
time-of-day, server timezone, and DST transitions can never produce an
off-by-one day count. The result is truncating: the count only advances when
the calendar date rolls over.

The raw result is signed. A quit date after the reference instant yields a
negative count; callers that present the value clamp it to zero themselves.

Parameters:
  - quitDate: time.Time (The declared quit instant)
  - now: time.Time (The reference instant)

Returns:
  - int: Signed whole-day difference
  - error: apperr.InvalidDate for zero-value inputs
*/
func DaysClean(quitDate, now time.Time) (int, error) {
	if quitDate.IsZero() || now.IsZero() {
		return 0, apperr.InvalidDate("Quit date and reference time must be set")
	}

	// Reduce both instants to calendar dates in the quit date's location.
	localNow := now.In(quitDate.Location())

	quitYear, quitMonth, quitDay := quitDate.Date()
	nowYear, nowMonth, nowDay := localNow.Date()

	// Rebuilding both dates at UTC midnight makes the subtraction an exact
	// multiple of 24h, immune to DST offsets in the original location.
	quitMidnight := time.Date(quitYear, quitMonth, quitDay, 0, 0, 0, 0, time.UTC)
	nowMidnight := time.Date(nowYear, nowMonth, nowDay, 0, 0, 0, 0, time.UTC)

	return int(nowMidnight.Sub(quitMidnight) / (24 * time.Hour)), nil
}

// ClampDays converts a raw signed day count into its display form.
func ClampDays(raw int) int {
	if raw < 0 {
		return 0
	}
	return raw
}
