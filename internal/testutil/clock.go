// Package testutil provides shared fixtures for tests: deterministic
// clocks, in-memory datasets with known flow totals, and SQLite fixture
// files.
package testutil

import "time"

// FixedTime is the timestamp every fixture clock reports.
var FixedTime = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

// FixedClock returns a clock function frozen at FixedTime, so generated
// metadata is byte-stable across runs.
func FixedClock() func() time.Time {
	return func() time.Time { return FixedTime }
}
