// Package months provides the canonical 12-month calendar sequence and
// rotation to an arbitrary start month.
package months

import (
	"time"

	"github.com/trackingsuccess/profit-planner/pkg/constants"
)

// DateLayout is the format expected for account start dates.
const DateLayout = "2006-01-02"

// Names is the canonical calendar sequence. These exact strings are also the
// keys used in persisted profiles, so storage stays canonical regardless of
// any display rotation.
var Names = [constants.MonthsPerYear]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var indexByName = func() map[string]int {
	m := make(map[string]int, len(Names))
	for i, name := range Names {
		m[name] = i + 1
	}
	return m
}()

// Index returns the 1-based calendar index of a month name (January=1).
func Index(name string) (int, bool) {
	idx, ok := indexByName[name]
	return idx, ok
}

// Rotate returns the 12 months beginning at start (1-based, January=1) and
// wrapping around. Any integer is accepted and taken mod 12.
func Rotate(start int) []string {
	idx := (start - 1) % constants.MonthsPerYear
	if idx < 0 {
		idx += constants.MonthsPerYear
	}
	out := make([]string, 0, constants.MonthsPerYear)
	out = append(out, Names[idx:]...)
	out = append(out, Names[:idx]...)
	return out
}

// StartMonth resolves an ISO date to its 1-based calendar month. Unparseable
// dates fall back to January, matching the planner's lenient ingestion.
func StartMonth(isoDate string) int {
	t, err := time.Parse(DateLayout, isoDate)
	if err != nil {
		return 1
	}
	return int(t.Month())
}
