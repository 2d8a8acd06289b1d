package summary

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/gigurra/spending-ledger/internal/ledger"
)

// InvalidFilterError reports a malformed category or interval filter.
type InvalidFilterError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid %s filter %q: %s", e.Field, e.Value, e.Reason)
}

// IntervalUnit is the calendar unit of a recency interval.
type IntervalUnit byte

const (
	Days   IntervalUnit = 'd'
	Months IntervalUnit = 'm'
	Years  IntervalUnit = 'n'
)

var intervalPattern = regexp.MustCompile(`^([0-9]+)([dmn])$`)

// Interval is a recency window such as 30d, 6m or 1n.
type Interval struct {
	Count int
	Unit  IntervalUnit
}

// ParseInterval parses <positive integer><unit> where unit is d (days),
// m (calendar months) or n (calendar years).
func ParseInterval(s string) (Interval, error) {
	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return Interval{}, &InvalidFilterError{Field: "interval", Value: s, Reason: "expected <positive integer><d|m|n>, e.g. 30d, 6m or 1n"}
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return Interval{}, &InvalidFilterError{Field: "interval", Value: s, Reason: "count is out of range"}
	}
	if count <= 0 {
		return Interval{}, &InvalidFilterError{Field: "interval", Value: s, Reason: "count must be positive"}
	}
	return Interval{Count: count, Unit: IntervalUnit(m[2][0])}, nil
}

func (i Interval) String() string {
	return fmt.Sprintf("%d%c", i.Count, i.Unit)
}

// Cutoff subtracts the interval from now using calendar arithmetic. Time of day
// and location are kept. Month and year steps clamp to the last day of the
// target month, so 2024-03-31 minus 1m is 2024-02-29.
func (i Interval) Cutoff(now time.Time) time.Time {
	switch i.Unit {
	case Months:
		return subMonths(now, i.Count)
	case Years:
		return subMonths(now, 12*i.Count)
	default:
		return now.AddDate(0, 0, -i.Count)
	}
}

func subMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 - n
	ty, tm := floorDiv(total, 12), time.Month(floorMod(total, 12)+1)
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// Filter selects records by category and recency. The zero value matches everything.
type Filter struct {
	category    string
	hasCategory bool
	interval    string
	cutoff      time.Time
	hasCutoff   bool
}

// NewFilter builds a filter from raw input. Empty strings mean "not supplied".
// Category matching is exact and case-sensitive.
func NewFilter(category, interval string, now time.Time) (Filter, error) {
	f := Filter{}
	if category != "" {
		f.category = category
		f.hasCategory = true
	}
	if interval != "" {
		iv, err := ParseInterval(interval)
		if err != nil {
			return Filter{}, err
		}
		f.interval = interval
		f.cutoff = iv.Cutoff(now)
		f.hasCutoff = true
	}
	return f, nil
}

// Category returns the category filter value, if active.
func (f Filter) Category() (string, bool) {
	return f.category, f.hasCategory
}

// Cutoff returns the earliest accepted timestamp, if an interval is active.
func (f Filter) Cutoff() (time.Time, bool) {
	return f.cutoff, f.hasCutoff
}

// Matches reports whether r passes every active sub-filter.
func (f Filter) Matches(r ledger.Record) bool {
	if f.hasCategory && r.Category != f.category {
		return false
	}
	if f.hasCutoff && r.Timestamp.Before(f.cutoff) {
		return false
	}
	return true
}

// Description names each active filter, e.g. "category of Food", "interval of 30d".
func (f Filter) Description() []string {
	var parts []string
	if f.hasCategory {
		parts = append(parts, "category of "+f.category)
	}
	if f.hasCutoff {
		parts = append(parts, "interval of "+f.interval)
	}
	return parts
}
