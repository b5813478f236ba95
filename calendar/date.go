/*
Package calendar provides the date primitives for the vacation rule engine.

PURPOSE:
  Every business rule in this system is date arithmetic: due dates are
  anniversaries shifted by months, blackouts are weekend/holiday proximity
  checks, conflicts are inclusive range overlaps. All of that only works if
  dates are plain calendar days, never instants. This package owns that
  representation.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A day-granular calendar date, normalized to midnight UTC
  - Parse: Accepts YYYY-MM-DD and DD/MM/YYYY encodings
  - ParseError: Typed error for unparseable input

DESIGN PRINCIPLES:
  1. Normalization: comparisons always happen on midnight-UTC values, so
     timezone offsets can never produce off-by-one days
  2. Rollover over clamping: AddMonths carries the day-of-month forward the
     way Go's calendar arithmetic does (Aug 31 + 6 months = Mar 3), it never
     truncates to the last day of a shorter month

SEE ALSO:
  - holidays.go: Holiday provider interface and the static table
  - period.go: Inclusive date ranges
*/
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granular calendar date
// =============================================================================

type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date, normalized to a UTC calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// =============================================================================
// PARSING
// =============================================================================

// ErrBadDate is the sentinel wrapped by every ParseError.
var ErrBadDate = errors.New("unrecognized date format")

// ParseError reports input that matches neither supported encoding.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q (want YYYY-MM-DD or DD/MM/YYYY)", e.Input)
}

func (e *ParseError) Unwrap() error { return ErrBadDate }

var layouts = []string{"2006-01-02", "02/01/2006"}

// Parse reads a date string in YYYY-MM-DD or DD/MM/YYYY form.
func Parse(s string) (Date, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, &ParseError{Input: s}
}

// =============================================================================
// COMPARISON
// =============================================================================

func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func (d Date) AddDays(n int) Date   { return Date{Time: d.normalize().AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.normalize().AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{Time: d.normalize().AddDate(n, 0, 0)} }

// =============================================================================
// PROPERTIES
// =============================================================================

func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

// IsWeekend reports whether the date falls on one of the two rest days.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// UTILITIES
// =============================================================================

// DaysBetween returns the whole days from one date to another.
// Negative when `to` precedes `from`.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return Date{Time: t}
}
