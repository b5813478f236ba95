package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbench/vacation-engine/calendar"
)

// =============================================================================
// PARSING
// =============================================================================

func TestParse_BothEncodings(t *testing.T) {
	iso, err := calendar.Parse("2025-01-15")
	require.NoError(t, err)

	br, err := calendar.Parse("15/01/2025")
	require.NoError(t, err)

	assert.True(t, iso.Equal(br), "both encodings should yield the same day")
	assert.Equal(t, "2025-01-15", iso.String())
	assert.Equal(t, 15, br.Day())
	assert.Equal(t, time.January, br.Month())
	assert.Equal(t, 2025, br.Year())
}

func TestParse_BadInput(t *testing.T) {
	for _, input := range []string{"", "01-15-2025", "yesterday", "2025/01/15"} {
		_, err := calendar.Parse(input)
		require.Error(t, err, "input %q should not parse", input)

		assert.True(t, errors.Is(err, calendar.ErrBadDate))
		var parseErr *calendar.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, input, parseErr.Input)
	}
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestAddMonths_RollsOverShortMonths(t *testing.T) {
	// Aug 31 + 6 months lands on the nonexistent Feb 31, which rolls over
	// to March 3 in a 28-day February. Never clamped to Feb 28.
	got := calendar.NewDate(2025, time.August, 31).AddMonths(6)
	assert.Equal(t, "2026-03-03", got.String())
}

func TestAddDays_CrossesMonthAndYear(t *testing.T) {
	got := calendar.NewDate(2025, time.December, 30).AddDays(5)
	assert.Equal(t, "2026-01-04", got.String())
}

func TestDaysBetween(t *testing.T) {
	a := calendar.NewDate(2025, time.September, 1)
	b := calendar.NewDate(2025, time.September, 30)

	assert.Equal(t, 29, calendar.DaysBetween(a, b))
	assert.Equal(t, -29, calendar.DaysBetween(b, a))
	assert.Equal(t, 0, calendar.DaysBetween(a, a))
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, 28, calendar.EndOfMonth(2026, time.February).Day())
	assert.Equal(t, 29, calendar.EndOfMonth(2028, time.February).Day())
	assert.Equal(t, 31, calendar.EndOfMonth(2025, time.December).Day())
}

// =============================================================================
// WEEKENDS AND PERIODS
// =============================================================================

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.NewDate(2025, time.September, 6).IsWeekend(), "Saturday")
	assert.True(t, calendar.NewDate(2025, time.September, 7).IsWeekend(), "Sunday")
	assert.False(t, calendar.NewDate(2025, time.September, 1).IsWeekend(), "Monday")
	assert.False(t, calendar.NewDate(2025, time.September, 5).IsWeekend(), "Friday")
}

func TestPeriod_OverlapsAndDays(t *testing.T) {
	p := calendar.Period{
		Start: calendar.NewDate(2025, time.September, 1),
		End:   calendar.NewDate(2025, time.September, 10),
	}

	assert.Equal(t, 10, p.Days())
	assert.True(t, p.Contains(calendar.NewDate(2025, time.September, 10)), "end is inclusive")

	// Touching at a single day still overlaps: ranges are inclusive.
	touching := calendar.Period{
		Start: calendar.NewDate(2025, time.September, 10),
		End:   calendar.NewDate(2025, time.September, 20),
	}
	assert.True(t, p.Overlaps(touching))
	assert.True(t, touching.Overlaps(p))

	disjoint := calendar.Period{
		Start: calendar.NewDate(2025, time.September, 11),
		End:   calendar.NewDate(2025, time.September, 20),
	}
	assert.False(t, p.Overlaps(disjoint))
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestStaticProvider_FixedHolidays(t *testing.T) {
	p := calendar.StaticProvider{}

	assert.True(t, p.IsHoliday(calendar.NewDate(2025, time.December, 25)))
	assert.True(t, p.IsHoliday(calendar.NewDate(2025, time.November, 20)))
	assert.True(t, p.IsHoliday(calendar.NewDate(1999, time.May, 1)), "fixed holidays hold for any year")
	assert.False(t, p.IsHoliday(calendar.NewDate(2025, time.September, 3)))
}

func TestStaticProvider_MovableHolidaysOnlyForEnumeratedYears(t *testing.T) {
	p := calendar.StaticProvider{}

	// Carnival is enumerated for 2025 and 2026.
	assert.True(t, p.IsHoliday(calendar.NewDate(2025, time.March, 4)))
	assert.True(t, p.IsHoliday(calendar.NewDate(2026, time.February, 17)))

	// For other years the movable entries are absent, not guessed.
	assert.False(t, p.IsHoliday(calendar.NewDate(2030, time.March, 4)))

	table2025 := p.HolidaysFor(2025)
	table1999 := p.HolidaysFor(1999)
	assert.Greater(t, len(table2025), len(table1999))
}

func TestHolidayName(t *testing.T) {
	p := calendar.StaticProvider{}

	assert.Equal(t, "Natal", calendar.HolidayName(p, calendar.NewDate(2025, time.December, 25)))
	assert.Equal(t, "Carnaval", calendar.HolidayName(p, calendar.NewDate(2025, time.March, 3)))
	assert.Equal(t, "", calendar.HolidayName(p, calendar.NewDate(2025, time.September, 3)))
}
