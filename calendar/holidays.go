/*
holidays.go - Holiday provider interface and the static Brazilian table

PURPOSE:
  Blackout rules need to know whether a given day is a holiday. The rule
  logic only ever talks to the HolidayProvider interface, so the table can
  be replaced by a database-backed or feed-backed provider without touching
  any validation code.

STATIC TABLE CAVEAT:
  Movable holidays (carnival, Good Friday, Corpus Christi) cannot be derived
  from a (month, day) pair; they are enumerated here only for the years we
  have verified. For any other year the static provider returns the fixed
  holidays alone. A provider with a real ecclesiastical-calendar source must
  be injected when those years matter.

SEE ALSO:
  - date.go: Date type and weekend test
*/
package calendar

import "time"

// Holiday is a single (month, day) entry in a year's holiday table.
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
}

// HolidayProvider answers holiday lookups for the rule engine.
type HolidayProvider interface {
	// HolidaysFor returns the holiday table for a year.
	HolidaysFor(year int) []Holiday

	// IsHoliday reports whether the date matches an entry in its year's table.
	IsHoliday(d Date) bool
}

// =============================================================================
// STATIC PROVIDER - Fixed national + municipal table
// =============================================================================

// fixed holds holidays that fall on the same (month, day) every year:
// the national set plus the São Paulo municipal set.
var fixed = []Holiday{
	{time.January, 1, "Confraternização Universal"},
	{time.January, 25, "Aniversário de São Paulo"},
	{time.April, 21, "Tiradentes"},
	{time.May, 1, "Dia do Trabalho"},
	{time.July, 9, "Revolução Constitucionalista"},
	{time.September, 7, "Independência do Brasil"},
	{time.October, 12, "Nossa Senhora Aparecida"},
	{time.November, 2, "Finados"},
	{time.November, 15, "Proclamação da República"},
	{time.November, 20, "Consciência Negra"},
	{time.December, 25, "Natal"},
}

// movable holds the Easter-linked dates per enumerated year.
var movable = map[int][]Holiday{
	2025: {
		{time.March, 3, "Carnaval"},
		{time.March, 4, "Carnaval"},
		{time.April, 18, "Sexta-feira Santa"},
		{time.June, 19, "Corpus Christi"},
	},
	2026: {
		{time.February, 16, "Carnaval"},
		{time.February, 17, "Carnaval"},
		{time.April, 3, "Sexta-feira Santa"},
		{time.June, 4, "Corpus Christi"},
	},
}

// StaticProvider serves the hard-coded holiday table.
type StaticProvider struct{}

var _ HolidayProvider = (*StaticProvider)(nil)

func (StaticProvider) HolidaysFor(year int) []Holiday {
	table := make([]Holiday, 0, len(fixed)+4)
	table = append(table, fixed...)
	table = append(table, movable[year]...)
	return table
}

func (p StaticProvider) IsHoliday(d Date) bool {
	_, ok := p.Lookup(d)
	return ok
}

// Lookup returns the holiday matching d, if any.
func (p StaticProvider) Lookup(d Date) (Holiday, bool) {
	for _, h := range p.HolidaysFor(d.Year()) {
		if h.Month == d.Month() && h.Day == d.Day() {
			return h, true
		}
	}
	return Holiday{}, false
}

// HolidayName returns the label for d when the provider knows it, else "".
// Works for any provider; uses Lookup when available to avoid a scan.
func HolidayName(p HolidayProvider, d Date) string {
	type lookuper interface {
		Lookup(Date) (Holiday, bool)
	}
	if lp, ok := p.(lookuper); ok {
		h, found := lp.Lookup(d)
		if !found {
			return ""
		}
		return h.Name
	}
	for _, h := range p.HolidaysFor(d.Year()) {
		if h.Month == d.Month() && h.Day == d.Day() {
			return h.Name
		}
	}
	return ""
}
