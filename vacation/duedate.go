/*
duedate.go - Statutory due-date calculation

PURPOSE:
  The due date is the deadline by which a vacation tied to an acquisition
  year must be fully taken: the admission anniversary inside that year,
  shifted forward by six months.

ALGORITHM:
  1. Parse the admission date (YYYY-MM-DD or DD/MM/YYYY)
  2. Rebuild it with the acquisition year: (admission day, admission month,
     acquisition year)
  3. Add six months, with calendar rollover for days that do not exist in
     the target month (Aug 31 + 6 months = Mar 3, never Feb 28)

SEE ALSO:
  - calendar/date.go: Parse and AddMonths semantics
  - validate.go: Uses the due date for the past-due warning rule
*/
package vacation

import (
	"github.com/qbench/vacation-engine/calendar"
)

// toleranceMonths is the statutory window between the acquisition-year
// anniversary and the deadline.
const toleranceMonths = 6

// CalculateDueDate computes the statutory deadline for an acquisition year
// from an employee's admission date. Returns a *calendar.ParseError when the
// admission date matches neither supported encoding.
func CalculateDueDate(admissionDate string, acquisitionYear int) (calendar.Date, error) {
	adm, err := calendar.Parse(admissionDate)
	if err != nil {
		return calendar.Date{}, err
	}

	base := calendar.NewDate(acquisitionYear, adm.Month(), adm.Day())
	return base.AddMonths(toleranceMonths), nil
}

// DaysUntilDue returns the whole days from today to the due date.
// Negative values mean the deadline has already passed.
func DaysUntilDue(due, today calendar.Date) int {
	return calendar.DaysBetween(today, due)
}
