/*
suggest.go - Proactive search for compliant vacation windows

PURPOSE:
  Saves the user from manual trial and error. Two stages:

  1. SuggestMonths: the eligibility window is the six months ending at the
     due date. Every month in that window whose last day is not already in
     the past is a candidate, returned as a chronological label list
     ("November 2025", ..., "May 2026").

  2. SuggestDatesForMonth: for a chosen month, probe every day-of-month as
     the start of a fixed 30-day period and run the full validator. Days
     whose probe is fully valid (not special-approval) become suggestions;
     every failing probe contributes its reasons to a deduplicated
     impediment list, so a month with zero valid days still explains why.

  The search is brute force over a bounded domain (at most 31 probes of a
  closed rule set); no further optimization is warranted.

SEE ALSO:
  - validate.go: The validator every probe runs through
  - duedate.go: Due date anchoring the eligibility window
*/
package vacation

import (
	"fmt"
	"time"

	"github.com/qbench/vacation-engine/calendar"
)

// probeDays is the fixed length of a suggestion probe: the full statutory
// period.
const probeDays = 30

const monthLabelLayout = "January 2006"

// MonthLabel renders a human-readable month label.
func MonthLabel(year int, month time.Month) string {
	return calendar.NewDate(year, month, 1).Time.Format(monthLabelLayout)
}

// ParseMonthLabel reads a label produced by MonthLabel.
func ParseMonthLabel(label string) (int, time.Month, error) {
	t, err := time.Parse(monthLabelLayout, label)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownMonth, label)
	}
	return t.Year(), t.Month(), nil
}

// MonthSuggestions is the per-month result of the day-granular search.
type MonthSuggestions struct {
	// Dates are start dates whose 30-day probe validated fully valid.
	Dates []calendar.Date

	// Impediments are the deduplicated reasons behind every rejected day.
	// Never empty when Dates is empty.
	Impediments []string
}

// SuggestMonths enumerates candidate months inside the legal window
// [dueDate - 6 months, dueDate], dropping months already wholly in the past.
func (e *Engine) SuggestMonths(employeeID string, employees []Employee, existing []Request, acquisitionYear int) ([]string, error) {
	employee := FindEmployee(employeeID, employees)
	if employee == nil {
		return nil, &EmployeeNotFoundError{EmployeeID: employeeID}
	}
	if acquisitionYear == 0 {
		return nil, ErrMissingAcquisitionYear
	}

	due, err := CalculateDueDate(employee.AdmissionDate, acquisitionYear)
	if err != nil {
		return nil, err
	}

	today := e.today()
	windowStart := due.AddMonths(-toleranceMonths)

	var labels []string
	cursor := calendar.StartOfMonth(windowStart.Year(), windowStart.Month())
	for cursor.BeforeOrEqual(due) {
		last := calendar.EndOfMonth(cursor.Year(), cursor.Month())
		if !last.Before(today) {
			labels = append(labels, MonthLabel(cursor.Year(), cursor.Month()))
		}
		cursor = cursor.AddMonths(1)
	}
	return labels, nil
}

// SuggestDatesForMonth probes every day of the labeled month as the start of
// a 30-day period and partitions the outcomes into valid start dates and
// impediment reasons.
func (e *Engine) SuggestDatesForMonth(monthLabel, employeeID string, employees []Employee, existing []Request, acquisitionYear int) (*MonthSuggestions, error) {
	year, month, err := ParseMonthLabel(monthLabel)
	if err != nil {
		return nil, err
	}
	if FindEmployee(employeeID, employees) == nil {
		return nil, &EmployeeNotFoundError{EmployeeID: employeeID}
	}

	result := &MonthSuggestions{}
	seen := make(map[string]bool)
	lastDay := calendar.EndOfMonth(year, month).Day()

	for day := 1; day <= lastDay; day++ {
		start := calendar.NewDate(year, month, day)
		probe := Request{
			EmployeeID:      employeeID,
			Start:           start,
			End:             start.AddDays(probeDays - 1),
			AcquisitionYear: acquisitionYear,
		}

		errs, warns := e.evaluate(probe, existing, employees)
		if len(errs) == 0 && len(warns) == 0 {
			result.Dates = append(result.Dates, start)
			continue
		}

		// Deduplicate on the candidate-independent label so thirty probes
		// hitting the same rule yield one impediment, not thirty.
		for _, r := range append(errs, warns...) {
			if !seen[r.Label] {
				seen[r.Label] = true
				result.Impediments = append(result.Impediments, r.Label)
			}
		}
	}

	return result, nil
}
