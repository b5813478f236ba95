/*
validate.go - Period validation: the heart of the rule engine

PURPOSE:
  Classifies a candidate vacation request as invalid, valid, or
  valid-with-special-approval, with an ordered list of human-readable
  reasons. Hard rules block; soft rules flag the request for manual
  sign-off instead of silently rejecting it.

RULE ORDER:
  Hard errors (ALL applicable failures are collected, never just the first):
    1. Start date must be strictly in the future
    2. Start date must not be after end date
    3. Start-date blackout: weekend, holiday, two days before a weekend,
       or two days before a holiday
    4. General overlap with any active request
    5. QA same-team simultaneous absence
    6. Acquisition year must be present (and the admission date parseable,
       since the due-date rule depends on both)
  Soft warnings (only evaluated when no hard rule fired):
    7. Non-standard duration (standard allotments: 10, 15, 20, 30 days)
    8. End date past the statutory due date

RESULT CONTRACT:
  - any hard failure:   {IsValid: false, Messages: all errors}
  - clean:              {IsValid: true, Messages: ["valid"]}
  - warnings only:      {IsValid: true, Messages: warnings,
                         IsSpecialApproval: true}
  Callers persisting a special-approval request record the joined messages
  as its justification text.

DETERMINISM:
  "Today" comes from the engine's Now seam, so validation is a pure function
  of its inputs and the fixed clock. Calling twice with identical inputs
  yields identical results.

SEE ALSO:
  - conflict.go: Overlap checks used by rules 4 and 5
  - duedate.go: Due date used by rule 8
  - suggest.go: Runs probes through this validator
*/
package vacation

import (
	"fmt"
	"strings"

	"github.com/qbench/vacation-engine/calendar"
)

// StandardDurations are the allotments a request may take without special
// approval: the split periods plus the full 30-day period.
var StandardDurations = []int{10, 15, 20, 30}

// weekendLeadDays is the blackout distance before a rest day or holiday.
const weekendLeadDays = 2

// Result is the validator's classification of a candidate request.
type Result struct {
	IsValid           bool
	Messages          []string
	IsSpecialApproval bool
}

// SpecialApprovalReason joins the warning messages into the free-text
// justification callers store on the persisted request.
func (r Result) SpecialApprovalReason() string {
	if !r.IsSpecialApproval {
		return ""
	}
	return strings.Join(r.Messages, "; ")
}

// reason is a single rule failure. Message is specific to the candidate;
// Label is the candidate-independent form the suggestion engine deduplicates
// on (for conflicts the two coincide, since the existing request's range is
// what matters).
type reason struct {
	Message string
	Label   string
}

func specific(message string) reason {
	return reason{Message: message, Label: message}
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates validation and suggestion operations against an injected
// holiday calendar and clock.
type Engine struct {
	Holidays calendar.HolidayProvider

	// Now supplies "today". Tests fix it for determinism.
	Now func() calendar.Date
}

// NewEngine returns an engine on the given holiday provider with the real
// clock.
func NewEngine(holidays calendar.HolidayProvider) *Engine {
	return &Engine{Holidays: holidays, Now: calendar.Today}
}

func (e *Engine) today() calendar.Date {
	if e.Now != nil {
		return e.Now()
	}
	return calendar.Today()
}

// =============================================================================
// VALIDATE
// =============================================================================

// Validate classifies a candidate request against the existing requests and
// employee snapshot.
func (e *Engine) Validate(req Request, existing []Request, employees []Employee) Result {
	errs, warns := e.evaluate(req, existing, employees)

	if len(errs) > 0 {
		return Result{IsValid: false, Messages: messages(errs)}
	}
	if len(warns) == 0 {
		return Result{IsValid: true, Messages: []string{"valid"}}
	}
	return Result{IsValid: true, Messages: messages(warns), IsSpecialApproval: true}
}

// evaluate runs the full rule set and returns hard errors and soft warnings
// as structured reasons. Warnings are only meaningful when errs is empty.
func (e *Engine) evaluate(req Request, existing []Request, employees []Employee) (errs, warns []reason) {
	today := e.today()

	// Rule 1: start strictly in the future.
	if !req.Start.After(today) {
		errs = append(errs, reason{
			Message: fmt.Sprintf("start date %s must be in the future", req.Start),
			Label:   "start date must be in the future",
		})
	}

	// Rule 2: start before or on end.
	if req.Start.After(req.End) {
		errs = append(errs, reason{
			Message: fmt.Sprintf("start date %s is after end date %s", req.Start, req.End),
			Label:   "start date is after end date",
		})
	}

	// Rule 3: start-date blackout.
	errs = append(errs, e.blackoutReasons(req.Start)...)

	// Rule 4: general overlap.
	for _, c := range OverlapConflicts(req, existing, employees) {
		errs = append(errs, specific(fmt.Sprintf("period overlaps an existing vacation for %s (%s)", c.EmployeeName, c.Period)))
	}

	// Rule 5: QA same-team absence.
	employee := FindEmployee(req.EmployeeID, employees)
	if employee == nil {
		errs = append(errs, specific(fmt.Sprintf("unknown employee %q", req.EmployeeID)))
	} else {
		for _, c := range QAConflicts(*employee, req, existing, employees) {
			errs = append(errs, specific(fmt.Sprintf("QA conflict: %s from the same team is already absent (%s)", c.EmployeeName, c.Period)))
		}
	}

	// Rule 6: acquisition year present, and the due date computable from it.
	var due calendar.Date
	haveDue := false
	if req.AcquisitionYear == 0 {
		errs = append(errs, specific("acquisition year is required"))
	} else if employee != nil {
		d, err := CalculateDueDate(employee.AdmissionDate, req.AcquisitionYear)
		if err != nil {
			errs = append(errs, specific(fmt.Sprintf("invalid admission date for %s: %v", employee.Name, err)))
		} else {
			due = d
			haveDue = true
		}
	}

	if len(errs) > 0 {
		return errs, nil
	}

	// Rule 7: standard allotments.
	if !standardDuration(req.Duration()) {
		warns = append(warns, specific(fmt.Sprintf("non-standard period of %d days (standard: 10, 15, 20 or 30)", req.Duration())))
	}

	// Rule 8: end date within the statutory window.
	if haveDue && req.End.After(due) {
		warns = append(warns, specific(fmt.Sprintf("period ends after the due date %s", due)))
	}

	return nil, warns
}

// blackoutReasons returns one reason per blackout sub-rule that fires for
// the start date.
func (e *Engine) blackoutReasons(start calendar.Date) []reason {
	var errs []reason

	if start.IsWeekend() {
		errs = append(errs, reason{
			Message: fmt.Sprintf("start date %s falls on a weekend", start),
			Label:   "start date falls on a weekend",
		})
	}
	if e.Holidays.IsHoliday(start) {
		name := calendar.HolidayName(e.Holidays, start)
		errs = append(errs, reason{
			Message: fmt.Sprintf("start date %s falls on a holiday (%s)", start, name),
			Label:   "start date falls on a holiday",
		})
	}

	lead := start.AddDays(weekendLeadDays)
	if lead.IsWeekend() {
		errs = append(errs, reason{
			Message: fmt.Sprintf("start date %s is two days before a weekend", start),
			Label:   "start date is two days before a weekend",
		})
	}
	if e.Holidays.IsHoliday(lead) {
		name := calendar.HolidayName(e.Holidays, lead)
		errs = append(errs, reason{
			Message: fmt.Sprintf("start date %s is two days before a holiday (%s)", start, name),
			Label:   "start date is two days before a holiday",
		})
	}

	return errs
}

func messages(reasons []reason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = r.Message
	}
	return out
}

func standardDuration(days int) bool {
	for _, d := range StandardDurations {
		if days == d {
			return true
		}
	}
	return false
}
