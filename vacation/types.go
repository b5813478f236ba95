// Package vacation implements the vacation-eligibility and scheduling rule
// engine: statutory due dates, blackout and conflict validation, and
// compliant-window suggestions. The engine is purely computational; it reads
// employee and request snapshots supplied by the caller and never persists
// anything.
package vacation

import (
	"github.com/qbench/vacation-engine/calendar"
)

// =============================================================================
// EMPLOYEE - Read-only reference data
// =============================================================================

// RoleQA is the role value carrying hard-coded business meaning:
// each team may have only one holder of this role absent at a time.
// Role stays free text everywhere else; this is a domain convention,
// not a type.
const RoleQA = "QA"

type Employee struct {
	ID   string
	Name string
	Role string
	Team string

	// AdmissionDate is kept textual because callers supply it in either
	// YYYY-MM-DD or DD/MM/YYYY form; the due-date calculator parses it.
	AdmissionDate string

	Email  string
	Skills []string
}

// FindEmployee returns the employee with the given id, or nil.
func FindEmployee(id string, employees []Employee) *Employee {
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i]
		}
	}
	return nil
}

// =============================================================================
// VACATION REQUEST
// =============================================================================

type Status string

const (
	StatusPlanned  Status = "planned"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusNotified Status = "notified"
)

// Active reports whether the status counts toward conflicts and balances.
// Only rejected requests are off the books.
func (s Status) Active() bool {
	switch s {
	case StatusPlanned, StatusPending, StatusApproved, StatusNotified:
		return true
	}
	return false
}

type Request struct {
	ID         string
	EmployeeID string
	Start      calendar.Date
	End        calendar.Date
	Status     Status

	// AcquisitionYear tags which anniversary-based entitlement this request
	// draws against. Zero means untagged, which is a validation error for
	// due-date checks, never a silent default.
	AcquisitionYear int

	Days                  int
	SpecialApprovalReason string
}

// Period returns the inclusive date range of the request.
func (r Request) Period() calendar.Period {
	return calendar.Period{Start: r.Start, End: r.End}
}

// Duration is the inclusive day count of the request.
func (r Request) Duration() int {
	return r.Period().Days()
}
