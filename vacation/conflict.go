/*
conflict.go - Collision detection for candidate vacation periods

PURPOSE:
  Two independent checks, both pure functions over the supplied snapshots:

  1. General overlap: the candidate period may not cross any request already
     on the books, for any employee. Rejected requests are off the books;
     the candidate's own record is excluded by id so re-validation of a
     stored request does not collide with itself.

  2. Role-scoped ("QA") overlap: when the candidate employee holds the QA
     role, no other QA on the same team may be absent at the same time.
     Only approved and planned requests are consulted here; pending and
     notified are not. That asymmetry is inherited from the rule definition
     and is intentionally preserved.

SEE ALSO:
  - types.go: RoleQA convention, Status.Active
  - validate.go: Turns conflicts into hard-error messages
*/
package vacation

import (
	"github.com/qbench/vacation-engine/calendar"
)

// Conflict names a colliding request and its owner.
type Conflict struct {
	EmployeeID   string
	EmployeeName string
	Period       calendar.Period
}

// OverlapConflicts returns every active request whose inclusive range
// crosses the candidate's, excluding the candidate's own record.
func OverlapConflicts(candidate Request, existing []Request, employees []Employee) []Conflict {
	var conflicts []Conflict
	for _, other := range existing {
		if other.ID == candidate.ID || other.Status == StatusRejected {
			continue
		}
		if !candidate.Period().Overlaps(other.Period()) {
			continue
		}
		conflicts = append(conflicts, newConflict(other, employees))
	}
	return conflicts
}

// QAConflicts returns overlapping approved/planned requests from other QA
// role-holders on the same team. Returns nil when the candidate employee
// does not hold the QA role.
func QAConflicts(employee Employee, candidate Request, existing []Request, employees []Employee) []Conflict {
	if employee.Role != RoleQA {
		return nil
	}

	peers := make(map[string]bool)
	for _, e := range employees {
		if e.ID != employee.ID && e.Team == employee.Team && e.Role == RoleQA {
			peers[e.ID] = true
		}
	}

	var conflicts []Conflict
	for _, other := range existing {
		if !peers[other.EmployeeID] {
			continue
		}
		if other.Status != StatusApproved && other.Status != StatusPlanned {
			continue
		}
		if !candidate.Period().Overlaps(other.Period()) {
			continue
		}
		conflicts = append(conflicts, newConflict(other, employees))
	}
	return conflicts
}

func newConflict(r Request, employees []Employee) Conflict {
	c := Conflict{
		EmployeeID: r.EmployeeID,
		Period:     r.Period(),
	}
	if emp := FindEmployee(r.EmployeeID, employees); emp != nil {
		c.EmployeeName = emp.Name
	} else {
		c.EmployeeName = r.EmployeeID
	}
	return c
}
