/*
balance.go - Entitlement balance per acquisition year

PURPOSE:
  Each acquisition year grants a 30-day entitlement. The balance is what
  remains after subtracting every active request tagged with that year.
  Rejected requests give their days back; everything else holds them.

  Amounts use decimal arithmetic so partial-day policies can be introduced
  without floating-point drift.
*/
package vacation

import (
	"github.com/shopspring/decimal"
)

// EntitlementDays is the statutory allotment per acquisition year.
const EntitlementDays = 30

// BalanceSummary is the per-employee, per-acquisition-year balance view.
type BalanceSummary struct {
	EmployeeID      string
	AcquisitionYear int
	Entitlement     decimal.Decimal
	Requested       decimal.Decimal
	Remaining       decimal.Decimal
}

// Balance computes the remaining entitlement for an employee's acquisition
// year from the supplied request snapshot.
func Balance(employeeID string, acquisitionYear int, requests []Request) BalanceSummary {
	entitlement := decimal.NewFromInt(EntitlementDays)
	requested := decimal.Zero

	for _, r := range requests {
		if r.EmployeeID != employeeID || r.AcquisitionYear != acquisitionYear {
			continue
		}
		if !r.Status.Active() {
			continue
		}
		requested = requested.Add(decimal.NewFromInt(int64(r.Duration())))
	}

	return BalanceSummary{
		EmployeeID:      employeeID,
		AcquisitionYear: acquisitionYear,
		Entitlement:     entitlement,
		Requested:       requested,
		Remaining:       entitlement.Sub(requested),
	}
}
