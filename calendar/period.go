package calendar

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is an inclusive [Start, End] range of calendar days.
// Vacation requests and eligibility windows are both periods.
type Period struct {
	Start Date
	End   Date
}

// Contains reports whether d falls within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Overlaps tests inclusive-range overlap with another period.
func (p Period) Overlaps(other Period) bool {
	return p.Start.BeforeOrEqual(other.End) && p.End.AfterOrEqual(other.Start)
}

// Days returns the inclusive day count of the period.
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End) + 1
}

func (p Period) String() string {
	return p.Start.String() + ".." + p.End.String()
}
