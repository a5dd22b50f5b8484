package delivery

// Reason names the first rule that rejected a candidate date.
type Reason string

const (
	ReasonAvailable     Reason = "available"
	ReasonAfterCutoff   Reason = "after_cutoff"
	ReasonBlackout      Reason = "blackout"
	ReasonWeekday       Reason = "weekday_not_allowed"
	ReasonExcluded      Reason = "excluded_date"
	ReasonBeforeMinDate Reason = "before_min_date"
)

// Check evaluates d against r and reports the first failing rule, in this
// order: hard cutoff, blackout ranges, weekday, excluded dates, minimum lead
// date. It performs no I/O and costs O(blackouts) plus a map lookup.
func Check(d Date, r Rules) Reason {
	if r.HardCutoff != nil && d.After(*r.HardCutoff) {
		return ReasonAfterCutoff
	}
	for _, b := range r.Blackouts {
		if b.Contains(d) {
			return ReasonBlackout
		}
	}
	if !r.ActiveWeekdays().Contains(d.Weekday()) {
		return ReasonWeekday
	}
	if r.IsExcluded(d) {
		return ReasonExcluded
	}
	// Pickers hide days before the minimum, but that is advisory only.
	if d.Before(r.MinLeadDate) {
		return ReasonBeforeMinDate
	}
	return ReasonAvailable
}

// IsAvailable reports whether d is a valid delivery date under r.
func IsAvailable(d Date, r Rules) bool {
	return Check(d, r) == ReasonAvailable
}

// Day is one cell of a calendar view.
type Day struct {
	Date      Date   `json:"date"`
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`
}

// Calendar evaluates every day from first through last inclusive.
func Calendar(first, last Date, r Rules) []Day {
	if last.Before(first) {
		return nil
	}
	var days []Day
	for d := first; !d.After(last); d = d.AddDays(1) {
		reason := Check(d, r)
		day := Day{Date: d, Available: reason == ReasonAvailable}
		if !day.Available {
			day.Reason = reason
		}
		days = append(days, day)
	}
	return days
}

// Month evaluates every day of the month containing d.
func Month(d Date, r Rules) []Day {
	first := NewDate(d.Year, d.Month, 1)
	last := first.AddMonths(1).AddDays(-1)
	return Calendar(first, last, r)
}
