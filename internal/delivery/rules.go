package delivery

import (
	"encoding/json"
	"sort"
)

// pickerHorizonMonths bounds the interactive picker when no cutoff applies.
const pickerHorizonMonths = 3

// ProductOverride is present when the cart holds a product with its own
// delivery window. Its weekday set replaces the store default outright.
type ProductOverride struct {
	Until    *Date      `json:"until_date,omitempty"`
	Weekdays WeekdaySet `json:"allowed_weekdays"`
}

// Rules is the effective eligibility configuration for one cart at one
// moment. Build it with Resolver.Resolve or NewRules; it is not modified
// after construction and must not outlive the cart state it came from.
type Rules struct {
	MinLeadDate     Date
	HardCutoff      *Date
	AllowedWeekdays WeekdaySet
	Blackouts       []RecurringRange
	Override        *ProductOverride

	excluded map[Date]struct{}
}

// NewRules assembles a rule set and applies the weekday fallback.
func NewRules(minLead Date, cutoff *Date, weekdays WeekdaySet, excluded []Date, blackouts []RecurringRange, override *ProductOverride) Rules {
	ex := make(map[Date]struct{}, len(excluded))
	for _, d := range excluded {
		ex[d] = struct{}{}
	}
	if override != nil {
		o := *override
		o.Weekdays = o.Weekdays.OrDefault()
		override = &o
	}
	return Rules{
		MinLeadDate:     minLead,
		HardCutoff:      copyDate(cutoff),
		AllowedWeekdays: weekdays.OrDefault(),
		Blackouts:       append([]RecurringRange(nil), blackouts...),
		Override:        override,
		excluded:        ex,
	}
}

// ActiveWeekdays is the weekday set that governs this evaluation context.
func (r Rules) ActiveWeekdays() WeekdaySet {
	if r.Override != nil {
		return r.Override.Weekdays.OrDefault()
	}
	return r.AllowedWeekdays.OrDefault()
}

func (r Rules) IsExcluded(d Date) bool {
	_, ok := r.excluded[d]
	return ok
}

// ExcludedDates returns the blackout list in ascending order.
func (r Rules) ExcludedDates() []Date {
	out := make([]Date, 0, len(r.excluded))
	for d := range r.excluded {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// MaxDate is the last day an interactive picker needs to offer. It is
// advisory; the authoritative check only enforces HardCutoff.
func (r Rules) MaxDate() Date {
	if r.HardCutoff != nil {
		return *r.HardCutoff
	}
	return r.MinLeadDate.AddMonths(pickerHorizonMonths)
}

type rulesJSON struct {
	MinDate         Date             `json:"min_date"`
	CutoffDate      *Date            `json:"cutoff_date"`
	AllowedWeekdays WeekdaySet       `json:"allowed_weekdays"`
	ExcludedDates   []Date           `json:"excluded_dates"`
	BlackoutRanges  []RecurringRange `json:"blackout_ranges"`
	Override        *ProductOverride `json:"override,omitempty"`
	MaxDate         Date             `json:"max_date"`
}

// MarshalJSON produces the single serialized form handed to the browser
// picker, so both evaluators read identical rule data.
func (r Rules) MarshalJSON() ([]byte, error) {
	blackouts := r.Blackouts
	if blackouts == nil {
		blackouts = []RecurringRange{}
	}
	return json.Marshal(rulesJSON{
		MinDate:         r.MinLeadDate,
		CutoffDate:      r.HardCutoff,
		AllowedWeekdays: r.AllowedWeekdays,
		ExcludedDates:   r.ExcludedDates(),
		BlackoutRanges:  blackouts,
		Override:        r.Override,
		MaxDate:         r.MaxDate(),
	})
}

func (r *Rules) UnmarshalJSON(b []byte) error {
	var raw rulesJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = NewRules(raw.MinDate, raw.CutoffDate, raw.AllowedWeekdays, raw.ExcludedDates, raw.BlackoutRanges, raw.Override)
	return nil
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
