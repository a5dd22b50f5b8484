package delivery

import (
	"time"
)

const (
	// DefaultMinDays applies when the store has not configured a lead time.
	DefaultMinDays = 2
	// DefaultCutoffHour splits same-day ordering for the fast category.
	DefaultCutoffHour = 15
)

// Item is what the resolver needs to know about one cart line.
type Item struct {
	ProductID  string
	Categories []string

	// UntilEnabled marks a product carrying its own delivery window.
	UntilEnabled bool
	// UntilDate is the raw stored "available until" value.
	UntilDate string
	// Weekdays is the product's explicit weekday list, if any.
	Weekdays WeekdaySet
}

// CategoryRule replaces the default weekday set when the cart holds a
// product in Category.
type CategoryRule struct {
	Category string
	Weekdays WeekdaySet
}

// Settings is the store-level configuration, already decoded.
type Settings struct {
	// MinDays is nil when the store never set it.
	MinDays       *int
	Weekdays      WeekdaySet
	CategoryRules []CategoryRule
	// ExcludedDates holds raw stored strings; malformed ones are ignored.
	ExcludedDates []string
	Blackouts     []RecurringRange
}

// DefaultSettings is what an unconfigured store behaves like.
func DefaultSettings() Settings {
	return Settings{
		Weekdays:  DefaultWeekdays,
		Blackouts: []RecurringRange{YearEndBlackout},
	}
}

// Resolver derives Rules from a cart and store settings.
type Resolver struct {
	Location     *time.Location
	FastCategory string
	CutoffHour   int
}

func NewResolver(loc *time.Location, fastCategory string, cutoffHour int) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{Location: loc, FastCategory: fastCategory, CutoffHour: cutoffHour}
}

// Resolve computes the rules for cart at now. A nil cart means no cart is
// available and yields the store rules without cart-derived overrides. A nil
// settings value means the store is unconfigured.
func (r *Resolver) Resolve(cart []Item, settings *Settings, now time.Time) Rules {
	s := DefaultSettings()
	if settings != nil {
		s = *settings
	}

	minLead := DateOf(now, r.Location).AddDays(r.leadDays(cart, s, now))

	excluded := make([]Date, 0, len(s.ExcludedDates))
	for _, raw := range s.ExcludedDates {
		if d, err := ParseDate(raw); err == nil {
			excluded = append(excluded, d)
		}
	}

	weekdays := s.Weekdays.OrDefault()
	if cat, ok := narrowestCategoryRule(cart, s.CategoryRules); ok {
		weekdays = cat
	}

	cutoff, override := productOverride(cart)
	return NewRules(minLead, cutoff, weekdays, excluded, s.Blackouts, override)
}

// leadDays is decided once per cart: any fast-category item switches the
// whole cart to the cutoff-hour policy.
func (r *Resolver) leadDays(cart []Item, s Settings, now time.Time) int {
	if r.FastCategory != "" && containsCategory(cart, r.FastCategory) {
		local := now.In(r.Location)
		cutoff := time.Date(local.Year(), local.Month(), local.Day(), r.CutoffHour, 0, 0, 0, r.Location)
		if local.Before(cutoff) {
			return 1
		}
		return 2
	}
	if s.MinDays != nil && *s.MinDays >= 0 {
		return *s.MinDays
	}
	return DefaultMinDays
}

func containsCategory(cart []Item, category string) bool {
	for _, it := range cart {
		for _, c := range it.Categories {
			if c == category {
				return true
			}
		}
	}
	return false
}

func narrowestCategoryRule(cart []Item, rules []CategoryRule) (WeekdaySet, bool) {
	var (
		best  WeekdaySet
		found bool
	)
	for _, rule := range rules {
		if rule.Weekdays.Empty() || !containsCategory(cart, rule.Category) {
			continue
		}
		if !found || rule.Weekdays.Len() < best.Len() {
			best, found = rule.Weekdays, true
		}
	}
	return best, found
}

// productOverride scans override-enabled items. The earliest until date
// wins. When several items list weekdays the narrowest list wins and ties
// go to the item seen first.
func productOverride(cart []Item) (*Date, *ProductOverride) {
	var (
		until    *Date
		weekdays WeekdaySet
	)
	for _, it := range cart {
		if !it.UntilEnabled {
			continue
		}
		if it.UntilDate != "" {
			if d, err := ParseDate(it.UntilDate); err == nil && (until == nil || d.Before(*until)) {
				until = &d
			}
		}
		if it.Weekdays.Empty() {
			continue
		}
		if weekdays.Empty() || it.Weekdays.Len() < weekdays.Len() {
			weekdays = it.Weekdays
		}
	}
	// A flagged product without its own weekdays only narrows the window.
	if weekdays.Empty() {
		return until, nil
	}
	return until, &ProductOverride{Until: until, Weekdays: weekdays}
}
