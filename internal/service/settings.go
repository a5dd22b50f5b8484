package service

import (
	"strings"

	"github.com/Cheertaboi/delivery-date-service/internal/delivery"
	"github.com/Cheertaboi/delivery-date-service/internal/models"
)

// DefaultStoreSettings is the stored form of delivery.DefaultSettings.
func DefaultStoreSettings() models.StoreSettings {
	minDays := delivery.DefaultMinDays
	return models.StoreSettings{
		MinDays:        &minDays,
		DefaultDays:    delivery.DefaultWeekdays.Names(),
		CategoryDays:   []models.CategoryDays{},
		ExcludedDates:  []string{},
		BlackoutRanges: []string{delivery.YearEndBlackout.String()},
	}
}

// SanitizeSettings normalizes admin input before it is stored: unknown
// weekday names, incomplete category rules and unparsable dates or ranges
// are dropped. Omitting blackout_ranges keeps the year-end default; an
// explicit empty list disables it.
func SanitizeSettings(in models.StoreSettings) models.StoreSettings {
	out := models.StoreSettings{
		DefaultDays:    weekdayNames(in.DefaultDays),
		CategoryDays:   []models.CategoryDays{},
		ExcludedDates:  []string{},
		BlackoutRanges: []string{},
	}

	if in.MinDays != nil {
		v := *in.MinDays
		if v < 0 {
			v = -v
		}
		out.MinDays = &v
	}

	for _, cd := range in.CategoryDays {
		category := strings.TrimSpace(cd.Category)
		days := weekdayNames(cd.Days)
		if category == "" || len(days) == 0 {
			continue
		}
		out.CategoryDays = append(out.CategoryDays, models.CategoryDays{Category: category, Days: days})
	}

	seen := make(map[string]bool, len(in.ExcludedDates))
	for _, raw := range in.ExcludedDates {
		d, err := delivery.ParseDate(strings.TrimSpace(raw))
		if err != nil || seen[d.String()] {
			continue
		}
		seen[d.String()] = true
		out.ExcludedDates = append(out.ExcludedDates, d.String())
	}

	if in.BlackoutRanges == nil {
		out.BlackoutRanges = append(out.BlackoutRanges, delivery.YearEndBlackout.String())
	}
	for _, raw := range in.BlackoutRanges {
		if r, err := delivery.ParseRecurringRange(raw); err == nil {
			out.BlackoutRanges = append(out.BlackoutRanges, r.String())
		}
	}

	return out
}

// SanitizeProductRules mirrors the product edit screen: an enabled override
// always carries at least one weekday, Tuesday/Wednesday/Friday by default.
func SanitizeProductRules(in models.ProductRules) models.ProductRules {
	out := models.ProductRules{
		ProductID:    strings.TrimSpace(in.ProductID),
		UntilEnabled: in.UntilEnabled,
		DeliveryDays: weekdayNames(in.DeliveryDays),
	}
	if d, err := delivery.ParseDate(strings.TrimSpace(in.UntilDate)); err == nil {
		out.UntilDate = d.String()
	}
	if out.UntilEnabled && len(out.DeliveryDays) == 0 {
		out.DeliveryDays = delivery.DefaultWeekdays.Names()
	}
	return out
}

// weekdayNames keeps valid names, lowercased, in Sunday-first order.
func weekdayNames(names []string) []string {
	return delivery.ParseWeekdayNames(names).Names()
}

// EngineSettings decodes stored settings for the resolver. nil stays nil so
// the resolver applies its own defaults.
func EngineSettings(s *models.StoreSettings) *delivery.Settings {
	if s == nil {
		return nil
	}
	out := &delivery.Settings{
		Weekdays:      delivery.ParseWeekdayNames(s.DefaultDays),
		ExcludedDates: s.ExcludedDates,
	}
	if s.MinDays != nil {
		v := *s.MinDays
		out.MinDays = &v
	}
	for _, cd := range s.CategoryDays {
		out.CategoryRules = append(out.CategoryRules, delivery.CategoryRule{
			Category: cd.Category,
			Weekdays: delivery.ParseWeekdayNames(cd.Days),
		})
	}
	for _, raw := range s.BlackoutRanges {
		if r, err := delivery.ParseRecurringRange(raw); err == nil {
			out.Blackouts = append(out.Blackouts, r)
		}
	}
	return out
}
