package models

// StoreSettings mirrors the delivery settings page. Weekday names are
// lowercase English ("tuesday"), dates are YYYY-MM-DD and blackout ranges
// are "MM-DD:MM-DD".
type StoreSettings struct {
	MinDays        *int           `json:"min_days,omitempty" validate:"omitempty,min=-365,max=365"`
	DefaultDays    []string       `json:"default_days" validate:"max=7"`
	CategoryDays   []CategoryDays `json:"category_days"`
	ExcludedDates  []string       `json:"excluded_dates"`
	BlackoutRanges []string       `json:"blackout_ranges"`
}

type CategoryDays struct {
	Category string   `json:"category"`
	Days     []string `json:"days"`
}
