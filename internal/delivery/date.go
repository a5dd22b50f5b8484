package delivery

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the wire format for every date crossing a service boundary.
const ISOLayout = "2006-01-02"

// DisplayLayout is used when a delivery date is shown to a customer.
const DisplayLayout = "02.01.2006"

// Date is a calendar date without a time of day. Dates are always derived in
// the store's configured location, so two dates compare equal iff they name
// the same day there.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out-of-range values the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// DateOf returns the calendar date of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate accepts only a zero-padded YYYY-MM-DD string naming a real day.
// Inputs such as 2025-02-30 are rejected rather than rolled over.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	if t.Format(ISOLayout) != s {
		return Date{}, fmt.Errorf("parse date %q: not canonical", s)
	}
	return DateOf(t, time.UTC), nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return d.In(time.UTC).Format(ISOLayout)
}

// Display renders d as DD.MM.YYYY.
func (d Date) Display() string {
	return d.In(time.UTC).Format(DisplayLayout)
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// AddDays moves d by n calendar days. It works on the civil date, so DST
// transitions in the store location cannot shift the result.
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n), time.UTC)
}

// AddMonths moves d by n months with time.AddDate overflow semantics.
func (d Date) AddMonths(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, n, 0), time.UTC)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ParseCandidate validates a customer-submitted date string.
func ParseCandidate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, ErrDateRequired
	}
	d, err := ParseDate(raw)
	if err != nil {
		return Date{}, &Error{Code: CodeInvalidDate, Message: err.Error(), Cause: err}
	}
	return d, nil
}
