package delivery

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MonthDay anchors a recurring date inside any year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// in resolves the anchor in a concrete year. Feb 29 in a non-leap year
// becomes Mar 1.
func (md MonthDay) in(year int) Date {
	return NewDate(year, md.Month, md.Day)
}

func (md MonthDay) less(o MonthDay) bool {
	if md.Month != o.Month {
		return md.Month < o.Month
	}
	return md.Day < o.Day
}

// RecurringRange is an inclusive blackout window that repeats every year.
// When From falls after To the window wraps into the following year.
type RecurringRange struct {
	From MonthDay
	To   MonthDay
}

// YearEndBlackout is the store default: Dec 27 through Jan 2.
var YearEndBlackout = RecurringRange{
	From: MonthDay{Month: time.December, Day: 27},
	To:   MonthDay{Month: time.January, Day: 2},
}

// ParseRecurringRange reads "MM-DD:MM-DD".
func ParseRecurringRange(s string) (RecurringRange, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return RecurringRange{}, fmt.Errorf("parse blackout range %q: missing ':'", s)
	}
	f, err := parseMonthDay(from)
	if err != nil {
		return RecurringRange{}, fmt.Errorf("parse blackout range %q: %w", s, err)
	}
	t, err := parseMonthDay(to)
	if err != nil {
		return RecurringRange{}, fmt.Errorf("parse blackout range %q: %w", s, err)
	}
	return RecurringRange{From: f, To: t}, nil
}

func parseMonthDay(s string) (MonthDay, error) {
	// 2000 is a leap year, so 02-29 is accepted.
	t, err := time.Parse("2006-01-02", "2000-"+strings.TrimSpace(s))
	if err != nil {
		return MonthDay{}, fmt.Errorf("month/day %q: %w", s, err)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

func (r RecurringRange) String() string {
	return r.From.String() + ":" + r.To.String()
}

func (r RecurringRange) wraps() bool {
	return r.To.less(r.From)
}

// Contains reports whether d falls inside the window. For a wrapping window
// two absolute ranges are checked, the one that started in the previous year
// and the one that starts in d's year, so Jan 1 matches the range anchored
// in the prior December.
func (r RecurringRange) Contains(d Date) bool {
	y := d.Year
	if !r.wraps() {
		return within(d, r.From.in(y), r.To.in(y))
	}
	return within(d, r.From.in(y-1), r.To.in(y)) ||
		within(d, r.From.in(y), r.To.in(y+1))
}

func within(d, start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

func (r RecurringRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"from": r.From.String(),
		"to":   r.To.String(),
	})
}

func (r *RecurringRange) UnmarshalJSON(b []byte) error {
	var raw struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseRecurringRange(raw.From + ":" + raw.To)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
