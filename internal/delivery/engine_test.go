package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func everyDay() WeekdaySet {
	return NewWeekdaySet(time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday)
}

func TestIsAvailableScenario(t *testing.T) {
	rules := NewRules(MustParseDate("2025-03-04"), nil, DefaultWeekdays, nil, nil, nil)

	assert.True(t, IsAvailable(MustParseDate("2025-03-04"), rules), "tuesday on the lead date")
	assert.Equal(t, ReasonWeekday, Check(MustParseDate("2025-03-03"), rules), "monday")
	assert.False(t, IsAvailable(MustParseDate("2025-03-02"), rules), "sunday before the lead date")
}

func TestIsAvailableDefaultWeekdaysProperty(t *testing.T) {
	minLead := MustParseDate("2025-03-10")
	excluded := []Date{MustParseDate("2025-03-12"), MustParseDate("2025-04-01")}
	rules := NewRules(minLead, nil, DefaultWeekdays, excluded, nil, nil)

	for d := MustParseDate("2025-02-20"); d.Before(MustParseDate("2025-05-01")); d = d.AddDays(1) {
		wd := d.Weekday()
		want := (wd == time.Tuesday || wd == time.Wednesday || wd == time.Friday) &&
			!d.Before(minLead) &&
			d != excluded[0] && d != excluded[1]
		assert.Equal(t, want, IsAvailable(d, rules), d.String())
	}
}

func TestIsAvailableDeterministic(t *testing.T) {
	cutoff := MustParseDate("2025-12-31")
	rules := NewRules(MustParseDate("2025-01-01"), &cutoff, DefaultWeekdays,
		[]Date{MustParseDate("2025-06-06")}, []RecurringRange{YearEndBlackout}, nil)

	for d := MustParseDate("2024-12-01"); d.Before(MustParseDate("2026-02-01")); d = d.AddDays(1) {
		first := IsAvailable(d, rules)
		for i := 0; i < 3; i++ {
			require.Equal(t, first, IsAvailable(d, rules), d.String())
		}
	}
}

func TestYearBoundaryBlackout(t *testing.T) {
	rules := NewRules(MustParseDate("1900-01-01"), nil, everyDay(), nil, []RecurringRange{YearEndBlackout}, nil)

	for year := 1999; year <= 2031; year++ {
		assert.False(t, IsAvailable(NewDate(year, time.January, 1), rules), "jan 1 %d", year)
		assert.False(t, IsAvailable(NewDate(year, time.January, 2), rules), "jan 2 %d", year)
		assert.False(t, IsAvailable(NewDate(year-1, time.December, 28), rules), "dec 28 %d", year-1)
		assert.False(t, IsAvailable(NewDate(year, time.December, 27), rules), "dec 27 %d", year)
		assert.True(t, IsAvailable(NewDate(year, time.January, 3), rules), "jan 3 %d", year)
		assert.True(t, IsAvailable(NewDate(year, time.December, 26), rules), "dec 26 %d", year)
	}
}

func TestNonWrappingBlackout(t *testing.T) {
	summer, err := ParseRecurringRange("08-01:08-15")
	require.NoError(t, err)
	rules := NewRules(MustParseDate("2000-01-01"), nil, everyDay(), nil, []RecurringRange{summer}, nil)

	assert.Equal(t, ReasonBlackout, Check(MustParseDate("2027-08-01"), rules))
	assert.Equal(t, ReasonBlackout, Check(MustParseDate("2027-08-15"), rules))
	assert.True(t, IsAvailable(MustParseDate("2027-08-16"), rules))
	assert.True(t, IsAvailable(MustParseDate("2027-07-31"), rules))
}

func TestHardCutoffDominates(t *testing.T) {
	cutoff := MustParseDate("2025-06-01")
	rules := NewRules(MustParseDate("2025-01-01"), &cutoff, everyDay(), nil, nil, nil)

	assert.True(t, IsAvailable(cutoff, rules), "cutoff day itself")
	for d := cutoff.AddDays(1); d.Before(MustParseDate("2025-09-01")); d = d.AddDays(1) {
		assert.Equal(t, ReasonAfterCutoff, Check(d, rules), d.String())
	}
}

func TestExcludedDateOnlyAffectsThatDate(t *testing.T) {
	minLead := MustParseDate("2025-03-01")
	base := NewRules(minLead, nil, DefaultWeekdays, nil, nil, nil)
	target := MustParseDate("2025-03-12")
	with := NewRules(minLead, nil, DefaultWeekdays, []Date{target}, nil, nil)

	require.True(t, IsAvailable(target, base))
	assert.Equal(t, ReasonExcluded, Check(target, with))

	for d := minLead; d.Before(MustParseDate("2025-05-01")); d = d.AddDays(1) {
		if d == target {
			continue
		}
		assert.Equal(t, IsAvailable(d, base), IsAvailable(d, with), d.String())
	}
}

func TestOverrideReplacesWeekdays(t *testing.T) {
	override := &ProductOverride{Weekdays: NewWeekdaySet(time.Thursday)}
	rules := NewRules(MustParseDate("2025-03-01"), nil, DefaultWeekdays, nil, nil, override)

	assert.True(t, IsAvailable(MustParseDate("2025-03-06"), rules), "thursday")
	assert.Equal(t, ReasonWeekday, Check(MustParseDate("2025-03-04"), rules), "tuesday")
}

func TestCheckOrder(t *testing.T) {
	cutoff := MustParseDate("2025-12-30")
	rules := NewRules(MustParseDate("2026-01-10"), &cutoff, DefaultWeekdays,
		[]Date{MustParseDate("2025-12-23")}, []RecurringRange{YearEndBlackout}, nil)

	tests := []struct {
		date string
		want Reason
	}{
		{"2026-01-06", ReasonAfterCutoff},   // also before min date
		{"2025-12-30", ReasonBlackout},      // tuesday inside blackout
		{"2025-12-22", ReasonWeekday},       // monday
		{"2025-12-23", ReasonExcluded},      // tuesday, excluded
		{"2025-12-24", ReasonBeforeMinDate}, // wednesday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Check(MustParseDate(tt.date), rules), tt.date)
	}
}

func TestMonth(t *testing.T) {
	rules := NewRules(MustParseDate("2025-02-10"), nil, DefaultWeekdays, nil, nil, nil)
	days := Month(MustParseDate("2025-02-17"), rules)

	require.Len(t, days, 28)
	assert.Equal(t, MustParseDate("2025-02-01"), days[0].Date)
	assert.Equal(t, MustParseDate("2025-02-28"), days[27].Date)

	var available []string
	for _, d := range days {
		if d.Available {
			assert.Empty(t, d.Reason)
			available = append(available, d.Date.String())
		}
	}
	assert.Equal(t, []string{
		"2025-02-11", "2025-02-12", "2025-02-14",
		"2025-02-18", "2025-02-19", "2025-02-21",
		"2025-02-25", "2025-02-26", "2025-02-28",
	}, available)
}

func TestCalendarEmptyRange(t *testing.T) {
	rules := NewRules(MustParseDate("2025-01-01"), nil, DefaultWeekdays, nil, nil, nil)
	assert.Nil(t, Calendar(MustParseDate("2025-02-01"), MustParseDate("2025-01-01"), rules))
}
