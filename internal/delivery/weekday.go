package delivery

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
	"time"
)

// WeekdaySet is a set of weekdays, Sunday (0) through Saturday (6).
type WeekdaySet uint8

const allWeekdays WeekdaySet = 1<<7 - 1

// DefaultWeekdays is the fallback delivery schedule: Tuesday, Wednesday and
// Friday.
var DefaultWeekdays = NewWeekdaySet(time.Tuesday, time.Wednesday, time.Friday)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			s |= 1 << uint(d)
		}
	}
	return s
}

// ParseWeekdayNames builds a set from lowercase English day names as the
// settings store keeps them. Unknown names are skipped.
func ParseWeekdayNames(names []string) WeekdaySet {
	var s WeekdaySet
	for _, n := range names {
		if d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(n))]; ok {
			s |= 1 << uint(d)
		}
	}
	return s
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Empty() bool { return s&allWeekdays == 0 }

func (s WeekdaySet) Len() int { return bits.OnesCount8(uint8(s & allWeekdays)) }

// OrDefault returns s, or DefaultWeekdays when s is empty.
func (s WeekdaySet) OrDefault() WeekdaySet {
	if s.Empty() {
		return DefaultWeekdays
	}
	return s
}

// Days lists the members in Sunday-first order.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, s.Len())
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// Names lists the members as lowercase day names.
func (s WeekdaySet) Names() []string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return names
}

func (s WeekdaySet) String() string {
	return fmt.Sprint(s.Names())
}

// MarshalJSON encodes the set as a sorted array of day numbers, matching the
// numbering used by browser Date.getDay().
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := s.Days()
	nums := make([]int, len(days))
	for i, d := range days {
		nums[i] = int(d)
	}
	return json.Marshal(nums)
}

func (s *WeekdaySet) UnmarshalJSON(b []byte) error {
	var nums []int
	if err := json.Unmarshal(b, &nums); err != nil {
		return err
	}
	var out WeekdaySet
	for _, n := range nums {
		if n < 0 || n > 6 {
			return fmt.Errorf("weekday %d out of range", n)
		}
		out |= 1 << uint(n)
	}
	*s = out
	return nil
}
