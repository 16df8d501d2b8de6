package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekdays lists the lesson days the club offers, in calendar order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var (
	ErrNoDays     = errors.New("no days selected")
	ErrUnknownDay = errors.New("unknown day")
)

// Alert is a user's saved matching criteria: notify me when a slot for this
// coach opens up on one of these days inside this time window.
type Alert struct {
	ID        int64
	ChatID    int64
	Coach     string // case-insensitive substring match against slot coach names
	Days      DaySet
	TimeRange string // "HH:MM-HH:MM", start <= end
	CreatedAt time.Time
}

// DaySet is an ordered set of full weekday names (Monday..Friday).
// Membership is exact, case-insensitive — never substring, so "Sun" can
// never accidentally hit "Sunday"-style neighbours.
type DaySet []string

// ParseDays canonicalizes a comma-joined day list ("Monday,Wednesday") into
// a DaySet ordered Monday-first. Unknown names and empty sets are rejected.
func ParseDays(s string) (DaySet, error) {
	want := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		known := false
		for _, d := range Weekdays {
			if strings.EqualFold(part, d) {
				want[d] = true
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDay, part)
		}
	}
	if len(want) == 0 {
		return nil, ErrNoDays
	}
	var ds DaySet
	for _, d := range Weekdays {
		if want[d] {
			ds = append(ds, d)
		}
	}
	return ds, nil
}

// Contains reports whether day is a member of the set.
func (ds DaySet) Contains(day string) bool {
	for _, d := range ds {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}

// String renders the set comma-joined, the shape it is stored in.
func (ds DaySet) String() string {
	return strings.Join(ds, ",")
}

// Short renders the set as abbreviated names ("Mon Wed") for compact UI rows.
func (ds DaySet) Short() string {
	short := make([]string, len(ds))
	for i, d := range ds {
		short[i] = d[:3]
	}
	return strings.Join(short, " ")
}
