package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ParseHHMM parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseHHMM(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, errors.New("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.New("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.New("invalid minute")
	}
	return h*60 + m, nil
}

// ParseTimeRange parses "HH:MM-HH:MM" into start/end minutes since midnight.
// Used at alert creation to validate input; start must not be after end.
func ParseTimeRange(s string) (startM, endM int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New("expected HH:MM-HH:MM")
	}
	startM, err = ParseHHMM(parts[0])
	if err != nil {
		return 0, 0, err
	}
	endM, err = ParseHHMM(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if startM > endM {
		return 0, 0, errors.New("start after end")
	}
	return startM, endM, nil
}

// InRange reports whether a slot's time falls inside an alert's window,
// inclusive at both ends. Slot times may carry a dash-separated sub-range
// ("16:00-17:00"); only the part before the first dash is tested. Malformed
// input of either argument yields false — bad strings scraped off the site
// must never abort a matching pass.
func InRange(slotTime, timeRange string) bool {
	instant := strings.SplitN(slotTime, "-", 2)[0]
	t, err := ParseHHMM(instant)
	if err != nil {
		return false
	}
	parts := strings.SplitN(timeRange, "-", 2)
	if len(parts) != 2 {
		return false
	}
	start, err := ParseHHMM(parts[0])
	if err != nil {
		return false
	}
	end, err := ParseHHMM(parts[1])
	if err != nil {
		return false
	}
	return start <= t && t <= end
}
