package menu

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// DefaultCutoff is the time after which tomorrow's menu is shown.
var DefaultCutoff = Clock{Hour: 10}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the clock time on date d in loc.
func (c Clock) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, loc)
}

// ParseCutoff reads an HH:MM (or HH:MM:SS) value. Malformed or out of
// range values yield DefaultCutoff.
func ParseCutoff(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		return DefaultCutoff
	}
	return c
}

// ParseClock reads an HH:MM or HH:MM:SS value. Seconds are validated and
// then dropped.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return Clock{}, fmt.Errorf("clock %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("clock %q: bad hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("clock %q: bad minute", s)
	}
	if len(parts) == 3 {
		second, err := strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return Clock{}, fmt.Errorf("clock %q: bad second", s)
		}
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// SelectTargetDate returns the date whose menu should be shown at now.
// At or after the cutoff it is tomorrow, before it today.
func SelectTargetDate(now time.Time, cutoff Clock) Date {
	today := DateOf(now)
	if !now.Before(cutoff.On(today, now.Location())) {
		return today.AddDays(1)
	}
	return today
}
