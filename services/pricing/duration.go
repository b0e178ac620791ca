package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidClock is returned for times that are not "HH:MM" on a 24h clock.
	ErrInvalidClock = errors.New("time must be HH:MM")
	// ErrInvalidTimeRange is returned when the end time is not after the start time.
	// Bookings never cross midnight.
	ErrInvalidTimeRange = errors.New("end time must be after start time")
)

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// DurationMinutes returns the length of the start-end window on a single day.
// Either value being empty yields zero with no error, matching a half-filled form.
func DurationMinutes(start, end string) (int, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return 0, nil
	}
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e <= s {
		return 0, fmt.Errorf("%w: %s - %s", ErrInvalidTimeRange, start, end)
	}
	return e - s, nil
}

// DurationHours is DurationMinutes expressed in (possibly fractional) hours, for display.
func DurationHours(start, end string) (float64, error) {
	mins, err := DurationMinutes(start, end)
	if err != nil {
		return 0, err
	}
	return float64(mins) / 60, nil
}
