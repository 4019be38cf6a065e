package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned when a wall-clock string is not "HH:MM".
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

const minutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" wall-clock string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidTimeFormat)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidTimeFormat)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidTimeFormat)
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight as a zero-padded "HH:MM" string.
// Input is clamped to a single day before formatting.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > minutesPerDay-1 {
		minutes = minutesPerDay - 1
	}

	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
