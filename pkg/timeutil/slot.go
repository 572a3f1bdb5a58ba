// Package timeutil parses and formats the grid's time vocabulary.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotaplan/rota/pkg/schedule"
)

var slotPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?$`)

// ParseSlot parses a human-friendly slot string (for example "14:30", "8:00",
// or just "22") into an hour and minutes pair on the planning grid.
func ParseSlot(input string) (int, int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, 0, fmt.Errorf("timeutil: a time like 14:30 is required")
	}

	matches := slotPattern.FindStringSubmatch(trimmed)
	if matches == nil {
		return 0, 0, fmt.Errorf("timeutil: invalid time %q", trimmed)
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("timeutil: invalid hour %q: %w", matches[1], err)
	}
	minutes := 0
	if matches[2] != "" {
		minutes, err = strconv.Atoi(matches[2])
		if err != nil {
			return 0, 0, fmt.Errorf("timeutil: invalid minutes %q: %w", matches[2], err)
		}
	}

	if !schedule.ValidSlot(hour, minutes) {
		return 0, 0, fmt.Errorf("timeutil: %q is outside opening hours", trimmed)
	}
	return hour, minutes, nil
}

// ParseDay parses a weekday name, accepting common three-letter shorthand.
func ParseDay(input string) (schedule.Weekday, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if day := schedule.Weekday(trimmed); day.Valid() {
		return day, nil
	}
	for _, day := range schedule.Weekdays() {
		if strings.HasPrefix(string(day), trimmed) && len(trimmed) >= 3 {
			return day, nil
		}
	}
	return "", fmt.Errorf("timeutil: unknown day %q", input)
}

// ParseShiftDuration parses a duration in hours, with or without an "h"
// suffix, and checks the shift length bounds.
func ParseShiftDuration(input string) (int, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	trimmed = strings.TrimSuffix(trimmed, "h")
	hours, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("timeutil: invalid duration %q", input)
	}
	if hours < schedule.MinDuration || hours > schedule.MaxDuration {
		return 0, fmt.Errorf("timeutil: duration %d outside [%d, %d] hours",
			hours, schedule.MinDuration, schedule.MaxDuration)
	}
	return hours, nil
}
