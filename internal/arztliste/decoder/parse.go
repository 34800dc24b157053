package decoder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/medflow/arztliste/internal/arztliste/domain"
)

// ParseDay interprets "D.M" as that day and month in the given year.
// Anything after the month, e.g. a trailing dot, is ignored.
func ParseDay(s string, year int) (civil.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 {
		return civil.Date{}, fmt.Errorf("invalid day %q: want D.M", s)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid day of month in %q: %w", s, err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}

	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return civil.Date{}, fmt.Errorf("invalid date %q in year %d", s, year)
	}
	return d, nil
}

// ParseClock parses a 24-hour "HH:MM" clock time
func ParseClock(s string) (civil.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return civil.Time{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return civil.Time{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return civil.Time{}, fmt.Errorf("invalid minute in %q", s)
	}

	return civil.Time{Hour: hour, Minute: minute}, nil
}

// ParseTimeFrame splits "HH:MM-HH:MM" on the hyphen into start and end
func ParseTimeFrame(s string) (domain.TimeFrame, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return domain.TimeFrame{}, fmt.Errorf("invalid timeframe %q: want HH:MM-HH:MM", s)
	}

	from, err := ParseClock(start)
	if err != nil {
		return domain.TimeFrame{}, fmt.Errorf("timeframe %q: %w", s, err)
	}
	to, err := ParseClock(end)
	if err != nil {
		return domain.TimeFrame{}, fmt.Errorf("timeframe %q: %w", s, err)
	}

	return domain.TimeFrame{Start: from, End: to}, nil
}
