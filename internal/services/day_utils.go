package services

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// LocalDateString formats the calendar date of value as seen in location.
func LocalDateString(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(DateLayout)
}

func ParseLocalDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return parsed, nil
}

// CalendarDaysBetween counts whole calendar days from one YYYY-MM-DD date to
// another. Both dates are compared at UTC midnight so DST shifts never skew
// the result.
func CalendarDaysBetween(fromDate string, toDate string) (int, error) {
	from, err := ParseLocalDate(fromDate)
	if err != nil {
		return 0, err
	}
	to, err := ParseLocalDate(toDate)
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}

func ShiftDate(date string, days int) (string, error) {
	parsed, err := ParseLocalDate(date)
	if err != nil {
		return "", err
	}
	return parsed.AddDate(0, 0, days).Format(DateLayout), nil
}
