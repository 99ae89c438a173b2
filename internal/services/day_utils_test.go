package services

import (
	"testing"
	"time"
)

func TestDateAtLocationNormalizesToLocationMidnight(t *testing.T) {
	location, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)
	got := DateAtLocation(raw, location)
	want := time.Date(2026, 2, 2, 0, 0, 0, 0, location)
	if !got.Equal(want) {
		t.Fatalf("DateAtLocation() = %s, want %s", got, want)
	}
}

func TestLocalDateStringUsesLocation(t *testing.T) {
	location, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	raw := time.Date(2026, 3, 1, 5, 0, 0, 0, time.UTC)
	if got := LocalDateString(raw, location); got != "2026-02-28" {
		t.Fatalf("LocalDateString() = %q, want 2026-02-28", got)
	}
	if got := LocalDateString(raw, nil); got != "2026-03-01" {
		t.Fatalf("LocalDateString() with nil location = %q, want 2026-03-01", got)
	}
}

func TestCalendarDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{name: "same day", from: "2026-03-10", to: "2026-03-10", want: 0},
		{name: "across DST switch", from: "2026-03-07", to: "2026-03-09", want: 2},
		{name: "across month", from: "2026-01-30", to: "2026-02-02", want: 3},
		{name: "backwards", from: "2026-01-05", to: "2026-01-01", want: -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalendarDaysBetween(tt.from, tt.to)
			if err != nil {
				t.Fatalf("CalendarDaysBetween() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CalendarDaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := CalendarDaysBetween("bad", "2026-01-01"); err == nil {
		t.Fatal("expected malformed date to fail")
	}
}

func TestShiftDate(t *testing.T) {
	got, err := ShiftDate("2026-03-01", -7)
	if err != nil {
		t.Fatalf("ShiftDate() unexpected error: %v", err)
	}
	if got != "2026-02-22" {
		t.Fatalf("ShiftDate() = %q, want 2026-02-22", got)
	}
}
