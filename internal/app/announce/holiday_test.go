package announce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 14, 30, 0, 0, time.UTC)
}

func TestDetectHoliday_FixedDates(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "New year", date: day(2026, 1, 1), want: "Nieuwjaar"},
		{name: "Valentine", date: day(2026, 2, 14), want: "Valentijnsdag"},
		{name: "Kings day", date: day(2026, 4, 27), want: "Koningsdag"},
		{name: "Sinterklaas", date: day(2026, 12, 5), want: "Sinterklaas"},
		{name: "Christmas day", date: day(2026, 12, 25), want: "Eerste Kerstdag"},
		{name: "New years eve", date: day(2026, 12, 31), want: "Oudjaar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := DetectHoliday(tt.date)
			assert.True(t, ok)
			assert.Equal(t, tt.want, h.Name)
			assert.NotEmpty(t, h.Line)
		})
	}
}

func TestDetectHoliday_EasterRelative(t *testing.T) {
	// Easter Sunday fell on 2024-03-31 and 2025-04-20.
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "Easter 2024", date: day(2024, 3, 31), want: "Eerste Paasdag"},
		{name: "Easter Monday 2024", date: day(2024, 4, 1), want: "Tweede Paasdag"},
		{name: "Good Friday 2024", date: day(2024, 3, 29), want: "Goede Vrijdag"},
		{name: "Easter 2025", date: day(2025, 4, 20), want: "Eerste Paasdag"},
		{name: "Ascension 2025", date: day(2025, 5, 29), want: "Hemelvaartsdag"},
		{name: "Pentecost 2025", date: day(2025, 6, 8), want: "Eerste Pinksterdag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := DetectHoliday(tt.date)
			assert.True(t, ok, "expected a holiday on %s", tt.date.Format(time.DateOnly))
			assert.Equal(t, tt.want, h.Name)
		})
	}
}

func TestDetectHoliday_EasterRelativeInLocalZone(t *testing.T) {
	// Easter Sunday 2026 is April 5. The detection must work on wall-clock
	// dates, so a non-UTC zone gives the same answers as UTC.
	cest := time.FixedZone("CEST", 2*60*60)
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "Easter Monday", date: time.Date(2026, 4, 6, 9, 0, 0, 0, cest), want: "Tweede Paasdag"},
		{name: "Ascension", date: time.Date(2026, 5, 14, 9, 0, 0, 0, cest), want: "Hemelvaartsdag"},
		{name: "Pentecost", date: time.Date(2026, 5, 24, 9, 0, 0, 0, cest), want: "Eerste Pinksterdag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := DetectHoliday(tt.date)
			assert.True(t, ok, "expected a holiday on %s", tt.date.Format(time.DateOnly))
			assert.Equal(t, tt.want, h.Name)
		})
	}
}

func TestDetectHoliday_OrdinaryDay(t *testing.T) {
	_, ok := DetectHoliday(day(2026, 3, 3))
	assert.False(t, ok)
}

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2027, time.March, 28},
	}

	for _, tt := range tests {
		got := easterSunday(tt.year)
		assert.Equal(t, tt.month, got.Month(), "year %d", tt.year)
		assert.Equal(t, tt.day, got.Day(), "year %d", tt.year)
	}
}
