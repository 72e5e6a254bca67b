package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Clock is a time of day expressed in seconds since midnight.
type Clock int

func NewClock(hour, minute, second int) Clock {
	return Clock(hour*3600 + minute*60 + second)
}

// ParseClock accepts "15:04" and "15:04:05".
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	layout := "15:04:05"
	if len(s) == 5 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return NewClock(t.Hour(), t.Minute(), t.Second()), nil
}

func (c Clock) Duration() time.Duration {
	return time.Duration(c) * time.Second
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/3600, int(c)%3600/60)
}

// Seconds formats the clock as "15:04:05", the storage form.
func (c Clock) Seconds() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c)/3600, int(c)%3600/60, int(c)%60)
}

// Segment is one scheduled flight leg of the active network.
type Segment struct {
	ID            int64
	BatchID       int64
	Carrier       string
	FlightNumber  string
	Origin        string
	Destination   string
	DepartureDate time.Time
	DepartureTime Clock
	ArrivalTime   Clock
}

// Overnight reports whether the segment lands on the calendar day after departure.
// Only the clock values are compared; there is no arrival date in the schedule.
func (s Segment) Overnight() bool {
	return s.ArrivalTime < s.DepartureTime
}

func (s Segment) DepartureAt() time.Time {
	return dateOnly(s.DepartureDate).Add(s.DepartureTime.Duration())
}

// ArrivalAt is the arrival moment with the overnight correction applied.
func (s Segment) ArrivalAt() time.Time {
	at := dateOnly(s.DepartureDate).Add(s.ArrivalTime.Duration())
	if s.Overnight() {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NormalizeCode trims and upper-cases an IATA or carrier code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
