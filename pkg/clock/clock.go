// Package clock provides the injectable time source used by every date
// calculation in the platform.  The timeline arithmetic is pure except for
// reading "now"; routing that read through the Clock interface keeps the
// calculators deterministic under test.
package clock

import "time"

// Clock is the platform-wide time source contract.
type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time

	// Today returns the current date truncated to midnight UTC.  All
	// day-granularity arithmetic starts from Today rather than Now so that
	// the hour of day never shifts a computed deadline.
	Today() time.Time
}

// systemClock reads the wall clock.
type systemClock struct{}

// System returns the wall-clock backed Clock used in production.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() time.Time {
	return Midnight(time.Now().UTC())
}

// fixedClock always reports the same instant.  It is the test double for
// every date-arithmetic assertion in the repository.
type fixedClock struct {
	at time.Time
}

// Fixed returns a Clock frozen at the given instant (normalized to UTC).
func Fixed(at time.Time) Clock {
	return fixedClock{at: at.UTC()}
}

func (c fixedClock) Now() time.Time {
	return c.at
}

func (c fixedClock) Today() time.Time {
	return Midnight(c.at)
}

// Midnight truncates t to the start of its UTC day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day distance from a to b, negative when b is
// before a.  Both instants are normalized to midnight UTC first.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

//Personal.AI order the ending
