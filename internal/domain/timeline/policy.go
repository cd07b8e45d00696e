// Package timeline implements the visa timeline and feasibility engine: date
// arithmetic from stated processing windows to concrete milestone dates,
// seasonal demand adjustment, risk classification, and milestone generation.
//
// Everything in this package is pure except for reading "now" through the
// injected clock, so the whole engine is deterministic under test.
package timeline

import (
	"math"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Policy — every tunable of the engine as named, overridable data
// ─────────────────────────────────────────────────────────────────────────────

// Policy carries the named constants of the timeline engine.  None of these
// values may appear as literals inside calculation logic; they are injected so
// the policy can change without touching the calculators.
type Policy struct {
	// BusinessToCalendarRatio converts business days to calendar days via
	// ceil(businessDays * ratio).  The fixed ratio is a deliberate stand-in
	// for a real business-day/holiday calendar.
	BusinessToCalendarRatio float64 `mapstructure:"business_to_calendar_ratio" json:"business_to_calendar_ratio"`

	// PrepWindowDays is the gap between the recommended start date and the
	// latest submission date, reserved for gathering documents.
	PrepWindowDays int `mapstructure:"prep_window_days" json:"prep_window_days"`

	// PreArrivalWindowDays positions the pre-arrival form deadline this many
	// days before travel, independent of visa type.
	PreArrivalWindowDays int `mapstructure:"pre_arrival_window_days" json:"pre_arrival_window_days"`

	// PeakBufferMultiplier scales the base buffer during peak season:
	// buffer = ceil(base * multiplier).
	PeakBufferMultiplier float64 `mapstructure:"peak_buffer_multiplier" json:"peak_buffer_multiplier"`

	// BufferDaysByVisaType is the base buffer in calendar days per visa type.
	BufferDaysByVisaType map[visa.Type]int `mapstructure:"buffer_days_by_visa_type" json:"buffer_days_by_visa_type"`

	// DefaultBufferDays applies to visa types absent from the table.
	DefaultBufferDays int `mapstructure:"default_buffer_days" json:"default_buffer_days"`

	// SafetyBufferDays is the margin threshold separating a tight plan from a
	// comfortable one; both risk schemes share it.
	SafetyBufferDays int `mapstructure:"safety_buffer_days" json:"safety_buffer_days"`

	// DefaultReminderDaysBefore is used when a traveler has no reminder
	// preference of their own.
	DefaultReminderDaysBefore int `mapstructure:"default_reminder_days_before" json:"default_reminder_days_before"`

	// Seasons describes the peak-demand windows.
	Seasons SeasonPolicy `mapstructure:"seasons" json:"seasons"`
}

// DefaultPolicy returns the shipped policy values.
func DefaultPolicy() Policy {
	return Policy{
		BusinessToCalendarRatio: 1.4,
		PrepWindowDays:          14,
		PreArrivalWindowDays:    3,
		PeakBufferMultiplier:    1.5,
		BufferDaysByVisaType: map[visa.Type]int{
			visa.TypeVisaFree:      0,
			visa.TypeVisaOnArrival: 0,
			visa.TypeETA:           3,
			visa.TypeTransitVisa:   3,
			visa.TypeEVisa:         5,
			visa.TypeEmbassyVisa:   10,
		},
		DefaultBufferDays:         7,
		SafetyBufferDays:          7,
		DefaultReminderDaysBefore: 3,
		Seasons:                   DefaultSeasonPolicy(),
	}
}

// BufferDays returns the base buffer for a visa type, falling back to the
// default for unknown types.
func (p Policy) BufferDays(t visa.Type) int {
	if days, ok := p.BufferDaysByVisaType[t]; ok {
		return days
	}
	return p.DefaultBufferDays
}

// PeakBuffer scales a base buffer for peak season.
func (p Policy) PeakBuffer(base int) int {
	return ceilScale(base, p.PeakBufferMultiplier)
}

// CalendarDays converts a business-day count to calendar days.
func (p Policy) CalendarDays(businessDays int) int {
	return ceilScale(businessDays, p.BusinessToCalendarRatio)
}

// Validate performs semantic validation of the policy.
func (p Policy) Validate() error {
	if p.BusinessToCalendarRatio < 1 {
		return errors.InvalidParam("business_to_calendar_ratio must be >= 1")
	}
	if p.PeakBufferMultiplier < 1 {
		return errors.InvalidParam("peak_buffer_multiplier must be >= 1")
	}
	if p.PrepWindowDays < 0 || p.PreArrivalWindowDays < 0 {
		return errors.InvalidParam("prep and pre-arrival windows must not be negative")
	}
	if p.DefaultBufferDays < 0 || p.SafetyBufferDays < 0 {
		return errors.InvalidParam("buffer values must not be negative")
	}
	for t, days := range p.BufferDaysByVisaType {
		if !t.Valid() {
			return errors.New(errors.ErrCodeVisaTypeInvalid, "buffer table references unknown visa type "+string(t))
		}
		if days < 0 {
			return errors.InvalidParam("buffer for " + string(t) + " must not be negative")
		}
	}
	if p.DefaultReminderDaysBefore < 0 {
		return errors.InvalidParam("default_reminder_days_before must not be negative")
	}
	return p.Seasons.Validate()
}

// floatSlack absorbs binary-representation artifacts before ceiling: 15 * 1.4
// evaluates to 21.000000000000004 in float64 and must still ceil to 21.
const floatSlack = 1e-9

func ceilScale(days int, factor float64) int {
	if days <= 0 {
		return 0
	}
	return int(math.Ceil(float64(days)*factor - floatSlack))
}

//Personal.AI order the ending
