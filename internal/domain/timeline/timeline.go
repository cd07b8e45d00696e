package timeline

import (
	"time"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Timeline value object
// ─────────────────────────────────────────────────────────────────────────────

// Timeline is the computed application plan for one destination.  It is a
// transient value recomputed on demand from the destination snapshot and the
// current date; only the milestone rows derived from it are persisted.
type Timeline struct {
	Destination common.CountryCode `json:"destination"`
	VisaType    visa.Type          `json:"visa_type"`

	TravelDate    time.Time `json:"travel_date"`
	DaysUntilTrip int       `json:"days_until_trip"`

	// BufferDays is the safety margin applied on top of the processing window,
	// already peak-adjusted when the travel date falls in a peak window.
	BufferDays int `json:"buffer_days"`

	// CalendarDaysMin / CalendarDaysMax are the processing bounds converted
	// from business days to calendar days.
	CalendarDaysMin int `json:"calendar_days_min"`
	CalendarDaysMax int `json:"calendar_days_max"`

	// LatestSubmissionDate is the last day an application can go in and still
	// be decided before travel under worst-case processing plus buffer.
	LatestSubmissionDate time.Time `json:"latest_submission_date"`

	// RecommendedStartDate leaves the prep window before the latest
	// submission date for document gathering.
	RecommendedStartDate time.Time `json:"recommended_start_date"`

	// ExpectedDecisionDate assumes submission today and worst-case processing.
	ExpectedDecisionDate time.Time `json:"expected_decision_date"`

	// PreArrivalDeadline is the due date for arrival forms, independent of
	// visa type.
	PreArrivalDeadline time.Time `json:"pre_arrival_deadline"`

	PeakSeason SeasonInfo `json:"peak_season"`

	Risk       *Assessment `json:"risk,omitempty"`
	Milestones []Milestone `json:"milestones,omitempty"`
}

// SubmissionWindowOpen reports whether the latest submission date has not yet
// passed relative to the given day.
func (t *Timeline) SubmissionWindowOpen(today time.Time) bool {
	return !t.LatestSubmissionDate.Before(today)
}

// ─────────────────────────────────────────────────────────────────────────────
// Reminder preferences
// ─────────────────────────────────────────────────────────────────────────────

// ReminderChannel is the delivery channel for milestone reminders.
type ReminderChannel string

const (
	ChannelPush  ReminderChannel = "PUSH"
	ChannelEmail ReminderChannel = "EMAIL"
)

// Reminder schedules a notification relative to a milestone due date.
type Reminder struct {
	DaysBefore int             `json:"days_before"`
	Channel    ReminderChannel `json:"channel"`
}

// Preferences carries per-traveler tuning for milestone generation.  The zero
// value means "use policy defaults".
type Preferences struct {
	ReminderDaysBefore int `json:"reminder_days_before,omitempty"`
}

//Personal.AI order the ending
