// Package application models the lifecycle of one visa application per trip
// destination: the status chain, the transition rules with their field
// requirements, and the persistence ports.
package application

import (
	"time"

	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Status enumeration
// ─────────────────────────────────────────────────────────────────────────────

// Status is the lifecycle stage of a visa application.
type Status string

const (
	StatusNotStarted          Status = "NOT_STARTED"
	StatusDocumentsInProgress Status = "DOCUMENTS_IN_PROGRESS"
	StatusAppointmentBooked   Status = "APPOINTMENT_BOOKED"
	StatusSubmitted           Status = "SUBMITTED"
	StatusUnderReview         Status = "UNDER_REVIEW"
	StatusApproved            Status = "APPROVED"
	StatusRejected            Status = "REJECTED"
	StatusCancelled           Status = "CANCELLED"
)

// allowedNext is the transition table.  The chain is strictly linear up to the
// decision; CANCELLED is reachable from every non-terminal status and is
// handled in the state machine rather than listed per row.
var allowedNext = map[Status][]Status{
	StatusNotStarted:          {StatusDocumentsInProgress},
	StatusDocumentsInProgress: {StatusAppointmentBooked},
	StatusAppointmentBooked:   {StatusSubmitted},
	StatusSubmitted:           {StatusUnderReview},
	StatusUnderReview:         {StatusApproved, StatusRejected},
	StatusApproved:            nil,
	StatusRejected:            nil,
	StatusCancelled:           nil,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := allowedNext[s]
	return ok
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Terminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	for _, next := range allowedNext[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Application entity
// ─────────────────────────────────────────────────────────────────────────────

// Application tracks one visa application for one trip destination.  At most
// one non-terminal application may exist per (user, destination) pair; the
// repository enforces that with a partial unique index and the service layer
// treats a duplicate create as a fetch.
type Application struct {
	ID            common.ID     `json:"id"`
	UserID        common.UserID `json:"user_id"`
	DestinationID common.ID     `json:"destination_id"`

	Status Status `json:"status"`

	// AppointmentDate, SubmissionDate and DecisionDate are set by the
	// transitions that require them and are nil before that.
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	SubmissionDate  *time.Time `json:"submission_date,omitempty"`
	DecisionDate    *time.Time `json:"decision_date,omitempty"`

	// RecommendedSubmissionDate and LatestSubmissionDate are copied from the
	// computed plan at creation time so the deadlines stay queryable on the
	// row itself, surviving later policy changes without a recompute.
	RecommendedSubmissionDate *time.Time `json:"recommended_submission_date,omitempty"`
	LatestSubmissionDate      *time.Time `json:"latest_submission_date,omitempty"`

	// ExpectedDecisionDate starts as the planning estimate and is reprojected
	// from the actual submission date once one is recorded.
	ExpectedDecisionDate *time.Time `json:"expected_decision_date,omitempty"`

	// Version backs optimistic concurrency control; every successful update
	// increments it.
	Version int `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New constructs a fresh application in the NOT_STARTED state.
func New(userID common.UserID, destinationID common.ID, now time.Time) *Application {
	return &Application{
		ID:            common.NewID(),
		UserID:        userID,
		DestinationID: destinationID,
		Status:        StatusNotStarted,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks the structural invariants of an application record.
func (a *Application) Validate() error {
	if a.UserID == "" {
		return errors.InvalidParam("user id must be set")
	}
	if a.DestinationID == "" {
		return errors.InvalidParam("destination id must be set")
	}
	if !a.Status.Valid() {
		return errors.InvalidState("unknown application status " + string(a.Status))
	}
	if a.Version < 1 {
		return errors.InvalidParam("version must be positive")
	}
	return nil
}

//Personal.AI order the ending
