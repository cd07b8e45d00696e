package application

import (
	"time"

	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Transition input
// ─────────────────────────────────────────────────────────────────────────────

// TransitionInput carries a requested status change plus the dates some
// targets require.  Dates supplied for transitions that do not need them are
// ignored rather than rejected.
type TransitionInput struct {
	Target          Status     `json:"target"`
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	SubmissionDate  *time.Time `json:"submission_date,omitempty"`
	DecisionDate    *time.Time `json:"decision_date,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// State machine
// ─────────────────────────────────────────────────────────────────────────────

// StateMachine validates and applies status transitions.  It is stateless;
// all state lives on the Application.
type StateMachine struct{}

// NewStateMachine constructs a StateMachine.
func NewStateMachine() *StateMachine { return &StateMachine{} }

// Validate checks whether the transition is legal and fully specified without
// mutating the application.
func (m *StateMachine) Validate(app *Application, in TransitionInput) error {
	if !in.Target.Valid() {
		return errors.InvalidParam("unknown target status " + string(in.Target))
	}
	if in.Target == app.Status {
		return nil
	}
	if app.Status.Terminal() {
		return errors.New(errors.ErrCodeApplicationTerminal,
			"application is already "+string(app.Status))
	}
	if !app.Status.CanTransitionTo(in.Target) {
		return errors.InvalidTransition(string(app.Status), string(in.Target))
	}
	switch in.Target {
	case StatusAppointmentBooked:
		if in.AppointmentDate == nil && app.AppointmentDate == nil {
			return errors.MissingField("appointment_date", string(in.Target))
		}
	case StatusSubmitted:
		if in.SubmissionDate == nil && app.SubmissionDate == nil {
			return errors.MissingField("submission_date", string(in.Target))
		}
	case StatusApproved, StatusRejected:
		if in.DecisionDate == nil && app.DecisionDate == nil {
			return errors.MissingField("decision_date", string(in.Target))
		}
	}
	return nil
}

// Apply validates and executes the transition.  It returns false when the
// target equals the current status, which callers use to suppress duplicate
// notifications.
func (m *StateMachine) Apply(app *Application, in TransitionInput, now time.Time) (bool, error) {
	if err := m.Validate(app, in); err != nil {
		return false, err
	}
	if in.Target == app.Status {
		return false, nil
	}

	switch in.Target {
	case StatusAppointmentBooked:
		if in.AppointmentDate != nil {
			app.AppointmentDate = in.AppointmentDate
		}
	case StatusSubmitted:
		if in.SubmissionDate != nil {
			app.SubmissionDate = in.SubmissionDate
		}
	case StatusApproved, StatusRejected:
		if in.DecisionDate != nil {
			app.DecisionDate = in.DecisionDate
		}
	}

	app.Status = in.Target
	app.UpdatedAt = now
	return true, nil
}

//Personal.AI order the ending
