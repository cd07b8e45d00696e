// Package visaapp orchestrates the application-tracking write side: creating
// applications, driving status transitions with optimistic concurrency, and
// keeping persisted milestones in sync with the computed plan.
package visaapp

import (
	"context"
	"time"

	app "github.com/turtacn/VisaPath-Intelligence/internal/domain/application"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/trip"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	clockpkg "github.com/turtacn/VisaPath-Intelligence/pkg/clock"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Notifier port
// ─────────────────────────────────────────────────────────────────────────────

// StatusEvent describes one committed status change.
type StatusEvent struct {
	ApplicationID common.ID     `json:"application_id"`
	UserID        common.UserID `json:"user_id"`
	DestinationID common.ID     `json:"destination_id"`
	From          app.Status    `json:"from"`
	To            app.Status    `json:"to"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// Notifier publishes committed status changes.  The Kafka producer implements
// it; tests use a recording fake.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, event StatusEvent) error
}

// NopNotifier discards events, for offline tooling.
type NopNotifier struct{}

func (NopNotifier) NotifyStatusChange(context.Context, StatusEvent) error { return nil }

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// transitionRetries bounds the re-read/re-validate/retry loop on version
// conflicts before giving up and surfacing the conflict to the caller.
const transitionRetries = 3

// Service is the application-tracking orchestrator.
type Service struct {
	apps       app.Repository
	milestones app.MilestoneRepository
	trips      trip.Repository
	timeline   *timeline.Service
	machine    *app.StateMachine
	notifier   Notifier
	clock      clockpkg.Clock
	logger     logging.Logger
}

// NewService constructs the orchestrator.  notifier may be nil.
func NewService(
	apps app.Repository,
	milestones app.MilestoneRepository,
	trips trip.Repository,
	tl *timeline.Service,
	notifier Notifier,
	clk clockpkg.Clock,
	logger logging.Logger,
) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		apps:       apps,
		milestones: milestones,
		trips:      trips,
		timeline:   tl,
		machine:    app.NewStateMachine(),
		notifier:   notifier,
		clock:      clk,
		logger:     logger.Named("visaapp"),
	}
}

// Create starts tracking an application for a destination.  At most one
// non-terminal application exists per (user, destination); creating again
// returns the existing one.  Milestones for the destination are generated and
// persisted as a side effect when the plan is computable.
func (s *Service) Create(ctx context.Context, userID common.UserID, destinationID common.ID) (*app.Application, error) {
	if userID == "" {
		return nil, errors.InvalidParam("user id must be set")
	}

	existing, err := s.apps.FindActiveByUserAndDestination(ctx, userID, destinationID)
	if err != nil && !errors.IsCode(err, errors.ErrCodeApplicationNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	dest, err := s.trips.FindByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	application := app.New(userID, destinationID, now)

	tl, buildErr := s.buildTimeline(dest, timeline.Preferences{})
	if buildErr == nil {
		application.RecommendedSubmissionDate = &tl.RecommendedStartDate
		application.LatestSubmissionDate = &tl.LatestSubmissionDate
		application.ExpectedDecisionDate = &tl.ExpectedDecisionDate
	} else {
		s.logger.Warn("application created without a computable plan",
			logging.String("destination_id", string(destinationID)),
			logging.Err(buildErr))
	}

	if err := s.apps.Create(ctx, application); err != nil {
		if errors.IsCode(err, errors.ErrCodeConflict) {
			// Lost a concurrent create race; the winner's row is the answer.
			return s.apps.FindActiveByUserAndDestination(ctx, userID, destinationID)
		}
		return nil, err
	}

	// Milestones follow the committed row.  A failed plan write is recoverable
	// through a recompute and must not undo the application itself.
	if buildErr == nil {
		if err := s.milestones.ReplaceForDestination(ctx, destinationID, app.FromTimeline(destinationID, tl.Milestones, now)); err != nil {
			s.logger.Warn("milestone plan write failed",
				logging.String("destination_id", string(destinationID)),
				logging.Err(err))
		}
	}

	s.logger.Info("application created",
		logging.String("application_id", string(application.ID)),
		logging.String("destination_id", string(destinationID)))
	return application, nil
}

// Get loads one application.
func (s *Service) Get(ctx context.Context, id common.ID) (*app.Application, error) {
	return s.apps.FindByID(ctx, id)
}

// ListByUser pages through a user's applications.
func (s *Service) ListByUser(ctx context.Context, userID common.UserID, page common.Pagination) ([]*app.Application, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return s.apps.ListByUser(ctx, userID, page)
}

// Transition applies a status change under optimistic concurrency.  On a
// version conflict the application is re-read, the transition re-validated
// against the fresh state and retried.  A notification goes out only when the
// status actually changed.
func (s *Service) Transition(ctx context.Context, id common.ID, in app.TransitionInput) (*app.Application, error) {
	var lastErr error
	for attempt := 0; attempt < transitionRetries; attempt++ {
		application, err := s.apps.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		from := application.Status
		expectedVersion := application.Version

		changed, err := s.machine.Apply(application, in, s.clock.Now())
		if err != nil {
			return nil, err
		}
		if !changed {
			return application, nil
		}

		if in.Target == app.StatusSubmitted {
			s.reprojectDecisionDate(ctx, application)
		}

		if err := s.apps.UpdateOptimistic(ctx, application, expectedVersion); err != nil {
			if errors.IsCode(err, errors.ErrCodeVersionConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}

		s.notify(ctx, application, from)
		return application, nil
	}
	return nil, errors.Wrap(lastErr, errors.ErrCodeVersionConflict,
		"transition abandoned after repeated version conflicts")
}

// Cancel is the dedicated cancellation entry point; it delegates to the same
// transition path so the audit trail and notifications stay uniform.
func (s *Service) Cancel(ctx context.Context, id common.ID) (*app.Application, error) {
	return s.Transition(ctx, id, app.TransitionInput{Target: app.StatusCancelled})
}

// RecomputeMilestones rebuilds and persists the milestone rows for a
// destination, replacing the previous set wholesale.
func (s *Service) RecomputeMilestones(ctx context.Context, destinationID common.ID, prefs timeline.Preferences) ([]*app.StoredMilestone, error) {
	dest, err := s.trips.FindByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	tl, err := s.buildTimeline(dest, prefs)
	if err != nil {
		return nil, err
	}
	rows := app.FromTimeline(destinationID, tl.Milestones, s.clock.Now())
	if err := s.milestones.ReplaceForDestination(ctx, destinationID, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Milestones returns the persisted milestone rows of a destination.
func (s *Service) Milestones(ctx context.Context, destinationID common.ID) ([]*app.StoredMilestone, error) {
	return s.milestones.ListByDestination(ctx, destinationID)
}

// UpcomingMilestones returns a user's milestone rows due within the window.
func (s *Service) UpcomingMilestones(ctx context.Context, userID common.UserID, withinDays int) ([]*app.StoredMilestone, error) {
	if withinDays <= 0 {
		return nil, errors.InvalidParam("window must be positive")
	}
	return s.milestones.ListUpcoming(ctx, userID, s.clock.Today(), withinDays)
}

func (s *Service) buildTimeline(dest *trip.Destination, prefs timeline.Preferences) (*timeline.Timeline, error) {
	bounds, ok := dest.SnapshotBounds()
	if !ok {
		return nil, errors.New(errors.ErrCodeProcessingTimeUnset,
			"destination has no resolvable processing time")
	}
	return s.timeline.Build(bounds, dest.EntryDate, dest.Country, dest.SnapshotVisaType, prefs)
}

// reprojectDecisionDate replaces the planning-time decision estimate with one
// anchored on the actual submission date.  Failure to load the snapshot keeps
// the old estimate; the transition itself must not fail over a projection.
func (s *Service) reprojectDecisionDate(ctx context.Context, application *app.Application) {
	if application.SubmissionDate == nil {
		return
	}
	dest, err := s.trips.FindByID(ctx, application.DestinationID)
	if err != nil {
		s.logger.Warn("decision date reprojection skipped",
			logging.String("application_id", string(application.ID)),
			logging.Err(err))
		return
	}
	bounds, ok := dest.SnapshotBounds()
	if !ok {
		return
	}
	projected := s.timeline.ExpectedDecisionFrom(*application.SubmissionDate, bounds.MaxBusinessDays)
	application.ExpectedDecisionDate = &projected
}

func (s *Service) notify(ctx context.Context, application *app.Application, from app.Status) {
	event := StatusEvent{
		ApplicationID: application.ID,
		UserID:        application.UserID,
		DestinationID: application.DestinationID,
		From:          from,
		To:            application.Status,
		OccurredAt:    s.clock.Now(),
	}
	if err := s.notifier.NotifyStatusChange(ctx, event); err != nil {
		// Persisted state is the source of truth; a lost event is log-worthy
		// but must not roll back the transition.
		s.logger.Warn("status change notification failed",
			logging.String("application_id", string(application.ID)),
			logging.Err(err))
	}
	s.logger.Info("application transitioned",
		logging.String("application_id", string(application.ID)),
		logging.String("from", string(from)),
		logging.String("to", string(application.Status)))
}

//Personal.AI order the ending
