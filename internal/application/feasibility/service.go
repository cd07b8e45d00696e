// Package feasibility implements the read-side engine surface: building
// timelines for trip destinations and rolling destination verdicts up to a
// trip-level feasibility status.
package feasibility

import (
	"context"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/trip"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	clockpkg "github.com/turtacn/VisaPath-Intelligence/pkg/clock"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Verdicts
// ─────────────────────────────────────────────────────────────────────────────

// Status is the coarse feasibility verdict for a destination or a whole trip.
type Status string

const (
	StatusFeasible    Status = "FEASIBLE"
	StatusRisky       Status = "RISKY"
	StatusNotFeasible Status = "NOT_FEASIBLE"

	// StatusUnknown means the visa data for the corridor carries no resolvable
	// processing time.  Incomplete reference data is expected steady state, so
	// this is a verdict, not an error.
	StatusUnknown Status = "UNKNOWN"
)

// severity orders verdicts for the worst-of rollup.  UNKNOWN deliberately does
// not degrade the trip verdict; it is surfaced per destination instead.
var severity = map[Status]int{
	StatusNotFeasible: 3,
	StatusRisky:       2,
	StatusFeasible:    1,
	StatusUnknown:     0,
}

// DestinationResult is the verdict for one trip leg.
type DestinationResult struct {
	DestinationID common.ID            `json:"destination_id"`
	Country       common.CountryCode   `json:"country"`
	Status        Status               `json:"status"`
	Reason        string               `json:"reason"`
	Timeline      *timeline.Timeline   `json:"timeline,omitempty"`
	Risk          *timeline.Assessment `json:"risk,omitempty"`
}

// TripResult is the rolled-up verdict for a whole trip.
type TripResult struct {
	TripID       common.ID           `json:"trip_id"`
	Status       Status              `json:"status"`
	Destinations []DestinationResult `json:"destinations"`
	CheckedAt    common.Timestamp    `json:"checked_at"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Service evaluates feasibility from destination snapshots.  It never writes;
// milestone persistence belongs to the application-tracking service.
type Service struct {
	trips    trip.Repository
	timeline *timeline.Service
	clock    clockpkg.Clock
	logger   logging.Logger
}

// NewService constructs a feasibility service.
func NewService(trips trip.Repository, tl *timeline.Service, clk clockpkg.Clock, logger logging.Logger) *Service {
	return &Service{trips: trips, timeline: tl, clock: clk, logger: logger.Named("feasibility")}
}

// Timeline builds the full application plan for one destination, including
// application-scheme risk and milestones.  It does not persist anything.
func (s *Service) Timeline(ctx context.Context, destinationID common.ID, prefs timeline.Preferences) (*timeline.Timeline, error) {
	dest, err := s.trips.FindByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	bounds, ok := dest.SnapshotBounds()
	if !ok {
		return nil, errors.New(errors.ErrCodeProcessingTimeUnset,
			"destination has no resolvable processing time")
	}
	return s.timeline.Build(bounds, dest.EntryDate, dest.Country, dest.SnapshotVisaType, prefs)
}

// CheckDestination evaluates one leg.
func (s *Service) CheckDestination(ctx context.Context, destinationID common.ID) (*DestinationResult, error) {
	dest, err := s.trips.FindByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	result := s.perDestination(dest)
	return &result, nil
}

// CheckTrip evaluates every leg of a trip and rolls the verdicts up: any
// NOT_FEASIBLE makes the trip NOT_FEASIBLE, otherwise any RISKY makes it
// RISKY, otherwise FEASIBLE.
func (s *Service) CheckTrip(ctx context.Context, tripID common.ID) (*TripResult, error) {
	dests, err := s.trips.FindByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(dests) == 0 {
		return nil, errors.New(errors.ErrCodeTripNotFound, "trip has no destinations")
	}

	result := &TripResult{
		TripID:       tripID,
		Status:       StatusFeasible,
		Destinations: make([]DestinationResult, 0, len(dests)),
		CheckedAt:    common.NewTimestamp(),
	}
	for _, dest := range dests {
		dr := s.perDestination(dest)
		result.Destinations = append(result.Destinations, dr)
		if severity[dr.Status] > severity[result.Status] {
			result.Status = dr.Status
		}
	}

	s.logger.Info("trip feasibility checked",
		logging.String("trip_id", string(tripID)),
		logging.String("status", string(result.Status)),
		logging.Int("destinations", len(dests)))
	return result, nil
}

func (s *Service) perDestination(dest *trip.Destination) DestinationResult {
	result := DestinationResult{
		DestinationID: dest.ID,
		Country:       dest.Country,
	}

	if !dest.VisaRequired {
		result.Status = StatusFeasible
		result.Reason = "no visa required for this destination"
		return result
	}

	bounds, ok := dest.SnapshotBounds()
	if !ok {
		if dest.SnapshotVisaType.Valid() && !dest.SnapshotVisaType.RequiresApplication() {
			result.Status = StatusFeasible
			result.Reason = "entry authorization is granted without a prior application"
			return result
		}
		result.Status = StatusUnknown
		result.Reason = "no resolvable processing time for this corridor"
		return result
	}

	tl, err := s.timeline.Build(bounds, dest.EntryDate, dest.Country, dest.SnapshotVisaType, timeline.Preferences{})
	if err != nil {
		result.Status = StatusUnknown
		result.Reason = err.Error()
		return result
	}

	planning := s.timeline.PlanningAssessment(tl, bounds)
	result.Timeline = tl
	result.Risk = &planning

	switch planning.Level {
	case timeline.RiskHigh:
		result.Status = StatusNotFeasible
	case timeline.RiskTight:
		result.Status = StatusRisky
	default:
		result.Status = StatusFeasible
	}
	result.Reason = planning.Message
	return result
}

//Personal.AI order the ending
