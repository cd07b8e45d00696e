package timeline

import (
	"time"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	clockpkg "github.com/turtacn/VisaPath-Intelligence/pkg/clock"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Calculator
// ─────────────────────────────────────────────────────────────────────────────

// Calculator turns a processing window and a travel date into the concrete
// dates of an application plan.  All arithmetic happens on midnight-normalized
// dates so that the wall-clock time of the request never shifts a deadline.
type Calculator struct {
	policy  Policy
	seasons *SeasonDetector
	clock   clockpkg.Clock
}

// NewCalculator constructs a Calculator over the given policy and clock.
func NewCalculator(policy Policy, clk clockpkg.Clock) *Calculator {
	return &Calculator{
		policy:  policy,
		seasons: NewSeasonDetector(policy.Seasons),
		clock:   clk,
	}
}

// Calculate derives the timeline for one destination.
//
// A past travel date is not rejected; the resulting negative margin surfaces
// through risk classification instead, because the traveler still needs to see
// how far off the plan is.
func (c *Calculator) Calculate(bounds visa.ProcessingBounds, travelDate time.Time, destination common.CountryCode, visaType visa.Type) (*Timeline, error) {
	if travelDate.IsZero() {
		return nil, errors.New(errors.ErrCodeTravelDateInvalid, "travel date must be set")
	}
	if bounds.MinBusinessDays < 0 || bounds.MaxBusinessDays < 0 {
		return nil, errors.InvalidParam("processing bounds must not be negative")
	}
	if bounds.MaxBusinessDays > 0 && bounds.MinBusinessDays > bounds.MaxBusinessDays {
		return nil, errors.InvalidParam("processing bounds min exceeds max")
	}

	today := c.clock.Today()
	travel := clockpkg.Midnight(travelDate)

	peak := c.seasons.Check(travel, destination)
	buffer := c.policy.BufferDays(visaType)
	if peak.IsPeakSeason {
		buffer = c.policy.PeakBuffer(buffer)
	}

	calMin := c.policy.CalendarDays(bounds.MinBusinessDays)
	calMax := c.policy.CalendarDays(bounds.MaxBusinessDays)

	latest := travel.AddDate(0, 0, -(calMax + buffer))

	return &Timeline{
		Destination:          destination,
		VisaType:             visaType,
		TravelDate:           travel,
		DaysUntilTrip:        clockpkg.DaysBetween(today, travel),
		BufferDays:           buffer,
		CalendarDaysMin:      calMin,
		CalendarDaysMax:      calMax,
		LatestSubmissionDate: latest,
		RecommendedStartDate: latest.AddDate(0, 0, -c.policy.PrepWindowDays),
		ExpectedDecisionDate: today.AddDate(0, 0, calMax),
		PreArrivalDeadline:   travel.AddDate(0, 0, -c.policy.PreArrivalWindowDays),
		PeakSeason:           peak,
	}, nil
}

// ExpectedDecisionFrom projects a decision date from an actual submission
// instant and the worst-case processing bound.  The application state machine
// uses it to replace the planning-time estimate once a submission is recorded.
func (c *Calculator) ExpectedDecisionFrom(submittedAt time.Time, maxBusinessDays int) time.Time {
	return clockpkg.Midnight(submittedAt).AddDate(0, 0, c.policy.CalendarDays(maxBusinessDays))
}

// Season exposes the detector verdict for callers that need the peak flag
// without a full timeline.
func (c *Calculator) Season(travelDate time.Time, destination common.CountryCode) SeasonInfo {
	return c.seasons.Check(clockpkg.Midnight(travelDate), destination)
}

//Personal.AI order the ending
