package timeline

import (
	"fmt"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
)

// ─────────────────────────────────────────────────────────────────────────────
// Risk levels and schemes
// ─────────────────────────────────────────────────────────────────────────────

// RiskLevel labels how much schedule pressure a plan is under.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
	RiskTight    RiskLevel = "TIGHT"
)

// riskColors maps levels to the traffic-light palette clients render.
var riskColors = map[RiskLevel]string{
	RiskCritical: "red",
	RiskHigh:     "orange",
	RiskMedium:   "yellow",
	RiskTight:    "yellow",
	RiskLow:      "green",
}

// Color returns the display color for a level, defaulting to gray for levels
// outside the known palette.
func (l RiskLevel) Color() string {
	if c, ok := riskColors[l]; ok {
		return c
	}
	return "gray"
}

// RiskScheme maps the four classifier outcomes onto consumer-facing levels.
// Two schemes share one classifier: the application-tracking surface uses the
// four-level ladder, the planning surface collapses it to three levels and
// skips peak escalation because the peak effect is already priced into the
// buffer it sees.
type RiskScheme struct {
	Name string

	// ImpossibleLevel applies when even the raw business-day maximum does not
	// fit before travel.
	ImpossibleLevel RiskLevel

	// NegativeLevel applies when the full requirement (calendar max + buffer)
	// overruns the trip, but the bare processing window still fits.
	NegativeLevel RiskLevel

	// TightLevel applies when the margin is non-negative but under the safety
	// buffer.
	TightLevel RiskLevel

	// ComfortableLevel applies when the margin clears the safety buffer.
	ComfortableLevel RiskLevel

	// EscalateOnPeak bumps a comfortable verdict to the tight level when the
	// travel date falls in a peak window.
	EscalateOnPeak bool
}

// ApplicationRiskScheme is the four-level ladder used on application and
// destination timelines.
func ApplicationRiskScheme() RiskScheme {
	return RiskScheme{
		Name:             "application",
		ImpossibleLevel:  RiskCritical,
		NegativeLevel:    RiskHigh,
		TightLevel:       RiskMedium,
		ComfortableLevel: RiskLow,
		EscalateOnPeak:   true,
	}
}

// PlanningRiskScheme is the three-level ladder used by the trip feasibility
// rollup.
func PlanningRiskScheme() RiskScheme {
	return RiskScheme{
		Name:             "planning",
		ImpossibleLevel:  RiskHigh,
		NegativeLevel:    RiskHigh,
		TightLevel:       RiskTight,
		ComfortableLevel: RiskLow,
		EscalateOnPeak:   false,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Assessment
// ─────────────────────────────────────────────────────────────────────────────

// Assessment is one risk verdict with its supporting numbers.
type Assessment struct {
	Level      RiskLevel `json:"level"`
	Color      string    `json:"color"`
	Message    string    `json:"message"`
	DaysMargin int       `json:"days_margin"`
	Factors    []string  `json:"factors,omitempty"`
}

// RiskAssessor classifies a plan's schedule pressure under one scheme.  Both
// consumer surfaces share this classifier so the band boundaries can never
// drift apart.
type RiskAssessor struct {
	scheme RiskScheme
	policy Policy
}

// NewRiskAssessor constructs an assessor.
func NewRiskAssessor(scheme RiskScheme, policy Policy) *RiskAssessor {
	return &RiskAssessor{scheme: scheme, policy: policy}
}

// Assess classifies the margin between the days remaining until travel and
// the total requirement (worst-case calendar processing plus buffer).  Rules
// apply first-match in severity order.
func (a *RiskAssessor) Assess(daysUntilTrip int, bounds visa.ProcessingBounds, bufferDays int, peak SeasonInfo) Assessment {
	calMax := a.policy.CalendarDays(bounds.MaxBusinessDays)
	totalRequired := calMax + bufferDays
	margin := daysUntilTrip - totalRequired

	factors := []string{
		fmt.Sprintf("processing can take up to %d calendar days", calMax),
		fmt.Sprintf("%d day safety buffer applied", bufferDays),
	}
	if peak.IsPeakSeason {
		factors = append(factors, "travel date falls in "+peak.SeasonName)
	}

	var level RiskLevel
	var message string
	switch {
	case daysUntilTrip < bounds.MaxBusinessDays:
		level = a.scheme.ImpossibleLevel
		message = fmt.Sprintf("Processing alone can take %d business days but only %d days remain before travel", bounds.MaxBusinessDays, daysUntilTrip)
	case margin < 0:
		level = a.scheme.NegativeLevel
		message = fmt.Sprintf("The plan overruns the trip by %d days; submit immediately and expect delays", -margin)
	case margin < a.policy.SafetyBufferDays:
		level = a.scheme.TightLevel
		message = fmt.Sprintf("Only %d days of slack remain; start the application now", margin)
	default:
		level = a.scheme.ComfortableLevel
		message = fmt.Sprintf("%d days of slack before the latest submission date", margin)
	}

	if a.scheme.EscalateOnPeak && peak.IsPeakSeason && level == a.scheme.ComfortableLevel {
		level = a.scheme.TightLevel
		message = "Peak season demand erodes an otherwise comfortable margin; start early"
		factors = append(factors, "peak season escalation")
	}

	return Assessment{
		Level:      level,
		Color:      level.Color(),
		Message:    message,
		DaysMargin: margin,
		Factors:    factors,
	}
}

//Personal.AI order the ending
