package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
)

func TestApplicationRiskLadder(t *testing.T) {
	assessor := NewRiskAssessor(ApplicationRiskScheme(), DefaultPolicy())
	bounds := visa.ProcessingBounds{MinBusinessDays: 5, MaxBusinessDays: 15}
	noPeak := SeasonInfo{}

	// calMax 21 + buffer 10 = 31 days required.
	cases := []struct {
		name          string
		daysUntilTrip int
		wantLevel     RiskLevel
		wantMargin    int
	}{
		{"processing alone does not fit", 10, RiskCritical, 10 - 31},
		{"plan overruns the trip", 20, RiskHigh, -11},
		{"zero margin", 31, RiskMedium, 0},
		{"under the safety buffer", 35, RiskMedium, 4},
		{"comfortable", 90, RiskLow, 59},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := assessor.Assess(tc.daysUntilTrip, bounds, 10, noPeak)
			assert.Equal(t, tc.wantLevel, got.Level)
			assert.Equal(t, tc.wantMargin, got.DaysMargin)
			assert.Equal(t, tc.wantLevel.Color(), got.Color)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestPeakEscalatesOnlyComfortableVerdicts(t *testing.T) {
	assessor := NewRiskAssessor(ApplicationRiskScheme(), DefaultPolicy())
	bounds := visa.ProcessingBounds{MinBusinessDays: 5, MaxBusinessDays: 15}
	peak := SeasonInfo{IsPeakSeason: true, SeasonName: "Summer holiday season"}

	// A comfortable margin gets bumped to MEDIUM.
	got := assessor.Assess(90, bounds, 10, peak)
	assert.Equal(t, RiskMedium, got.Level)
	assert.Contains(t, got.Factors, "peak season escalation")

	// Already-worse verdicts keep their level.
	assert.Equal(t, RiskHigh, assessor.Assess(20, bounds, 10, peak).Level)
	assert.Equal(t, RiskCritical, assessor.Assess(10, bounds, 10, peak).Level)
	assert.Equal(t, RiskMedium, assessor.Assess(35, bounds, 10, peak).Level)
}

func TestPlanningSchemeCollapsesToThreeLevels(t *testing.T) {
	assessor := NewRiskAssessor(PlanningRiskScheme(), DefaultPolicy())
	bounds := visa.ProcessingBounds{MinBusinessDays: 5, MaxBusinessDays: 15}
	noPeak := SeasonInfo{}

	assert.Equal(t, RiskHigh, assessor.Assess(10, bounds, 10, noPeak).Level)
	assert.Equal(t, RiskHigh, assessor.Assess(20, bounds, 10, noPeak).Level)
	assert.Equal(t, RiskTight, assessor.Assess(35, bounds, 10, noPeak).Level)
	assert.Equal(t, RiskLow, assessor.Assess(90, bounds, 10, noPeak).Level)
}

func TestPlanningSchemeSkipsPeakEscalation(t *testing.T) {
	assessor := NewRiskAssessor(PlanningRiskScheme(), DefaultPolicy())
	bounds := visa.ProcessingBounds{MinBusinessDays: 5, MaxBusinessDays: 15}
	peak := SeasonInfo{IsPeakSeason: true, SeasonName: "Summer holiday season"}

	// The peak effect is already priced into the stretched buffer the planning
	// surface passes in, so no second escalation happens.
	assert.Equal(t, RiskLow, assessor.Assess(90, bounds, 15, peak).Level)
}

func TestRiskLevelColors(t *testing.T) {
	assert.Equal(t, "red", RiskCritical.Color())
	assert.Equal(t, "orange", RiskHigh.Color())
	assert.Equal(t, "yellow", RiskMedium.Color())
	assert.Equal(t, "yellow", RiskTight.Color())
	assert.Equal(t, "green", RiskLow.Color())
	assert.Equal(t, "gray", RiskLevel("UNHEARD_OF").Color())
}

//Personal.AI order the ending
