package timeline

import (
	"sync"
	"time"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	clockpkg "github.com/turtacn/VisaPath-Intelligence/pkg/clock"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// Service bundles the calculator, both risk schemes and the milestone
// generator behind one constructor so every consumer works from the same
// policy instance.  The policy can be swapped at runtime; readers snapshot
// the wired components under a read lock so in-flight calculations always
// see one consistent policy.
type Service struct {
	mu       sync.RWMutex
	policy   Policy
	clock    clockpkg.Clock
	calc     *Calculator
	appRisk  *RiskAssessor
	planRisk *RiskAssessor
	gen      *MilestoneGenerator
}

// NewService constructs a fully wired timeline service.
func NewService(policy Policy, clk clockpkg.Clock) *Service {
	s := &Service{clock: clk}
	s.rewire(policy)
	return s
}

// UpdatePolicy swaps the policy in force and rebuilds every component over it.
// Configuration hot reload calls this so buffers, ratios and season windows
// can be retuned without a restart.
func (s *Service) UpdatePolicy(policy Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewire(policy)
}

func (s *Service) rewire(policy Policy) {
	s.policy = policy
	s.calc = NewCalculator(policy, s.clock)
	s.appRisk = NewRiskAssessor(ApplicationRiskScheme(), policy)
	s.planRisk = NewRiskAssessor(PlanningRiskScheme(), policy)
	s.gen = NewMilestoneGenerator(policy)
}

// Build computes the complete plan for one destination: dates, application
// risk and milestones.
func (s *Service) Build(bounds visa.ProcessingBounds, travelDate time.Time, destination common.CountryCode, visaType visa.Type, prefs Preferences) (*Timeline, error) {
	s.mu.RLock()
	calc, appRisk, gen := s.calc, s.appRisk, s.gen
	s.mu.RUnlock()

	tl, err := calc.Calculate(bounds, travelDate, destination, visaType)
	if err != nil {
		return nil, err
	}
	risk := appRisk.Assess(tl.DaysUntilTrip, bounds, tl.BufferDays, tl.PeakSeason)
	tl.Risk = &risk
	tl.Milestones = gen.Generate(tl, prefs)
	return tl, nil
}

// PlanningAssessment reclassifies an already computed timeline under the
// three-level planning scheme for the feasibility rollup.
func (s *Service) PlanningAssessment(tl *Timeline, bounds visa.ProcessingBounds) Assessment {
	s.mu.RLock()
	planRisk := s.planRisk
	s.mu.RUnlock()
	return planRisk.Assess(tl.DaysUntilTrip, bounds, tl.BufferDays, tl.PeakSeason)
}

// ExpectedDecisionFrom projects a decision date from an actual submission.
func (s *Service) ExpectedDecisionFrom(submittedAt time.Time, maxBusinessDays int) time.Time {
	s.mu.RLock()
	calc := s.calc
	s.mu.RUnlock()
	return calc.ExpectedDecisionFrom(submittedAt, maxBusinessDays)
}

// Season exposes the peak-season verdict directly.
func (s *Service) Season(travelDate time.Time, destination common.CountryCode) SeasonInfo {
	s.mu.RLock()
	calc := s.calc
	s.mu.RUnlock()
	return calc.Season(travelDate, destination)
}

// Policy returns the policy in force, for handlers that surface constants.
func (s *Service) Policy() Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

//Personal.AI order the ending
