package timeline

import (
	"time"

	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Season windows
// ─────────────────────────────────────────────────────────────────────────────

// SeasonWindow is a month-granularity peak-demand window.  Windows that wrap
// the year boundary are expressed with StartMonth > EndMonth (December to
// January is {12, 1}).
type SeasonWindow struct {
	Name       string `mapstructure:"name" json:"name"`
	StartMonth int    `mapstructure:"start_month" json:"start_month"`
	EndMonth   int    `mapstructure:"end_month" json:"end_month"`
	Impact     string `mapstructure:"impact" json:"impact"`
}

// Contains reports whether the month falls inside the window, honoring
// year-boundary wrap-around.
func (w SeasonWindow) Contains(m time.Month) bool {
	month := int(m)
	if w.StartMonth <= w.EndMonth {
		return month >= w.StartMonth && month <= w.EndMonth
	}
	return month >= w.StartMonth || month <= w.EndMonth
}

// Validate checks the structural invariants of a window.
func (w SeasonWindow) Validate() error {
	if w.Name == "" {
		return errors.InvalidParam("season window must be named")
	}
	if w.StartMonth < 1 || w.StartMonth > 12 || w.EndMonth < 1 || w.EndMonth > 12 {
		return errors.InvalidParam("season window months must be in 1..12")
	}
	return nil
}

// SeasonPolicy holds the global peak windows plus per-destination overrides.
// The day of month is deliberately ignored: demand surges are modeled at month
// granularity.
type SeasonPolicy struct {
	Global    []SeasonWindow                      `mapstructure:"global" json:"global"`
	ByCountry map[common.CountryCode][]SeasonWindow `mapstructure:"by_country" json:"by_country"`
}

// DefaultSeasonPolicy returns the shipped season windows.
func DefaultSeasonPolicy() SeasonPolicy {
	return SeasonPolicy{
		Global: []SeasonWindow{
			{
				Name:       "Summer holiday season",
				StartMonth: 6,
				EndMonth:   8,
				Impact:     "Embassies and visa centers see their highest application volumes of the year",
			},
			{
				Name:       "Winter holiday season",
				StartMonth: 12,
				EndMonth:   1,
				Impact:     "Reduced embassy staffing coincides with end-of-year travel demand",
			},
			{
				Name:       "Spring break season",
				StartMonth: 3,
				EndMonth:   4,
				Impact:     "Elevated demand around school holidays slows appointment availability",
			},
		},
		ByCountry: map[common.CountryCode][]SeasonWindow{
			"CN": {
				{
					Name:       "Lunar New Year travel rush",
					StartMonth: 1,
					EndMonth:   2,
					Impact:     "Consular services run reduced schedules around the Spring Festival",
				},
			},
			"IN": {
				{
					Name:       "Diwali season",
					StartMonth: 10,
					EndMonth:   11,
					Impact:     "Festival travel demand lengthens appointment queues",
				},
			},
			"BR": {
				{
					Name:       "Carnival season",
					StartMonth: 2,
					EndMonth:   3,
					Impact:     "Carnival tourism inflates application volumes",
				},
			},
		},
	}
}

// Validate checks every configured window.
func (p SeasonPolicy) Validate() error {
	for _, w := range p.Global {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	for country, windows := range p.ByCountry {
		if err := country.Validate(); err != nil {
			return errors.InvalidParam("season override country: " + err.Error())
		}
		for _, w := range windows {
			if err := w.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Detector
// ─────────────────────────────────────────────────────────────────────────────

// SeasonInfo is the peak-season verdict for one travel date and destination.
type SeasonInfo struct {
	IsPeakSeason bool   `json:"is_peak_season"`
	SeasonName   string `json:"season_name,omitempty"`
	Impact       string `json:"impact,omitempty"`
}

// SeasonDetector answers whether a travel date lands in a peak-demand window
// for a destination.  Global windows are consulted first, then the
// destination's overrides; the first match wins.
type SeasonDetector struct {
	policy SeasonPolicy
}

// NewSeasonDetector constructs a detector over the given policy.
func NewSeasonDetector(policy SeasonPolicy) *SeasonDetector {
	return &SeasonDetector{policy: policy}
}

// Check evaluates the travel date against the configured windows.
func (d *SeasonDetector) Check(travelDate time.Time, destination common.CountryCode) SeasonInfo {
	if travelDate.IsZero() {
		return SeasonInfo{}
	}
	month := travelDate.Month()
	for _, w := range d.policy.Global {
		if w.Contains(month) {
			return SeasonInfo{IsPeakSeason: true, SeasonName: w.Name, Impact: w.Impact}
		}
	}
	for _, w := range d.policy.ByCountry[destination] {
		if w.Contains(month) {
			return SeasonInfo{IsPeakSeason: true, SeasonName: w.Name, Impact: w.Impact}
		}
	}
	return SeasonInfo{}
}

//Personal.AI order the ending
