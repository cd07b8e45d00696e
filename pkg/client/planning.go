package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// PlanningClient covers the read-side planning endpoints: requirement lookup,
// timeline computation and feasibility checks.
type PlanningClient struct {
	c *Client
}

// Requirement mirrors the server's visa requirement record.
type Requirement struct {
	ID                    string    `json:"id"`
	PassportCountry       string    `json:"passport_country"`
	DestinationCountry    string    `json:"destination_country"`
	TravelPurpose         string    `json:"travel_purpose"`
	VisaType              string    `json:"visa_type"`
	ProcessingTimeMinDays int       `json:"processing_time_min_days"`
	ProcessingTimeMaxDays int       `json:"processing_time_max_days"`
	AllowedStayDays       int       `json:"allowed_stay_days"`
	RegionalBloc          string    `json:"regional_bloc,omitempty"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Resolution is the requirement lookup result.  Found=false means the corridor
// is visa-free or not yet curated.
type Resolution struct {
	Found       bool         `json:"found"`
	Requirement *Requirement `json:"requirement,omitempty"`
}

// Milestone mirrors one dated step of a computed plan.
type Milestone struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Order       int       `json:"order"`
}

// RiskAssessment mirrors the server's risk verdict.
type RiskAssessment struct {
	Level      string `json:"level"`
	Color      string `json:"color"`
	Message    string `json:"message"`
	DaysMargin int    `json:"days_margin"`
}

// Timeline mirrors the computed application plan for a destination.
type Timeline struct {
	Destination          string          `json:"destination"`
	VisaType             string          `json:"visa_type"`
	TravelDate           time.Time       `json:"travel_date"`
	DaysUntilTrip        int             `json:"days_until_trip"`
	BufferDays           int             `json:"buffer_days"`
	CalendarDaysMin      int             `json:"calendar_days_min"`
	CalendarDaysMax      int             `json:"calendar_days_max"`
	LatestSubmissionDate time.Time       `json:"latest_submission_date"`
	RecommendedStartDate time.Time       `json:"recommended_start_date"`
	ExpectedDecisionDate time.Time       `json:"expected_decision_date"`
	PreArrivalDeadline   time.Time       `json:"pre_arrival_deadline"`
	Risk                 *RiskAssessment `json:"risk,omitempty"`
	Milestones           []Milestone     `json:"milestones,omitempty"`
}

// DestinationFeasibility is the verdict for one trip leg.
type DestinationFeasibility struct {
	DestinationID string          `json:"destination_id"`
	Country       string          `json:"country"`
	Status        string          `json:"status"`
	Reason        string          `json:"reason"`
	Timeline      *Timeline       `json:"timeline,omitempty"`
	Risk          *RiskAssessment `json:"risk,omitempty"`
}

// TripFeasibility is the rolled-up verdict for a whole trip.
type TripFeasibility struct {
	TripID       string                   `json:"trip_id"`
	Status       string                   `json:"status"`
	Destinations []DestinationFeasibility `json:"destinations"`
}

// ResolveRequirement looks up the requirement for a passport, destination and
// purpose.  Purpose defaults to TOURISM on the server when empty.
func (p *PlanningClient) ResolveRequirement(ctx context.Context, passport, destination, purpose string) (*Resolution, error) {
	q := url.Values{}
	q.Set("passport", passport)
	q.Set("destination", destination)
	if purpose != "" {
		q.Set("purpose", purpose)
	}

	var out Resolution
	if err := p.c.do(ctx, "GET", "/api/v1/requirements", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DestinationTimeline computes the application plan for a trip destination.
// reminderDaysBefore <= 0 uses the server default.
func (p *PlanningClient) DestinationTimeline(ctx context.Context, destinationID string, reminderDaysBefore int) (*Timeline, error) {
	q := url.Values{}
	if reminderDaysBefore > 0 {
		q.Set("reminder_days_before", strconv.Itoa(reminderDaysBefore))
	}

	var out Timeline
	if err := p.c.do(ctx, "GET", "/api/v1/destinations/"+destinationID+"/timeline", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DestinationFeasibility evaluates one trip leg.
func (p *PlanningClient) DestinationFeasibility(ctx context.Context, destinationID string) (*DestinationFeasibility, error) {
	var out DestinationFeasibility
	if err := p.c.do(ctx, "GET", "/api/v1/destinations/"+destinationID+"/feasibility", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TripFeasibility rolls every destination of a trip up to one verdict.
func (p *PlanningClient) TripFeasibility(ctx context.Context, tripID string) (*TripFeasibility, error) {
	var out TripFeasibility
	if err := p.c.do(ctx, "GET", "/api/v1/trips/"+tripID+"/feasibility", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
