package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// ApplicationsClient covers the application tracking endpoints.
type ApplicationsClient struct {
	c *Client
}

// Application mirrors the server's application record.
type Application struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	DestinationID        string     `json:"destination_id"`
	Status               string     `json:"status"`
	AppointmentDate      *time.Time `json:"appointment_date,omitempty"`
	SubmissionDate       *time.Time `json:"submission_date,omitempty"`
	DecisionDate         *time.Time `json:"decision_date,omitempty"`

	RecommendedSubmissionDate *time.Time `json:"recommended_submission_date,omitempty"`
	LatestSubmissionDate      *time.Time `json:"latest_submission_date,omitempty"`
	ExpectedDecisionDate      *time.Time `json:"expected_decision_date,omitempty"`
	Version              int        `json:"version"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// StoredMilestone mirrors a persisted milestone row.
type StoredMilestone struct {
	ID            string    `json:"id"`
	DestinationID string    `json:"destination_id"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"due_date"`
	SortOrder     int       `json:"sort_order"`
}

// TransitionRequest carries a status change.  Dates use YYYY-MM-DD and are
// required only by the transitions that record them.
type TransitionRequest struct {
	Target          string `json:"target"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	SubmissionDate  string `json:"submission_date,omitempty"`
	DecisionDate    string `json:"decision_date,omitempty"`
}

// Create starts tracking an application for a destination.  Creating twice for
// the same live (user, destination) pair returns the existing application.
func (a *ApplicationsClient) Create(ctx context.Context, userID, destinationID string) (*Application, error) {
	body := map[string]string{"user_id": userID, "destination_id": destinationID}
	var out Application
	if err := a.c.do(ctx, "POST", "/api/v1/applications", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get loads one application by ID.
func (a *ApplicationsClient) Get(ctx context.Context, id string) (*Application, error) {
	var out Application
	if err := a.c.do(ctx, "GET", "/api/v1/applications/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List pages through a user's applications.
func (a *ApplicationsClient) List(ctx context.Context, userID string, page, pageSize int) ([]Application, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var out []Application
	if err := a.c.do(ctx, "GET", "/api/v1/applications", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transition applies a status change.
func (a *ApplicationsClient) Transition(ctx context.Context, id string, req TransitionRequest) (*Application, error) {
	var out Application
	if err := a.c.do(ctx, "POST", "/api/v1/applications/"+id+"/transition", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels a live application.
func (a *ApplicationsClient) Cancel(ctx context.Context, id string) (*Application, error) {
	var out Application
	if err := a.c.do(ctx, "POST", "/api/v1/applications/"+id+"/cancel", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Milestones lists the persisted milestones of a destination.
func (a *ApplicationsClient) Milestones(ctx context.Context, destinationID string) ([]StoredMilestone, error) {
	var out []StoredMilestone
	if err := a.c.do(ctx, "GET", "/api/v1/destinations/"+destinationID+"/milestones", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecomputeMilestones rebuilds the milestone plan of a destination.
func (a *ApplicationsClient) RecomputeMilestones(ctx context.Context, destinationID string) ([]StoredMilestone, error) {
	var out []StoredMilestone
	if err := a.c.do(ctx, "POST", "/api/v1/destinations/"+destinationID+"/milestones/recompute", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpcomingMilestones lists a user's milestones due within the window.
func (a *ApplicationsClient) UpcomingMilestones(ctx context.Context, userID string, withinDays int) ([]StoredMilestone, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	if withinDays > 0 {
		q.Set("within_days", strconv.Itoa(withinDays))
	}

	var out []StoredMilestone
	if err := a.c.do(ctx, "GET", "/api/v1/milestones/upcoming", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

//Personal.AI order the ending
