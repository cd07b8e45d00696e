package application

import (
	"context"
	"time"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// Repository is the persistence port for applications.  Implementations
// return ErrCodeApplicationNotFound coded errors when nothing matches and
// ErrCodeVersionConflict when an optimistic update loses a race.
type Repository interface {
	// Create inserts a new application.  A second non-terminal application for
	// the same (user, destination) pair fails with ErrCodeConflict.
	Create(ctx context.Context, app *Application) error

	// FindByID loads an application by primary key.
	FindByID(ctx context.Context, id common.ID) (*Application, error)

	// FindActiveByUserAndDestination returns the non-terminal application for
	// the pair, if any.
	FindActiveByUserAndDestination(ctx context.Context, userID common.UserID, destinationID common.ID) (*Application, error)

	// ListByUser returns all applications of a user, newest first.
	ListByUser(ctx context.Context, userID common.UserID, page common.Pagination) ([]*Application, error)

	// UpdateOptimistic persists the application only if the stored row still
	// carries expectedVersion, then bumps the version.
	UpdateOptimistic(ctx context.Context, app *Application, expectedVersion int) error
}

// StoredMilestone is a persisted milestone row tied to a trip destination.
type StoredMilestone struct {
	ID            common.ID              `json:"id"`
	DestinationID common.ID              `json:"destination_id"`
	Type          timeline.MilestoneType `json:"type"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	DueDate       time.Time              `json:"due_date"`
	SortOrder     int                    `json:"sort_order"`
	Reminders     []timeline.Reminder    `json:"reminders,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// FromTimeline converts generated milestones into persistable rows.
func FromTimeline(destinationID common.ID, ms []timeline.Milestone, now time.Time) []*StoredMilestone {
	rows := make([]*StoredMilestone, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, &StoredMilestone{
			ID:            common.NewID(),
			DestinationID: destinationID,
			Type:          m.Type,
			Name:          m.Name,
			Description:   m.Description,
			DueDate:       m.DueDate,
			SortOrder:     m.Order,
			Reminders:     m.Reminders,
			CreatedAt:     now,
		})
	}
	return rows
}

// MilestoneRepository is the persistence port for milestone rows.  Recomputes
// replace a destination's rows wholesale instead of diffing them.
type MilestoneRepository interface {
	// ReplaceForDestination atomically swaps all milestone rows of one
	// destination.
	ReplaceForDestination(ctx context.Context, destinationID common.ID, rows []*StoredMilestone) error

	// ListByDestination returns the rows in sequence order.
	ListByDestination(ctx context.Context, destinationID common.ID) ([]*StoredMilestone, error)

	// ListUpcoming returns rows across a user's destinations due within the
	// window starting at from, ordered by due date.
	ListUpcoming(ctx context.Context, userID common.UserID, from time.Time, withinDays int) ([]*StoredMilestone, error)
}

//Personal.AI order the ending
