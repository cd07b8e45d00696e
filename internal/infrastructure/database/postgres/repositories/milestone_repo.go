package repositories

import (
	"context"
	"encoding/json"
	"time"

	app "github.com/turtacn/VisaPath-Intelligence/internal/domain/application"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

type postgresMilestoneRepo struct {
	baseRepo
}

// NewPostgresMilestoneRepo builds the milestone repository.
func NewPostgresMilestoneRepo(conn *postgres.Connection, log logging.Logger) app.MilestoneRepository {
	return &postgresMilestoneRepo{
		baseRepo: baseRepo{conn: conn, log: log},
	}
}

const milestoneColumns = `
	id, destination_id, milestone_type, name, description, due_date,
	sort_order, reminders, created_at
`

// ReplaceForDestination swaps a destination's milestone rows in one
// transaction so readers never observe a partial recompute.
func (r *postgresMilestoneRepo) ReplaceForDestination(ctx context.Context, destinationID common.ID, rows []*app.StoredMilestone) error {
	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone transaction failed")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM milestones WHERE destination_id = $1`, string(destinationID),
	); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone delete failed")
	}

	insert := `
		INSERT INTO milestones (
			id, destination_id, milestone_type, name, description,
			due_date, sort_order, reminders, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, row := range rows {
		reminders, err := json.Marshal(row.Reminders)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "reminder marshal failed")
		}
		if _, err := tx.ExecContext(ctx, insert,
			string(row.ID), string(row.DestinationID), string(row.Type),
			row.Name, row.Description, row.DueDate, row.SortOrder,
			reminders, row.CreatedAt,
		); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone insert failed")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone commit failed")
	}
	return nil
}

func (r *postgresMilestoneRepo) ListByDestination(ctx context.Context, destinationID common.ID) ([]*app.StoredMilestone, error) {
	query := `SELECT ` + milestoneColumns + `
		FROM milestones WHERE destination_id = $1 ORDER BY sort_order ASC`

	rows, err := r.executor().QueryContext(ctx, query, string(destinationID))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone query failed")
	}
	defer rows.Close()
	return collectMilestones(rows)
}

func (r *postgresMilestoneRepo) ListUpcoming(ctx context.Context, userID common.UserID, from time.Time, withinDays int) ([]*app.StoredMilestone, error) {
	until := from.AddDate(0, 0, withinDays)
	query := `SELECT ` + milestoneQualifiedColumns + `
		FROM milestones m
		JOIN visa_applications a ON a.destination_id = m.destination_id
		WHERE a.user_id = $1 AND m.due_date >= $2 AND m.due_date < $3
		ORDER BY m.due_date ASC, m.sort_order ASC`

	rows, err := r.executor().QueryContext(ctx, query, string(userID), from, until)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone query failed")
	}
	defer rows.Close()
	return collectMilestones(rows)
}

const milestoneQualifiedColumns = `
	m.id, m.destination_id, m.milestone_type, m.name, m.description, m.due_date,
	m.sort_order, m.reminders, m.created_at
`

func collectMilestones(rows interface {
	Next() bool
	Err() error
	Scan(dest ...interface{}) error
}) ([]*app.StoredMilestone, error) {
	var out []*app.StoredMilestone
	for rows.Next() {
		var row app.StoredMilestone
		var reminders []byte
		if err := rows.Scan(
			&row.ID,
			&row.DestinationID,
			&row.Type,
			&row.Name,
			&row.Description,
			&row.DueDate,
			&row.SortOrder,
			&reminders,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone scan failed")
		}
		if len(reminders) > 0 {
			if err := json.Unmarshal(reminders, &row.Reminders); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeSerialization, "reminder unmarshal failed")
			}
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "milestone iteration failed")
	}
	return out, nil
}

//Personal.AI order the ending
