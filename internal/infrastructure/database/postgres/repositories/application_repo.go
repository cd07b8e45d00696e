package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	app "github.com/turtacn/VisaPath-Intelligence/internal/domain/application"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// uniqueViolation is the PostgreSQL error code raised by the partial unique
// index guarding one active application per (user, destination).
const uniqueViolation = "23505"

type postgresApplicationRepo struct {
	baseRepo
}

// NewPostgresApplicationRepo builds the application repository.
func NewPostgresApplicationRepo(conn *postgres.Connection, log logging.Logger) app.Repository {
	return &postgresApplicationRepo{
		baseRepo: baseRepo{conn: conn, log: log},
	}
}

const applicationColumns = `
	id, user_id, destination_id, status, appointment_date, submission_date,
	decision_date, recommended_submission_date, latest_submission_date,
	expected_decision_date, version, created_at, updated_at
`

func (r *postgresApplicationRepo) Create(ctx context.Context, a *app.Application) error {
	if err := a.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO visa_applications (
			id, user_id, destination_id, status, appointment_date,
			submission_date, decision_date, recommended_submission_date,
			latest_submission_date, expected_decision_date,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.executor().ExecContext(ctx, query,
		string(a.ID), string(a.UserID), string(a.DestinationID), string(a.Status),
		toNullTime(a.AppointmentDate), toNullTime(a.SubmissionDate),
		toNullTime(a.DecisionDate), toNullTime(a.RecommendedSubmissionDate),
		toNullTime(a.LatestSubmissionDate), toNullTime(a.ExpectedDecisionDate),
		a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errors.Conflict("an active application already exists for this destination")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "application insert failed")
	}
	return nil
}

func (r *postgresApplicationRepo) FindByID(ctx context.Context, id common.ID) (*app.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM visa_applications WHERE id = $1`

	row := r.executor().QueryRowContext(ctx, query, string(id))
	a, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeApplicationNotFound, "application not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "application lookup failed")
	}
	return a, nil
}

func (r *postgresApplicationRepo) FindActiveByUserAndDestination(ctx context.Context, userID common.UserID, destinationID common.ID) (*app.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM visa_applications
		WHERE user_id = $1 AND destination_id = $2
		  AND status NOT IN ('APPROVED', 'REJECTED', 'CANCELLED')`

	row := r.executor().QueryRowContext(ctx, query, string(userID), string(destinationID))
	a, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeApplicationNotFound, "no active application for this destination")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "application lookup failed")
	}
	return a, nil
}

func (r *postgresApplicationRepo) ListByUser(ctx context.Context, userID common.UserID, page common.Pagination) ([]*app.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM visa_applications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.executor().QueryContext(ctx, query, string(userID), page.PageSize, page.Offset())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "application query failed")
	}
	defer rows.Close()

	var apps []*app.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "application scan failed")
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "application iteration failed")
	}
	return apps, nil
}

// UpdateOptimistic writes the row only when the stored version still matches
// expectedVersion.  Zero rows affected means either a lost race or a deleted
// row; a follow-up existence check tells them apart.
func (r *postgresApplicationRepo) UpdateOptimistic(ctx context.Context, a *app.Application, expectedVersion int) error {
	query := `
		UPDATE visa_applications SET
			status = $1,
			appointment_date = $2,
			submission_date = $3,
			decision_date = $4,
			recommended_submission_date = $5,
			latest_submission_date = $6,
			expected_decision_date = $7,
			version = version + 1,
			updated_at = $8
		WHERE id = $9 AND version = $10
	`
	res, err := r.executor().ExecContext(ctx, query,
		string(a.Status),
		toNullTime(a.AppointmentDate), toNullTime(a.SubmissionDate),
		toNullTime(a.DecisionDate), toNullTime(a.RecommendedSubmissionDate),
		toNullTime(a.LatestSubmissionDate), toNullTime(a.ExpectedDecisionDate),
		a.UpdatedAt, string(a.ID), expectedVersion,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "application update failed")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "application update failed")
	}
	if affected == 0 {
		var exists bool
		checkErr := r.executor().QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM visa_applications WHERE id = $1)`, string(a.ID),
		).Scan(&exists)
		if checkErr != nil {
			return errors.Wrap(checkErr, errors.ErrCodeDatabaseError, "application existence check failed")
		}
		if !exists {
			return errors.New(errors.ErrCodeApplicationNotFound, "application not found")
		}
		return errors.VersionConflict("application was modified concurrently")
	}

	a.Version = expectedVersion + 1
	return nil
}

func scanApplication(s scanner) (*app.Application, error) {
	var a app.Application
	var appointment, submission, decision, recommended, latest, expected sql.NullTime
	err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.DestinationID,
		&a.Status,
		&appointment,
		&submission,
		&decision,
		&recommended,
		&latest,
		&expected,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.AppointmentDate = fromNullTime(appointment)
	a.SubmissionDate = fromNullTime(submission)
	a.DecisionDate = fromNullTime(decision)
	a.RecommendedSubmissionDate = fromNullTime(recommended)
	a.LatestSubmissionDate = fromNullTime(latest)
	a.ExpectedDecisionDate = fromNullTime(expected)
	return &a, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

//Personal.AI order the ending
