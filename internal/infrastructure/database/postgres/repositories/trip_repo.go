package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/trip"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

type postgresTripRepo struct {
	baseRepo
}

// NewPostgresTripRepo builds the trip-destination repository.
func NewPostgresTripRepo(conn *postgres.Connection, log logging.Logger) trip.Repository {
	return &postgresTripRepo{
		baseRepo: baseRepo{conn: conn, log: log},
	}
}

const destinationColumns = `
	id, trip_id, country, entry_date, exit_date, travel_purpose, visa_required,
	visa_requirement_id, snapshot_visa_type, snapshot_processing_min_days,
	snapshot_processing_max_days, created_at
`

func (r *postgresTripRepo) FindByID(ctx context.Context, id common.ID) (*trip.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM trip_destinations WHERE id = $1`

	row := r.executor().QueryRowContext(ctx, query, string(id))
	dest, err := scanDestination(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeDestinationNotFound, "destination not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "destination lookup failed")
	}
	return dest, nil
}

func (r *postgresTripRepo) FindByTripID(ctx context.Context, tripID common.ID) ([]*trip.Destination, error) {
	query := `SELECT ` + destinationColumns + `
		FROM trip_destinations WHERE trip_id = $1 ORDER BY entry_date ASC`

	rows, err := r.executor().QueryContext(ctx, query, string(tripID))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "destination query failed")
	}
	defer rows.Close()

	var dests []*trip.Destination
	for rows.Next() {
		dest, err := scanDestination(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "destination scan failed")
		}
		dests = append(dests, dest)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "destination iteration failed")
	}
	return dests, nil
}

func (r *postgresTripRepo) Save(ctx context.Context, d *trip.Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO trip_destinations (
			id, trip_id, country, entry_date, exit_date, travel_purpose,
			visa_required, visa_requirement_id, snapshot_visa_type,
			snapshot_processing_min_days, snapshot_processing_max_days, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			entry_date = EXCLUDED.entry_date,
			exit_date = EXCLUDED.exit_date,
			travel_purpose = EXCLUDED.travel_purpose,
			visa_required = EXCLUDED.visa_required,
			visa_requirement_id = EXCLUDED.visa_requirement_id,
			snapshot_visa_type = EXCLUDED.snapshot_visa_type,
			snapshot_processing_min_days = EXCLUDED.snapshot_processing_min_days,
			snapshot_processing_max_days = EXCLUDED.snapshot_processing_max_days
	`

	var exitDate sql.NullTime
	if !d.ExitDate.IsZero() {
		exitDate = sql.NullTime{Time: d.ExitDate, Valid: true}
	}
	var reqID sql.NullString
	if d.VisaRequirementID != "" {
		reqID = sql.NullString{String: string(d.VisaRequirementID), Valid: true}
	}
	var visaType sql.NullString
	if d.SnapshotVisaType != "" {
		visaType = sql.NullString{String: string(d.SnapshotVisaType), Valid: true}
	}

	_, err := r.executor().ExecContext(ctx, query,
		string(d.ID), string(d.TripID), string(d.Country), d.EntryDate, exitDate,
		string(d.TravelPurpose), d.VisaRequired, reqID, visaType,
		d.SnapshotProcessingMin, d.SnapshotProcessingMax, d.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "destination save failed")
	}
	return nil
}

func scanDestination(s scanner) (*trip.Destination, error) {
	var d trip.Destination
	var exitDate sql.NullTime
	var reqID, visaType sql.NullString
	err := s.Scan(
		&d.ID,
		&d.TripID,
		&d.Country,
		&d.EntryDate,
		&exitDate,
		&d.TravelPurpose,
		&d.VisaRequired,
		&reqID,
		&visaType,
		&d.SnapshotProcessingMin,
		&d.SnapshotProcessingMax,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if exitDate.Valid {
		d.ExitDate = exitDate.Time
	}
	if reqID.Valid {
		d.VisaRequirementID = common.ID(reqID.String)
	}
	if visaType.Valid {
		d.SnapshotVisaType = visa.Type(visaType.String)
	}
	return &d, nil
}

//Personal.AI order the ending
