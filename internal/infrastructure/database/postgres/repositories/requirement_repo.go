package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

type postgresRequirementRepo struct {
	baseRepo
}

// NewPostgresRequirementRepo builds the requirement reference-data repository.
func NewPostgresRequirementRepo(conn *postgres.Connection, log logging.Logger) visa.Repository {
	return &postgresRequirementRepo{
		baseRepo: baseRepo{conn: conn, log: log},
	}
}

const requirementColumns = `
	id, passport_country, destination_country, travel_purpose, visa_type,
	processing_time_min_days, processing_time_max_days, allowed_stay_days,
	regional_bloc, updated_at
`

func (r *postgresRequirementRepo) FindByTriple(ctx context.Context, passport, destination common.CountryCode, purpose visa.Purpose) (*visa.Requirement, error) {
	query := `SELECT ` + requirementColumns + `
		FROM visa_requirements
		WHERE passport_country = $1 AND destination_country = $2 AND travel_purpose = $3`

	row := r.executor().QueryRowContext(ctx, query, string(passport), string(destination), string(purpose))
	req, err := scanRequirement(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeRequirementNotFound, "no requirement for this corridor")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "requirement lookup failed")
	}
	return req, nil
}

func (r *postgresRequirementRepo) FindByID(ctx context.Context, id common.ID) (*visa.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM visa_requirements WHERE id = $1`

	row := r.executor().QueryRowContext(ctx, query, string(id))
	req, err := scanRequirement(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeRequirementNotFound, "requirement not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "requirement lookup failed")
	}
	return req, nil
}

func scanRequirement(s scanner) (*visa.Requirement, error) {
	var req visa.Requirement
	var bloc sql.NullString
	err := s.Scan(
		&req.ID,
		&req.PassportCountry,
		&req.DestinationCountry,
		&req.TravelPurpose,
		&req.VisaType,
		&req.ProcessingTimeMinDays,
		&req.ProcessingTimeMaxDays,
		&req.AllowedStayDays,
		&bloc,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bloc.Valid {
		req.RegionalBloc = bloc.String
	}
	return &req, nil
}

//Personal.AI order the ending
