// Package trip defines the trip-destination entity the feasibility engine
// evaluates.  Trip CRUD itself lives in an upstream service; this engine only
// reads destinations through the Repository port.
package trip

import (
	"context"
	"time"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// Destination is one leg of a planned trip.
//
// The visa snapshot fields are captured when the destination is created and
// are never re-resolved afterwards: a traveler's plan is judged against the
// rules that were in force when they committed to the leg.  Recomputing a
// timeline re-reads the snapshot, not the reference table.
type Destination struct {
	ID     common.ID `json:"id"`
	TripID common.ID `json:"trip_id"`

	Country       common.CountryCode `json:"country"`
	EntryDate     time.Time          `json:"entry_date"`
	ExitDate      time.Time          `json:"exit_date"`
	TravelPurpose visa.Purpose       `json:"travel_purpose"`

	// VisaRequired is the curator-facing flag; false short-circuits the
	// feasibility check to FEASIBLE.
	VisaRequired bool `json:"visa_required"`

	// Snapshot of the resolved requirement at creation time.
	VisaRequirementID     common.ID `json:"visa_requirement_id,omitempty"`
	SnapshotVisaType      visa.Type `json:"snapshot_visa_type,omitempty"`
	SnapshotProcessingMin int       `json:"snapshot_processing_min_days"`
	SnapshotProcessingMax int       `json:"snapshot_processing_max_days"`

	CreatedAt time.Time `json:"created_at"`
}

// SnapshotBounds returns the processing window captured at creation time and
// whether it is resolvable.
func (d *Destination) SnapshotBounds() (visa.ProcessingBounds, bool) {
	if d == nil || d.SnapshotProcessingMax <= 0 {
		return visa.ProcessingBounds{}, false
	}
	return visa.ProcessingBounds{
		MinBusinessDays: d.SnapshotProcessingMin,
		MaxBusinessDays: d.SnapshotProcessingMax,
	}, true
}

// Validate checks the structural invariants of a destination.
func (d *Destination) Validate() error {
	if err := d.Country.Validate(); err != nil {
		return errors.InvalidParam("destination country: " + err.Error())
	}
	if d.EntryDate.IsZero() {
		return errors.New(errors.ErrCodeTravelDateInvalid, "entry date must be set")
	}
	if !d.ExitDate.IsZero() && d.ExitDate.Before(d.EntryDate) {
		return errors.New(errors.ErrCodeTravelDateInvalid, "exit date precedes entry date")
	}
	if !d.TravelPurpose.Valid() {
		return errors.InvalidParam("unknown travel purpose " + string(d.TravelPurpose))
	}
	return nil
}

// Repository is the persistence port for trip destinations.
// Implementations return ErrCodeDestinationNotFound / ErrCodeTripNotFound
// coded errors when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id common.ID) (*Destination, error)
	FindByTripID(ctx context.Context, tripID common.ID) ([]*Destination, error)
	Save(ctx context.Context, destination *Destination) error
}

//Personal.AI order the ending
