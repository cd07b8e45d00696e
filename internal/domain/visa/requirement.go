// Package visa defines the immutable visa-requirement reference data and the
// rule resolution service that looks requirements up by the exact
// (passport, destination, purpose) triple.
package visa

import (
	"context"
	"time"

	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Type enumeration
// ─────────────────────────────────────────────────────────────────────────────

// Type categorizes the kind of entry authorization a destination demands.
type Type string

const (
	// TypeVisaFree means no authorization is needed before travel.
	TypeVisaFree Type = "VISA_FREE"

	// TypeEVisa is an electronic visa issued through an online portal.
	TypeEVisa Type = "E_VISA"

	// TypeVisaOnArrival is granted at the border on entry.
	TypeVisaOnArrival Type = "VISA_ON_ARRIVAL"

	// TypeEmbassyVisa requires an in-person application at an embassy or
	// consulate, including a booked appointment.
	TypeEmbassyVisa Type = "EMBASSY_VISA"

	// TypeTransitVisa covers airside or short-stay transit through a country.
	TypeTransitVisa Type = "TRANSIT_VISA"

	// TypeETA is an electronic travel authorization (ESTA-style pre-clearance).
	TypeETA Type = "ETA"
)

// Valid reports whether t is one of the known visa types.
func (t Type) Valid() bool {
	switch t {
	case TypeVisaFree, TypeEVisa, TypeVisaOnArrival, TypeEmbassyVisa, TypeTransitVisa, TypeETA:
		return true
	}
	return false
}

// RequiresAppointment reports whether this visa type involves an in-person
// embassy appointment before submission.
func (t Type) RequiresAppointment() bool {
	return t == TypeEmbassyVisa
}

// RequiresApplication reports whether any application has to be filed before
// travel.  Visa-free and on-arrival entries still get a travel checklist but
// no submission deadline pressure.
func (t Type) RequiresApplication() bool {
	switch t {
	case TypeVisaFree, TypeVisaOnArrival:
		return false
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Purpose enumeration
// ─────────────────────────────────────────────────────────────────────────────

// Purpose is the declared reason for travel; it is part of the requirement
// lookup key because many countries issue different visa classes per purpose.
type Purpose string

const (
	PurposeTourism  Purpose = "TOURISM"
	PurposeBusiness Purpose = "BUSINESS"
	PurposeTransit  Purpose = "TRANSIT"
	PurposeStudy    Purpose = "STUDY"
	PurposeWork     Purpose = "WORK"
)

// Valid reports whether p is one of the known travel purposes.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeTourism, PurposeBusiness, PurposeTransit, PurposeStudy, PurposeWork:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Requirement entity
// ─────────────────────────────────────────────────────────────────────────────

// Requirement is the immutable reference-data record describing what a
// passport holder needs to enter a destination for a given purpose.
// The engine only ever reads requirements; curation happens out of band.
type Requirement struct {
	ID common.ID `json:"id"`

	PassportCountry    common.CountryCode `json:"passport_country"`
	DestinationCountry common.CountryCode `json:"destination_country"`
	TravelPurpose      Purpose            `json:"travel_purpose"`

	VisaType Type `json:"visa_type"`

	// ProcessingTimeMinDays / ProcessingTimeMaxDays are the government-stated
	// processing bounds in business days.  Zero max means the processing time
	// is unknown for this requirement.
	ProcessingTimeMinDays int `json:"processing_time_min_days"`
	ProcessingTimeMaxDays int `json:"processing_time_max_days"`

	AllowedStayDays int `json:"allowed_stay_days"`

	// RegionalBloc records a shared-travel-area membership (EU, ECOWAS, GCC,
	// ...).  It is stored with the requirement but deliberately not consulted
	// during resolution; bloc exemptions are a deferred feature.
	RegionalBloc string `json:"regional_bloc,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// ProcessingBounds is the business-day processing window handed to the
// timeline calculator.
type ProcessingBounds struct {
	MinBusinessDays int `json:"min_business_days"`
	MaxBusinessDays int `json:"max_business_days"`
}

// Bounds returns the requirement's processing window and whether it is
// resolvable.  A requirement without a stated maximum cannot anchor any
// deadline arithmetic and yields ok=false.
func (r *Requirement) Bounds() (bounds ProcessingBounds, ok bool) {
	if r == nil || r.ProcessingTimeMaxDays <= 0 {
		return ProcessingBounds{}, false
	}
	return ProcessingBounds{
		MinBusinessDays: r.ProcessingTimeMinDays,
		MaxBusinessDays: r.ProcessingTimeMaxDays,
	}, true
}

// Validate checks the structural invariants of a requirement record.
func (r *Requirement) Validate() error {
	if err := r.PassportCountry.Validate(); err != nil {
		return errors.InvalidParam("passport country: " + err.Error())
	}
	if err := r.DestinationCountry.Validate(); err != nil {
		return errors.InvalidParam("destination country: " + err.Error())
	}
	if !r.TravelPurpose.Valid() {
		return errors.InvalidParam("unknown travel purpose " + string(r.TravelPurpose))
	}
	if !r.VisaType.Valid() {
		return errors.New(errors.ErrCodeVisaTypeInvalid, "unknown visa type "+string(r.VisaType))
	}
	if r.ProcessingTimeMinDays < 0 || r.ProcessingTimeMaxDays < 0 {
		return errors.InvalidParam("processing time must not be negative")
	}
	if r.ProcessingTimeMaxDays > 0 && r.ProcessingTimeMinDays > r.ProcessingTimeMaxDays {
		return errors.InvalidParam("processing time min exceeds max")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Repository port
// ─────────────────────────────────────────────────────────────────────────────

// Repository is the persistence port for requirement reference data.
// Implementations return an ErrCodeRequirementNotFound error when no record
// matches; the resolver translates that into a nil steady-state result.
type Repository interface {
	// FindByTriple performs the exact-key lookup.
	FindByTriple(ctx context.Context, passport, destination common.CountryCode, purpose Purpose) (*Requirement, error)

	// FindByID loads a requirement by primary key.
	FindByID(ctx context.Context, id common.ID) (*Requirement, error)
}

//Personal.AI order the ending
