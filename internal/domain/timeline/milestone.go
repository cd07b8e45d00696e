package timeline

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Milestone types
// ─────────────────────────────────────────────────────────────────────────────

// MilestoneType identifies one step of the application plan.
type MilestoneType string

const (
	MilestoneStartApplication  MilestoneType = "START_APPLICATION"
	MilestoneCompleteDocuments MilestoneType = "COMPLETE_DOCUMENTS"
	MilestoneBookAppointment   MilestoneType = "BOOK_APPOINTMENT"
	MilestoneSubmitApplication MilestoneType = "SUBMIT_APPLICATION"
	MilestoneExpectedDecision  MilestoneType = "EXPECTED_DECISION"
	MilestonePreArrivalForm    MilestoneType = "PRE_ARRIVAL_FORM"
	MilestoneTravelDate        MilestoneType = "TRAVEL_DATE"
)

// milestoneOrder is the canonical sequence position per type.  Order is the
// fixed index in this table, never re-derived from due dates, so that filtered
// sequences keep stable positions.
var milestoneOrder = map[MilestoneType]int{
	MilestoneStartApplication:  1,
	MilestoneCompleteDocuments: 2,
	MilestoneBookAppointment:   3,
	MilestoneSubmitApplication: 4,
	MilestoneExpectedDecision:  5,
	MilestonePreArrivalForm:    6,
	MilestoneTravelDate:        7,
}

// Order returns the canonical sequence position of the milestone type.
func (t MilestoneType) Order() int { return milestoneOrder[t] }

// Milestone is one dated step of the plan.
type Milestone struct {
	Type        MilestoneType `json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	DueDate     time.Time     `json:"due_date"`
	Order       int           `json:"order"`
	Reminders   []Reminder    `json:"reminders,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Generator
// ─────────────────────────────────────────────────────────────────────────────

// MilestoneGenerator derives the milestone sequence from a computed timeline.
type MilestoneGenerator struct {
	policy Policy
}

// NewMilestoneGenerator constructs a generator over the given policy.
func NewMilestoneGenerator(policy Policy) *MilestoneGenerator {
	return &MilestoneGenerator{policy: policy}
}

// docsLeadDays positions document completion and appointment booking ahead of
// the latest submission date.
const docsLeadDays = 7

// Generate produces the milestone sequence for a timeline.  Document
// completion and appointment booking only appear for visa types that involve
// an embassy appointment; the remaining milestones keep their canonical order
// positions.
func (g *MilestoneGenerator) Generate(tl *Timeline, prefs Preferences) []Milestone {
	reminderDays := prefs.ReminderDaysBefore
	if reminderDays <= 0 {
		reminderDays = g.policy.DefaultReminderDaysBefore
	}
	reminder := Reminder{DaysBefore: reminderDays, Channel: ChannelPush}

	docsDue := tl.LatestSubmissionDate.AddDate(0, 0, -docsLeadDays)

	milestones := make([]Milestone, 0, len(milestoneOrder))
	add := func(t MilestoneType, name, description string, due time.Time) {
		// Each milestone owns its reminder slice; sharing one backing array
		// would alias later per-milestone edits across the whole sequence.
		milestones = append(milestones, Milestone{
			Type:        t,
			Name:        name,
			Description: description,
			DueDate:     due,
			Order:       t.Order(),
			Reminders:   []Reminder{reminder},
		})
	}

	add(MilestoneStartApplication, "Start application",
		"Begin the visa application to leave time for document preparation", tl.RecommendedStartDate)

	if tl.VisaType.RequiresAppointment() {
		add(MilestoneCompleteDocuments, "Complete documents",
			"Have every required document gathered and translated", docsDue)
		add(MilestoneBookAppointment, "Book appointment",
			"Secure an embassy or visa center appointment slot", docsDue)
	}

	add(MilestoneSubmitApplication, "Submit application",
		"Last day to submit and still expect a decision before travel", tl.LatestSubmissionDate)
	add(MilestoneExpectedDecision, "Expected decision",
		"Worst-case decision date if the application goes in today", tl.ExpectedDecisionDate)
	add(MilestonePreArrivalForm, "Complete pre-arrival forms",
		"File arrival cards, health declarations and similar entry forms", tl.PreArrivalDeadline)
	add(MilestoneTravelDate, "Travel date",
		"Departure", tl.TravelDate)

	return milestones
}

//Personal.AI order the ending
