package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/pkg/clock"
)

func buildTestTimeline(t *testing.T, visaType visa.Type) *Timeline {
	t.Helper()
	calc := NewCalculator(DefaultPolicy(), clock.Fixed(testToday))
	tl, err := calc.Calculate(visa.ProcessingBounds{MinBusinessDays: 5, MaxBusinessDays: 15}, day(90), "DE", visaType)
	require.NoError(t, err)
	return tl
}

func milestoneTypes(ms []Milestone) []MilestoneType {
	out := make([]MilestoneType, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Type)
	}
	return out
}

func TestEmbassyTimelineGetsFullMilestoneSet(t *testing.T) {
	gen := NewMilestoneGenerator(DefaultPolicy())
	tl := buildTestTimeline(t, visa.TypeEmbassyVisa)

	ms := gen.Generate(tl, Preferences{})
	assert.Equal(t, []MilestoneType{
		MilestoneStartApplication,
		MilestoneCompleteDocuments,
		MilestoneBookAppointment,
		MilestoneSubmitApplication,
		MilestoneExpectedDecision,
		MilestonePreArrivalForm,
		MilestoneTravelDate,
	}, milestoneTypes(ms))

	docsDue := tl.LatestSubmissionDate.AddDate(0, 0, -7)
	assert.Equal(t, docsDue, ms[1].DueDate)
	assert.Equal(t, docsDue, ms[2].DueDate)
	assert.Equal(t, tl.RecommendedStartDate, ms[0].DueDate)
	assert.Equal(t, tl.LatestSubmissionDate, ms[3].DueDate)
	assert.Equal(t, tl.TravelDate, ms[6].DueDate)
}

func TestNonEmbassyTimelineSkipsAppointmentMilestones(t *testing.T) {
	gen := NewMilestoneGenerator(DefaultPolicy())
	tl := buildTestTimeline(t, visa.TypeEVisa)

	ms := gen.Generate(tl, Preferences{})
	assert.Equal(t, []MilestoneType{
		MilestoneStartApplication,
		MilestoneSubmitApplication,
		MilestoneExpectedDecision,
		MilestonePreArrivalForm,
		MilestoneTravelDate,
	}, milestoneTypes(ms))
}

func TestMilestoneOrderKeepsCanonicalGaps(t *testing.T) {
	gen := NewMilestoneGenerator(DefaultPolicy())
	tl := buildTestTimeline(t, visa.TypeEVisa)

	// Filtering documents and appointment must not renumber the survivors.
	ms := gen.Generate(tl, Preferences{})
	orders := make([]int, 0, len(ms))
	for _, m := range ms {
		orders = append(orders, m.Order)
	}
	assert.Equal(t, []int{1, 4, 5, 6, 7}, orders)
}

func TestReminderPreferenceOverridesPolicyDefault(t *testing.T) {
	gen := NewMilestoneGenerator(DefaultPolicy())
	tl := buildTestTimeline(t, visa.TypeEmbassyVisa)

	ms := gen.Generate(tl, Preferences{ReminderDaysBefore: 10})
	require.NotEmpty(t, ms)
	for _, m := range ms {
		require.Len(t, m.Reminders, 1)
		assert.Equal(t, 10, m.Reminders[0].DaysBefore)
		assert.Equal(t, ChannelPush, m.Reminders[0].Channel)
	}

	// Zero preference falls back to the policy default.
	ms = gen.Generate(tl, Preferences{})
	assert.Equal(t, 3, ms[0].Reminders[0].DaysBefore)
}

func TestMilestoneRemindersAreIndependent(t *testing.T) {
	gen := NewMilestoneGenerator(DefaultPolicy())
	tl := buildTestTimeline(t, visa.TypeEmbassyVisa)

	ms := gen.Generate(tl, Preferences{})
	require.GreaterOrEqual(t, len(ms), 2)

	// Editing one milestone's reminder must not leak into the others.
	ms[0].Reminders[0].DaysBefore = 99
	for _, m := range ms[1:] {
		assert.Equal(t, 3, m.Reminders[0].DaysBefore)
	}
}

//Personal.AI order the ending
