package visaapp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/turtacn/VisaPath-Intelligence/internal/domain/application"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/trip"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/clock"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

var appToday = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeAppRepo struct {
	apps map[common.ID]*app.Application
	// conflictWinner, when set, lands in the store during the next Create call,
	// which then fails with a conflict.  This simulates a concurrent insert
	// slipping in between the dedupe probe and our own insert.
	conflictWinner  *app.Application
	createErr       error
	updateConflicts int
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[common.ID]*app.Application)}
}

func cloneApp(a *app.Application) *app.Application {
	c := *a
	return &c
}

func (r *fakeAppRepo) Create(_ context.Context, a *app.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.conflictWinner != nil {
		r.apps[r.conflictWinner.ID] = cloneApp(r.conflictWinner)
		r.conflictWinner = nil
		return errors.Conflict("active application already exists")
	}
	r.apps[a.ID] = cloneApp(a)
	return nil
}

func (r *fakeAppRepo) FindByID(_ context.Context, id common.ID) (*app.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeApplicationNotFound, "application not found")
	}
	return cloneApp(a), nil
}

func (r *fakeAppRepo) FindActiveByUserAndDestination(_ context.Context, userID common.UserID, destinationID common.ID) (*app.Application, error) {
	for _, a := range r.apps {
		if a.UserID == userID && a.DestinationID == destinationID && !a.Status.Terminal() {
			return cloneApp(a), nil
		}
	}
	return nil, errors.New(errors.ErrCodeApplicationNotFound, "no active application")
}

func (r *fakeAppRepo) ListByUser(_ context.Context, userID common.UserID, _ common.Pagination) ([]*app.Application, error) {
	var out []*app.Application
	for _, a := range r.apps {
		if a.UserID == userID {
			out = append(out, cloneApp(a))
		}
	}
	return out, nil
}

func (r *fakeAppRepo) UpdateOptimistic(_ context.Context, a *app.Application, expectedVersion int) error {
	if r.updateConflicts > 0 {
		r.updateConflicts--
		return errors.VersionConflict("application was modified concurrently")
	}
	stored, ok := r.apps[a.ID]
	if !ok {
		return errors.New(errors.ErrCodeApplicationNotFound, "application not found")
	}
	if stored.Version != expectedVersion {
		return errors.VersionConflict("application was modified concurrently")
	}
	a.Version = expectedVersion + 1
	r.apps[a.ID] = cloneApp(a)
	return nil
}

type fakeMilestoneRepo struct {
	byDestination map[common.ID][]*app.StoredMilestone
	replaceCalls  int
	replaceErr    error
}

func newFakeMilestoneRepo() *fakeMilestoneRepo {
	return &fakeMilestoneRepo{byDestination: make(map[common.ID][]*app.StoredMilestone)}
}

func (r *fakeMilestoneRepo) ReplaceForDestination(_ context.Context, destinationID common.ID, rows []*app.StoredMilestone) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaceCalls++
	r.byDestination[destinationID] = rows
	return nil
}

func (r *fakeMilestoneRepo) ListByDestination(_ context.Context, destinationID common.ID) ([]*app.StoredMilestone, error) {
	return r.byDestination[destinationID], nil
}

func (r *fakeMilestoneRepo) ListUpcoming(_ context.Context, _ common.UserID, from time.Time, withinDays int) ([]*app.StoredMilestone, error) {
	limit := from.AddDate(0, 0, withinDays)
	var out []*app.StoredMilestone
	for _, rows := range r.byDestination {
		for _, m := range rows {
			if !m.DueDate.Before(from) && !m.DueDate.After(limit) {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

type recordingNotifier struct {
	events []StatusEvent
	fail   bool
}

func (n *recordingNotifier) NotifyStatusChange(_ context.Context, event StatusEvent) error {
	if n.fail {
		return errors.New(errors.ErrCodeExternalService, "broker unavailable")
	}
	n.events = append(n.events, event)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────────────────────────────────────

type fixture struct {
	svc        *Service
	apps       *fakeAppRepo
	milestones *fakeMilestoneRepo
	trips      *fakeTripRepo
	notifier   *recordingNotifier
}

type fakeTripRepo struct {
	byID map[common.ID]*trip.Destination
}

func (r *fakeTripRepo) FindByID(_ context.Context, id common.ID) (*trip.Destination, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDestinationNotFound, "destination not found")
	}
	return d, nil
}

func (r *fakeTripRepo) FindByTripID(_ context.Context, tripID common.ID) ([]*trip.Destination, error) {
	var out []*trip.Destination
	for _, d := range r.byID {
		if d.TripID == tripID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) Save(_ context.Context, d *trip.Destination) error {
	r.byID[d.ID] = d
	return nil
}

func newFixture() *fixture {
	f := &fixture{
		apps:       newFakeAppRepo(),
		milestones: newFakeMilestoneRepo(),
		trips:      &fakeTripRepo{byID: make(map[common.ID]*trip.Destination)},
		notifier:   &recordingNotifier{},
	}
	clk := clock.Fixed(appToday)
	f.trips.byID["dest-1"] = &trip.Destination{
		ID:                    "dest-1",
		TripID:                "trip-1",
		Country:               "DE",
		EntryDate:             appToday.AddDate(0, 0, 90),
		TravelPurpose:         visa.PurposeTourism,
		VisaRequired:          true,
		SnapshotVisaType:      visa.TypeEmbassyVisa,
		SnapshotProcessingMin: 5,
		SnapshotProcessingMax: 15,
	}
	f.svc = NewService(f.apps, f.milestones, f.trips,
		timeline.NewService(timeline.DefaultPolicy(), clk), f.notifier, clk, logging.NewNopLogger())
	return f
}

func (f *fixture) mustCreate(t *testing.T) *app.Application {
	t.Helper()
	a, err := f.svc.Create(context.Background(), "user-1", "dest-1")
	require.NoError(t, err)
	return a
}

// ─────────────────────────────────────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────────────────────────────────────

func TestCreatePersistsApplicationAndMilestones(t *testing.T) {
	f := newFixture()

	a := f.mustCreate(t)
	assert.Equal(t, app.StatusNotStarted, a.Status)
	assert.Equal(t, 1, a.Version)
	require.NotNil(t, a.ExpectedDecisionDate)

	// 15 business days stretch to 21 calendar days; embassy buffer 10; the
	// planning anchors land on the row itself, not only on milestone rows.
	entry := clock.Midnight(appToday).AddDate(0, 0, 90)
	require.NotNil(t, a.LatestSubmissionDate)
	require.NotNil(t, a.RecommendedSubmissionDate)
	assert.Equal(t, entry.AddDate(0, 0, -31), *a.LatestSubmissionDate)
	assert.Equal(t, entry.AddDate(0, 0, -45), *a.RecommendedSubmissionDate)

	rows, err := f.svc.Milestones(context.Background(), "dest-1")
	require.NoError(t, err)
	assert.Len(t, rows, 7, "an embassy corridor gets the full milestone set")
}

func TestCreateReturnsExistingActiveApplication(t *testing.T) {
	f := newFixture()

	first := f.mustCreate(t)
	second := f.mustCreate(t)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.apps.apps, 1)
}

func TestCreateAfterTerminalStartsFresh(t *testing.T) {
	f := newFixture()

	first := f.mustCreate(t)
	_, err := f.svc.Cancel(context.Background(), first.ID)
	require.NoError(t, err)

	second := f.mustCreate(t)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateLosesInsertRaceToConcurrentWinner(t *testing.T) {
	f := newFixture()

	winner := app.New("user-1", "dest-1", appToday)
	f.apps.conflictWinner = winner

	got, err := f.svc.Create(context.Background(), "user-1", "dest-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, winner.ID, got.ID, "the concurrent winner's row is returned")
	assert.Len(t, f.apps.apps, 1)
}

func TestCreateWithoutUserID(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), "", "dest-1")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestCreateUnknownDestination(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), "user-1", "ghost")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDestinationNotFound))
}

func TestCreateSurvivesUncomputablePlan(t *testing.T) {
	f := newFixture()
	f.trips.byID["dest-1"].SnapshotProcessingMax = 0

	a := f.mustCreate(t)
	assert.Nil(t, a.ExpectedDecisionDate)
	assert.Nil(t, a.LatestSubmissionDate)
	assert.Zero(t, f.milestones.replaceCalls)
}

func TestCreateInsertFailureLeavesMilestonesUntouched(t *testing.T) {
	f := newFixture()
	f.apps.createErr = errors.New(errors.ErrCodeDatabaseError, "insert failed")

	_, err := f.svc.Create(context.Background(), "user-1", "dest-1")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatabaseError))
	assert.Zero(t, f.milestones.replaceCalls, "a failed insert must not swap the milestone set")
}

func TestCreateSurvivesMilestoneWriteFailure(t *testing.T) {
	f := newFixture()
	f.milestones.replaceErr = errors.New(errors.ErrCodeDatabaseError, "replace failed")

	a := f.mustCreate(t)
	assert.Len(t, f.apps.apps, 1, "the application row stays committed")
	require.NotNil(t, a.ExpectedDecisionDate)
}

// ─────────────────────────────────────────────────────────────────────────────
// Transition
// ─────────────────────────────────────────────────────────────────────────────

func TestTransitionCommitsAndNotifies(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)

	got, err := f.svc.Transition(context.Background(), a.ID, app.TransitionInput{
		Target: app.StatusDocumentsInProgress,
	})
	require.NoError(t, err)

	assert.Equal(t, app.StatusDocumentsInProgress, got.Status)
	assert.Equal(t, 2, got.Version)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, app.StatusNotStarted, f.notifier.events[0].From)
	assert.Equal(t, app.StatusDocumentsInProgress, f.notifier.events[0].To)
}

func TestTransitionSameStatusSkipsWriteAndNotification(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)

	got, err := f.svc.Transition(context.Background(), a.ID, app.TransitionInput{
		Target: app.StatusNotStarted,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Version, "a no-op must not bump the version")
	assert.Empty(t, f.notifier.events)
}

func TestTransitionRetriesThroughVersionConflict(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)
	f.apps.updateConflicts = 1

	got, err := f.svc.Transition(context.Background(), a.ID, app.TransitionInput{
		Target: app.StatusDocumentsInProgress,
	})
	require.NoError(t, err)

	assert.Equal(t, app.StatusDocumentsInProgress, got.Status)
	assert.Len(t, f.notifier.events, 1, "only the committed attempt notifies")
}

func TestTransitionGivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)
	f.apps.updateConflicts = transitionRetries

	_, err := f.svc.Transition(context.Background(), a.ID, app.TransitionInput{
		Target: app.StatusDocumentsInProgress,
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeVersionConflict))
	assert.Empty(t, f.notifier.events)

	stored, err := f.svc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, app.StatusNotStarted, stored.Status, "abandoned transitions leave the row untouched")
}

func TestTransitionInvalidTargetDoesNotRetry(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)

	_, err := f.svc.Transition(context.Background(), a.ID, app.TransitionInput{
		Target: app.StatusApproved,
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidTransition))
}

func TestTransitionToSubmittedReprojectsDecisionDate(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)
	planned := *a.ExpectedDecisionDate

	steps := []app.TransitionInput{
		{Target: app.StatusDocumentsInProgress},
		{Target: app.StatusAppointmentBooked, AppointmentDate: timePtr(appToday.AddDate(0, 0, 30))},
		{Target: app.StatusSubmitted, SubmissionDate: timePtr(appToday.AddDate(0, 0, 40))},
	}
	var got *app.Application
	var err error
	for _, in := range steps {
		got, err = f.svc.Transition(context.Background(), a.ID, in)
		require.NoError(t, err)
	}

	require.NotNil(t, got.ExpectedDecisionDate)
	assert.NotEqual(t, planned, *got.ExpectedDecisionDate)
	// 15 business days stretch to 21 calendar days from the actual submission.
	assert.Equal(t, appToday.AddDate(0, 0, 40+21).Truncate(24*time.Hour),
		got.ExpectedDecisionDate.Truncate(24*time.Hour))
}

func TestTransitionNotifierFailureDoesNotRollBack(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)
	f.notifier.fail = true

	got, err := f.svc.Transition(context.Background(), a.ID, app.TransitionInput{
		Target: app.StatusDocumentsInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, app.StatusDocumentsInProgress, got.Status)

	stored, err := f.svc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, app.StatusDocumentsInProgress, stored.Status)
}

func TestCancelNotifiesTerminalChange(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t)

	got, err := f.svc.Cancel(context.Background(), a.ID)
	require.NoError(t, err)

	assert.Equal(t, app.StatusCancelled, got.Status)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, app.StatusCancelled, f.notifier.events[0].To)
}

// ─────────────────────────────────────────────────────────────────────────────
// Milestones
// ─────────────────────────────────────────────────────────────────────────────

func TestRecomputeMilestonesReplacesRows(t *testing.T) {
	f := newFixture()
	f.mustCreate(t)
	require.Equal(t, 1, f.milestones.replaceCalls)

	rows, err := f.svc.RecomputeMilestones(context.Background(), "dest-1", timeline.Preferences{ReminderDaysBefore: 9})
	require.NoError(t, err)

	assert.Equal(t, 2, f.milestones.replaceCalls)
	require.NotEmpty(t, rows)
	assert.Equal(t, 9, rows[0].Reminders[0].DaysBefore)
}

func TestRecomputeMilestonesWithoutProcessingTime(t *testing.T) {
	f := newFixture()
	f.trips.byID["dest-1"].SnapshotProcessingMax = 0

	_, err := f.svc.RecomputeMilestones(context.Background(), "dest-1", timeline.Preferences{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeProcessingTimeUnset))
}

func TestUpcomingMilestonesWindowValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpcomingMilestones(context.Background(), "user-1", 0)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	_, err = f.svc.UpcomingMilestones(context.Background(), "user-1", -3)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestUpcomingMilestonesFiltersByDueDate(t *testing.T) {
	f := newFixture()
	f.mustCreate(t)

	soon, err := f.svc.UpcomingMilestones(context.Background(), "user-1", 365)
	require.NoError(t, err)
	assert.NotEmpty(t, soon)

	narrow, err := f.svc.UpcomingMilestones(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.Less(t, len(narrow), len(soon))
}

func TestListByUserValidatesPagination(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ListByUser(context.Background(), "user-1", common.Pagination{Page: 0, PageSize: 20})
	assert.Error(t, err)
}

func timePtr(t time.Time) *time.Time { return &t }

//Personal.AI order the ending
