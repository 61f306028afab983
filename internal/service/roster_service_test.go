package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
)

type rosterRepoMock struct {
	stored  []models.Teacher
	saves   int
	saveErr error
}

func (m *rosterRepoMock) Load(ctx context.Context) []models.Teacher {
	out := make([]models.Teacher, len(m.stored))
	for i, t := range m.stored {
		out[i] = t.Clone()
	}
	return out
}

func (m *rosterRepoMock) Save(ctx context.Context, teachers []models.Teacher) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = make([]models.Teacher, len(teachers))
	for i, t := range teachers {
		m.stored[i] = t.Clone()
	}
	return nil
}

type rosterFixture struct {
	svc   *RosterService
	repo  *rosterRepoMock
	notes *NotificationService
	clock *fakeClock
}

func newRosterFixture(t *testing.T, existing ...models.Teacher) rosterFixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)}
	repo := &rosterRepoMock{stored: existing}
	notes := NewNotificationService(time.Minute, clock.Now)
	seq := 0
	svc := NewRosterService(repo, nil, notes, NewMetricsService(), nil, RosterOptions{
		PageSize: 2,
		Now:      clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
	svc.Load(context.Background())
	return rosterFixture{svc: svc, repo: repo, notes: notes, clock: clock}
}

func seedTeacher(id, name string) models.Teacher {
	return models.Teacher{
		ID: id, Name: name, Role: "Tutor", Email: id + "@x.io", Phone: "12345",
		Address: "Main St", Status: models.TeacherStatusActive,
		Qualifications: []models.Qualification{},
	}
}

func lastNotification(t *testing.T, svc *NotificationService) models.Notification {
	t.Helper()
	items := svc.List()
	require.NotEmpty(t, items)
	return items[len(items)-1]
}

func TestRosterAddTeacher(t *testing.T) {
	fx := newRosterFixture(t)

	snap, err := fx.svc.AddTeacher(context.Background(), validDraft())
	require.NoError(t, err)
	require.Len(t, snap.Teachers, 1)

	added := snap.Teachers[0]
	assert.Equal(t, "Ana", added.Name)
	assert.Equal(t, snap.SelectedID, added.ID)
	assert.Empty(t, added.Qualifications)
	require.NotNil(t, added.Schedule)
	assert.NotEqual(t, added.ID, added.Schedule.ID)
	assert.Equal(t, added.ID, added.Schedule.TeacherID)
	assert.Equal(t, "2026-10-12", added.Schedule.WeekStartDate)
	assert.Empty(t, added.Schedule.Slots)

	assert.Equal(t, 1, fx.repo.saves)
	require.Len(t, fx.repo.stored, 1)
	note := lastNotification(t, fx.notes)
	assert.Equal(t, models.NotificationSuccess, note.Type)
	assert.Equal(t, "Teacher added successfully.", note.Message)
}

func TestRosterAddTeacherRejectsInvalidDraft(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Budi"))
	draft := validDraft()
	draft.Email = "bad"

	snap, err := fx.svc.AddTeacher(context.Background(), draft)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Invalid email", appErr.Details["email"])

	assert.Len(t, snap.Teachers, 1)
	assert.Equal(t, 0, fx.repo.saves)
	assert.Empty(t, fx.notes.List())
}

func TestRosterLoadSelectsFirst(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"), seedTeacher("t2", "Budi"))

	selected, ok := fx.svc.Selected()
	require.True(t, ok)
	assert.Equal(t, "t1", selected.ID)
}

func TestRosterDeleteSelectedMovesSelection(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"), seedTeacher("t2", "Budi"), seedTeacher("t3", "Citra"))
	_, err := fx.svc.Select("t2")
	require.NoError(t, err)

	snap, err := fx.svc.DeleteTeacher(context.Background(), "t2")
	require.NoError(t, err)
	assert.Len(t, snap.Teachers, 2)
	assert.Equal(t, "t1", snap.SelectedID)
	assert.Equal(t, "Teacher deleted successfully.", lastNotification(t, fx.notes).Message)
}

func TestRosterDeleteOtherKeepsSelection(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"), seedTeacher("t2", "Budi"))
	_, err := fx.svc.Select("t2")
	require.NoError(t, err)

	snap, err := fx.svc.DeleteTeacher(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t2", snap.SelectedID)
}

func TestRosterDeleteLastClearsSelection(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	snap, err := fx.svc.DeleteTeacher(context.Background(), "t1")
	require.NoError(t, err)
	assert.Empty(t, snap.Teachers)
	assert.Empty(t, snap.SelectedID)
	_, ok := fx.svc.Selected()
	assert.False(t, ok)
}

func TestRosterDeleteUnknown(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	_, err := fx.svc.DeleteTeacher(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, 0, fx.repo.saves)
}

func TestRosterWriteFailureLeavesStateUnchanged(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))
	fx.repo.saveErr = errors.New("quota exceeded")

	snap, err := fx.svc.AddTeacher(context.Background(), validDraft())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrPersistence)
	assert.Len(t, snap.Teachers, 1)
	assert.Equal(t, "t1", snap.SelectedID)
	assert.Len(t, fx.svc.Snapshot().Teachers, 1)

	note := lastNotification(t, fx.notes)
	assert.Equal(t, models.NotificationError, note.Type)
	assert.Equal(t, "Failed to save changes.", note.Message)
}

func TestRosterUpdateTeacherKeepsOwnedDocuments(t *testing.T) {
	seed := seedTeacher("t1", "Ana")
	seed.Qualifications = []models.Qualification{{ID: "q1", Name: "Math", Rate: 20, Currency: "USD", Type: models.QualificationPrivate, IsActive: true}}
	seed.Schedule = &models.Schedule{ID: "s1", TeacherID: "t1", WeekStartDate: "2026-10-05", Slots: []models.TimeSlot{}}
	fx := newRosterFixture(t, seed, seedTeacher("t2", "Budi"))

	draft := validDraft()
	draft.Name = "Ana Maria"
	snap, err := fx.svc.UpdateTeacher(context.Background(), "t1", draft)
	require.NoError(t, err)

	got, ok := snap.Selected()
	require.True(t, ok)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Len(t, got.Qualifications, 1)
	require.NotNil(t, got.Schedule)
	assert.Equal(t, "s1", got.Schedule.ID)
	assert.Equal(t, "Teacher updated successfully.", lastNotification(t, fx.notes).Message)
}

func TestRosterListSearchAndPaging(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"), seedTeacher("t2", "Budi"), seedTeacher("t3", "Anabel"))

	items, page := fx.svc.List(models.TeacherFilter{Search: " ANA "})
	assert.Len(t, items, 2)
	assert.Equal(t, 2, page.TotalCount)

	items, page = fx.svc.List(models.TeacherFilter{Page: 2})
	require.Len(t, items, 1)
	assert.Equal(t, "t3", items[0].ID)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.PageSize)

	items, _ = fx.svc.List(models.TeacherFilter{Page: 5})
	assert.Empty(t, items)
}

func TestRosterListHugePageIsEmpty(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	var (
		items []models.Teacher
		page  *models.Pagination
	)
	require.NotPanics(t, func() {
		items, page = fx.svc.List(models.TeacherFilter{Page: math.MaxInt64, PageSize: 10})
	})
	assert.Empty(t, items)
	assert.Equal(t, 1, page.TotalCount)

	require.NotPanics(t, func() {
		items, _ = fx.svc.List(models.TeacherFilter{Page: 1, PageSize: math.MaxInt64})
	})
	assert.Len(t, items, 1)
}

func TestRosterQualificationLifecycle(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))
	ctx := context.Background()

	_, added, err := fx.svc.AddQualification(ctx, "t1", dto.QualificationDraft{Name: "  ", Rate: 10})
	require.NoError(t, err)
	assert.False(t, added)
	_, added, err = fx.svc.AddQualification(ctx, "t1", dto.QualificationDraft{Name: "Math", Rate: 0})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, fx.repo.saves)

	snap, added, err := fx.svc.AddQualification(ctx, "t1", dto.QualificationDraft{Name: "Math", Rate: 25, Type: "weird"})
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, snap.Teachers[0].Qualifications, 1)
	q := snap.Teachers[0].Qualifications[0]
	assert.Equal(t, "USD", q.Currency)
	assert.Equal(t, models.QualificationPrivate, q.Type)
	assert.True(t, q.IsActive)
	assert.NotEmpty(t, q.ID)

	snap, err = fx.svc.ToggleQualification(ctx, "t1", q.ID)
	require.NoError(t, err)
	assert.False(t, snap.Teachers[0].Qualifications[0].IsActive)

	_, err = fx.svc.ToggleQualification(ctx, "t1", "nope")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	snap, err = fx.svc.RemoveQualification(ctx, "t1", q.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Teachers[0].Qualifications)
	assert.Equal(t, 3, fx.repo.saves)
}

func TestRosterUpdateQualificationsAssignsIDs(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	snap, err := fx.svc.UpdateQualifications(context.Background(), "t1", []models.Qualification{
		{Name: "Piano", Rate: 40, Currency: "EUR", Type: models.QualificationGroup, IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, snap.Teachers[0].Qualifications, 1)
	assert.NotEmpty(t, snap.Teachers[0].Qualifications[0].ID)
	assert.Equal(t, "t1", snap.SelectedID)
}

func TestRosterUpdateQualificationsAppliesCreationRules(t *testing.T) {
	seed := seedTeacher("t1", "Ana")
	kept := models.Qualification{ID: "q9", Name: "", Rate: 0, Currency: "idr", Type: "weird", IsActive: false}
	seed.Qualifications = []models.Qualification{kept}
	fx := newRosterFixture(t, seed)

	snap, err := fx.svc.UpdateQualifications(context.Background(), "t1", []models.Qualification{
		{Name: "", Rate: -5},
		kept,
		{Name: " Piano ", Rate: 40, Currency: " eur "},
		{Name: "Drums", Rate: 0},
	})
	require.NoError(t, err)

	quals := snap.Teachers[0].Qualifications
	require.Len(t, quals, 2)
	assert.Equal(t, kept, quals[0])

	created := quals[1]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Piano", created.Name)
	assert.Equal(t, "EUR", created.Currency)
	assert.Equal(t, models.QualificationPrivate, created.Type)
	assert.True(t, created.IsActive)

	assert.Equal(t, quals, fx.repo.stored[0].Qualifications)
}

func TestRosterUpdateTeacherAppliesQualificationRules(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))
	draft := validDraft()
	draft.Qualifications = []models.Qualification{{Name: "  ", Rate: 10}, {Name: "Math", Rate: 15}}

	snap, err := fx.svc.UpdateTeacher(context.Background(), "t1", draft)
	require.NoError(t, err)
	quals := snap.Teachers[0].Qualifications
	require.Len(t, quals, 1)
	assert.Equal(t, "Math", quals[0].Name)
	assert.Equal(t, "USD", quals[0].Currency)
}

func TestRosterLoadGivesStableEmptySchedule(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	first, err := fx.svc.Schedule("t1")
	require.NoError(t, err)
	second, err := fx.svc.Schedule("t1")
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "t1", first.TeacherID)
	assert.Empty(t, first.Slots)
	assert.Equal(t, 0, fx.repo.saves)

	res, err := fx.svc.ClickSlot(context.Background(), "t1", 0, "07:00")
	require.NoError(t, err)
	assert.Equal(t, first.ID, res.Schedule.ID)
	assert.Equal(t, first.ID, fx.repo.stored[0].Schedule.ID)
}

func TestRosterClickSlotCycle(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))
	ctx := context.Background()

	want := []models.SlotStatus{models.SlotAvailable, models.SlotBooked, models.SlotUnavailable, models.SlotAvailable}
	for _, status := range want {
		res, err := fx.svc.ClickSlot(ctx, "t1", 2, "10:00")
		require.NoError(t, err)
		assert.Equal(t, status, res.Slot.Status)
		assert.Len(t, res.Schedule.Slots, 1)
	}

	sched, err := fx.svc.Schedule("t1")
	require.NoError(t, err)
	require.Len(t, sched.Slots, 1)
	assert.Equal(t, "2-10:00", sched.Slots[0].ID)
	assert.Equal(t, "t1", sched.TeacherID)
	assert.Equal(t, "Schedule updated successfully.", lastNotification(t, fx.notes).Message)
	assert.Len(t, fx.repo.stored[0].Schedule.Slots, 1)
}

func TestRosterClickSlotRejectsOffGrid(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	_, err := fx.svc.ClickSlot(context.Background(), "t1", 0, "06:30")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 0, fx.repo.saves)
}

func TestRosterUpsertSlotStoresBooking(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))
	day := 1

	slot, err := fx.svc.UpsertSlot(context.Background(), "t1", dto.SlotUpsertRequest{
		Day: &day, StartTime: "16:00", Status: models.SlotBooked, StudentName: " Budi ", Subject: "Math",
	})
	require.NoError(t, err)
	assert.Equal(t, "1-16:00", slot.ID)
	assert.Equal(t, "16:30", slot.EndTime)
	assert.Equal(t, "Budi", slot.StudentName)
}

func TestRosterUpdateScheduleNormalizesSlots(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	snap, err := fx.svc.UpdateSchedule(context.Background(), "t1", models.Schedule{
		Slots: []models.TimeSlot{
			{Day: 0, StartTime: "09:00", Status: models.SlotAvailable},
			{Day: 0, StartTime: "09:00", Status: models.SlotBooked},
		},
	})
	require.NoError(t, err)
	sched := snap.Teachers[0].Schedule
	require.NotNil(t, sched)
	require.Len(t, sched.Slots, 1)
	assert.Equal(t, models.SlotBooked, sched.Slots[0].Status)
	assert.Equal(t, "t1", sched.TeacherID)
	assert.NotEmpty(t, sched.ID)

	_, err = fx.svc.UpdateSchedule(context.Background(), "t1", models.Schedule{
		Slots: []models.TimeSlot{{Day: 0, StartTime: "09:00", Status: "maybe"}},
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestRosterWeekViewNavigationDoesNotWrite(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	view, err := fx.svc.WeekView("t1", time.Time{}, 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", view.WeekStart)
	assert.Equal(t, 0, fx.repo.saves)

	_, err = fx.svc.WeekView("missing", time.Time{}, 0)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
