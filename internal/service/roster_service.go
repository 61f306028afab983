package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	"github.com/noah-isme/teacher-admin-api/pkg/calendar"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
)

type rosterRepository interface {
	Load(ctx context.Context) []models.Teacher
	Save(ctx context.Context, teachers []models.Teacher) error
}

type notifier interface {
	Notify(kind models.NotificationType, message string) models.Notification
}

const (
	msgTeacherAdded     = "Teacher added successfully."
	msgTeacherUpdated   = "Teacher updated successfully."
	msgTeacherDeleted   = "Teacher deleted successfully."
	msgScheduleUpdated  = "Schedule updated successfully."
	msgPersistFailed    = "Failed to save changes."
	defaultRosterPage   = 10
	defaultQualCurrency = models.DefaultCurrency
)

// RosterOptions tunes a RosterService. Zero values pick defaults.
type RosterOptions struct {
	PageSize int
	Now      func() time.Time
	NewID    func() string
}

// RosterService owns the in-memory teacher collection and the selected teacher.
// Every mutation writes the whole collection before it is committed in memory,
// so a failed write leaves the previous collection in place.
type RosterService struct {
	mu         sync.Mutex
	teachers   []models.Teacher
	selectedID string

	repo      rosterRepository
	validator *teacherValidator
	notifier  notifier
	metrics   *MetricsService
	logger    *zap.Logger
	pageSize  int
	now       func() time.Time
	newID     func() string
}

// NewRosterService constructs a RosterService.
func NewRosterService(repo rosterRepository, validate *validator.Validate, notify notifier, metrics *MetricsService, logger *zap.Logger, opts RosterOptions) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultRosterPage
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &RosterService{
		teachers:  []models.Teacher{},
		repo:      repo,
		validator: newTeacherValidator(validate),
		notifier:  notify,
		metrics:   metrics,
		logger:    logger,
		pageSize:  opts.PageSize,
		now:       opts.Now,
		newID:     opts.NewID,
	}
}

// Load replaces the in-memory collection with the stored one and selects the first teacher.
func (s *RosterService) Load(ctx context.Context) models.RosterSnapshot {
	teachers := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Teachers stored without a schedule get one empty schedule here so its
	// id stays stable across reads. It is written with the next mutation.
	for i := range teachers {
		if teachers[i].Schedule == nil {
			sched := s.emptySchedule(teachers[i].ID)
			teachers[i].Schedule = &sched
		}
	}
	s.teachers = teachers
	s.selectedID = ""
	if len(teachers) > 0 {
		s.selectedID = teachers[0].ID
	}
	s.logger.Info("teacher collection loaded", zap.Int("teachers", len(teachers)))
	return s.snapshotLocked()
}

// Snapshot returns a deep copy of the collection and the selection.
func (s *RosterService) Snapshot() models.RosterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// List filters teachers by name and paginates the result.
func (s *RosterService) List(filter models.TeacherFilter) ([]models.Teacher, *models.Pagination) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]models.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		if term == "" || strings.Contains(strings.ToLower(t.Name), term) {
			matched = append(matched, t)
		}
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}
	// Compare page counts first so (page-1)*size cannot overflow.
	pages := len(matched) / size
	if len(matched)%size != 0 {
		pages++
	}
	if page > pages {
		return []models.Teacher{}, pagination
	}
	start := (page - 1) * size
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return cloneTeachers(matched[start:end]), pagination
}

// Get returns a teacher by id.
func (s *RosterService) Get(id string) (*models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.teachers, id)
	if idx < 0 {
		return nil, teacherNotFound()
	}
	t := s.teachers[idx].Clone()
	return &t, nil
}

// Selected returns the selected teacher, if any.
func (s *RosterService) Selected() (*models.Teacher, bool) {
	snap := s.Snapshot()
	return snap.Selected()
}

// Select marks id as the selected teacher. Selection is not persisted.
func (s *RosterService) Select(id string) (models.RosterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.teachers, id) < 0 {
		return s.snapshotLocked(), teacherNotFound()
	}
	s.selectedID = id
	return s.snapshotLocked(), nil
}

// AddTeacher validates draft and appends a new teacher with an empty schedule.
// The new teacher becomes the selection.
func (s *RosterService) AddTeacher(ctx context.Context, draft TeacherDraft) (models.RosterSnapshot, error) {
	draft = draft.trimmed()
	if failures := s.validator.Check(draft); len(failures) > 0 {
		return s.Snapshot(), appErrors.Validation("invalid teacher payload", failures)
	}

	snap, err := s.mutate(ctx, "add_teacher", func(teachers []models.Teacher, selected string) ([]models.Teacher, string, error) {
		id := s.newID()
		schedule := s.emptySchedule(id)
		teacher := models.Teacher{
			ID:               id,
			Name:             draft.Name,
			Role:             draft.Role,
			Email:            draft.Email,
			Phone:            draft.Phone,
			Address:          draft.Address,
			Avatar:           draft.Avatar,
			DateOfBirth:      draft.DateOfBirth,
			EmergencyContact: draft.EmergencyContact,
			Status:           draft.Status,
			Qualifications:   []models.Qualification{},
			Schedule:         &schedule,
		}
		return append(teachers, teacher), id, nil
	})
	if err != nil {
		return snap, err
	}
	s.notify(models.NotificationSuccess, msgTeacherAdded)
	return snap, nil
}

// UpdateTeacher replaces the profile of id and re-selects it. Qualifications
// and schedule are only replaced when the draft carries them.
func (s *RosterService) UpdateTeacher(ctx context.Context, id string, draft TeacherDraft) (models.RosterSnapshot, error) {
	draft = draft.trimmed()
	if failures := s.validator.Check(draft); len(failures) > 0 {
		return s.Snapshot(), appErrors.Validation("invalid teacher payload", failures)
	}

	snap, err := s.mutate(ctx, "update_teacher", func(teachers []models.Teacher, selected string) ([]models.Teacher, string, error) {
		idx := indexOf(teachers, id)
		if idx < 0 {
			return nil, "", teacherNotFound()
		}
		current := teachers[idx]
		updated := models.Teacher{
			ID:               current.ID,
			Name:             draft.Name,
			Role:             draft.Role,
			Email:            draft.Email,
			Phone:            draft.Phone,
			Address:          draft.Address,
			Avatar:           draft.Avatar,
			DateOfBirth:      draft.DateOfBirth,
			EmergencyContact: draft.EmergencyContact,
			Status:           draft.Status,
			Qualifications:   current.Qualifications,
			Schedule:         current.Schedule,
		}
		if draft.Qualifications != nil {
			updated.Qualifications = s.normalizeQualifications(draft.Qualifications)
		}
		if draft.Schedule != nil {
			sched, err := s.normalizeSchedule(current, *draft.Schedule)
			if err != nil {
				return nil, "", err
			}
			updated.Schedule = &sched
		}
		teachers[idx] = updated
		return teachers, id, nil
	})
	if err != nil {
		return snap, err
	}
	s.notify(models.NotificationSuccess, msgTeacherUpdated)
	return snap, nil
}

// DeleteTeacher removes id together with its qualifications and schedule.
// If it was selected, the first remaining teacher becomes the selection.
func (s *RosterService) DeleteTeacher(ctx context.Context, id string) (models.RosterSnapshot, error) {
	snap, err := s.mutate(ctx, "delete_teacher", func(teachers []models.Teacher, selected string) ([]models.Teacher, string, error) {
		idx := indexOf(teachers, id)
		if idx < 0 {
			return nil, "", teacherNotFound()
		}
		remaining := append(teachers[:idx], teachers[idx+1:]...)
		if selected == id {
			selected = ""
			if len(remaining) > 0 {
				selected = remaining[0].ID
			}
		}
		return remaining, selected, nil
	})
	if err != nil {
		return snap, err
	}
	s.notify(models.NotificationSuccess, msgTeacherDeleted)
	return snap, nil
}

// UpdateQualifications replaces the qualification list of teacherID and saves
// immediately. Entries that already carry an id are kept as they are; entries
// without one are created under the same rules as AddQualification.
func (s *RosterService) UpdateQualifications(ctx context.Context, teacherID string, quals []models.Qualification) (models.RosterSnapshot, error) {
	return s.mutateQualifications(ctx, "update_qualifications", teacherID, func(current []models.Qualification) ([]models.Qualification, error) {
		return s.normalizeQualifications(quals), nil
	})
}

// AddQualification appends a qualification. A draft with a blank name or a
// non-positive rate is ignored: the collection is returned unchanged, nothing
// is written and added is false.
func (s *RosterService) AddQualification(ctx context.Context, teacherID string, draft dto.QualificationDraft) (models.RosterSnapshot, bool, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" || draft.Rate <= 0 {
		snap := s.Snapshot()
		if _, ok := findTeacher(snap.Teachers, teacherID); !ok {
			return snap, false, teacherNotFound()
		}
		return snap, false, nil
	}

	qual, _ := s.newQualification(models.Qualification{
		Name:         name,
		Rate:         draft.Rate,
		Currency:     draft.Currency,
		Type:         draft.Type,
		Description:  draft.Description,
		Requirements: draft.Requirements,
		IsActive:     draft.IsActive == nil || *draft.IsActive,
	})

	snap, err := s.mutateQualifications(ctx, "add_qualification", teacherID, func(current []models.Qualification) ([]models.Qualification, error) {
		return append(current, qual), nil
	})
	if err != nil {
		return snap, false, err
	}
	return snap, true, nil
}

// ToggleQualification flips the active flag of one qualification.
func (s *RosterService) ToggleQualification(ctx context.Context, teacherID, qualID string) (models.RosterSnapshot, error) {
	return s.mutateQualifications(ctx, "toggle_qualification", teacherID, func(current []models.Qualification) ([]models.Qualification, error) {
		for i := range current {
			if current[i].ID == qualID {
				current[i].IsActive = !current[i].IsActive
				return current, nil
			}
		}
		return nil, qualificationNotFound()
	})
}

// RemoveQualification deletes one qualification.
func (s *RosterService) RemoveQualification(ctx context.Context, teacherID, qualID string) (models.RosterSnapshot, error) {
	return s.mutateQualifications(ctx, "remove_qualification", teacherID, func(current []models.Qualification) ([]models.Qualification, error) {
		for i := range current {
			if current[i].ID == qualID {
				return append(current[:i], current[i+1:]...), nil
			}
		}
		return nil, qualificationNotFound()
	})
}

// Schedule returns the schedule of teacherID. Teachers without a stored
// schedule are given an empty one on Load, so its id is stable across reads.
func (s *RosterService) Schedule(teacherID string) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.teachers, teacherID)
	if idx < 0 {
		return models.Schedule{}, teacherNotFound()
	}
	return s.scheduleOf(s.teachers[idx]), nil
}

// UpdateSchedule replaces the schedule of teacherID wholesale.
func (s *RosterService) UpdateSchedule(ctx context.Context, teacherID string, schedule models.Schedule) (models.RosterSnapshot, error) {
	return s.mutateSchedule(ctx, "update_schedule", teacherID, func(current models.Teacher) (models.Schedule, error) {
		return s.normalizeSchedule(current, schedule)
	})
}

// ClickSlot applies the grid click rule to (day, startTime) of teacherID's schedule.
func (s *RosterService) ClickSlot(ctx context.Context, teacherID string, day int, startTime string) (dto.SlotClickResult, error) {
	if err := ValidateSlotKey(day, startTime); err != nil {
		return dto.SlotClickResult{}, err
	}
	var (
		slot     models.TimeSlot
		previous models.SlotStatus
		sched    models.Schedule
	)
	_, err := s.mutateSchedule(ctx, "click_slot", teacherID, func(current models.Teacher) (models.Schedule, error) {
		var err error
		sched, slot, previous, err = ApplySlotClick(s.scheduleOf(current), day, startTime)
		return sched, err
	})
	if err != nil {
		return dto.SlotClickResult{}, err
	}
	s.metrics.RecordSlotTransition(previous, slot.Status)
	return dto.SlotClickResult{Slot: slot, Previous: previous, Schedule: sched.Clone()}, nil
}

// UpsertSlot writes a slot with booking details into teacherID's schedule.
func (s *RosterService) UpsertSlot(ctx context.Context, teacherID string, req dto.SlotUpsertRequest) (models.TimeSlot, error) {
	if req.Day == nil {
		return models.TimeSlot{}, appErrors.Validation("invalid slot", map[string]string{"day": "Day is required"})
	}
	if err := ValidateSlotKey(*req.Day, req.StartTime); err != nil {
		return models.TimeSlot{}, err
	}
	if !req.Status.Valid() {
		return models.TimeSlot{}, appErrors.Validation("invalid slot", map[string]string{"status": "Status must be one of: available, booked, unavailable"})
	}
	slot := models.TimeSlot{
		Day:         *req.Day,
		StartTime:   req.StartTime,
		Status:      req.Status,
		StudentName: strings.TrimSpace(req.StudentName),
		Subject:     strings.TrimSpace(req.Subject),
		Notes:       strings.TrimSpace(req.Notes),
	}
	var stored models.TimeSlot
	_, err := s.mutateSchedule(ctx, "upsert_slot", teacherID, func(current models.Teacher) (models.Schedule, error) {
		sched := UpsertSlot(s.scheduleOf(current), slot)
		stored, _ = LookupSlot(sched, slot.Day, slot.StartTime)
		return sched, nil
	})
	if err != nil {
		return models.TimeSlot{}, err
	}
	return stored, nil
}

// WeekView projects teacherID's schedule onto the week containing anchor,
// shifted by offset weeks. A zero anchor means the current week.
func (s *RosterService) WeekView(teacherID string, anchor time.Time, offset int) (dto.WeekView, error) {
	sched, err := s.Schedule(teacherID)
	if err != nil {
		return dto.WeekView{}, err
	}
	now := s.now()
	if anchor.IsZero() {
		anchor = now
	}
	week := calendar.WeekOf(anchor).Shift(offset)
	return BuildWeekView(teacherID, sched, week, now), nil
}

type mutation func(teachers []models.Teacher, selected string) ([]models.Teacher, string, error)

// mutate applies fn to a private copy of the collection, persists the result
// and commits it. Nothing is committed when fn or the write fails.
func (s *RosterService) mutate(ctx context.Context, op string, fn mutation) (models.RosterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, selected, err := fn(cloneTeachers(s.teachers), s.selectedID)
	if err != nil {
		return s.snapshotLocked(), err
	}

	start := time.Now()
	err = s.repo.Save(ctx, next)
	s.metrics.ObservePersist(time.Since(start), err)
	if err != nil {
		s.logger.Error("failed to persist teacher collection", zap.String("operation", op), zap.Error(err))
		s.notify(models.NotificationError, msgPersistFailed)
		return s.snapshotLocked(), appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}

	s.teachers = next
	s.selectedID = selected
	s.metrics.RecordMutation(op, len(next))
	s.logger.Debug("roster mutation committed", zap.String("operation", op), zap.Int("teachers", len(next)))
	return s.snapshotLocked(), nil
}

func (s *RosterService) mutateQualifications(ctx context.Context, op, teacherID string, fn func([]models.Qualification) ([]models.Qualification, error)) (models.RosterSnapshot, error) {
	snap, err := s.mutate(ctx, op, func(teachers []models.Teacher, selected string) ([]models.Teacher, string, error) {
		idx := indexOf(teachers, teacherID)
		if idx < 0 {
			return nil, "", teacherNotFound()
		}
		current := teachers[idx].Qualifications
		if current == nil {
			current = []models.Qualification{}
		}
		quals, err := fn(current)
		if err != nil {
			return nil, "", err
		}
		teachers[idx].Qualifications = quals
		return teachers, teacherID, nil
	})
	if err != nil {
		return snap, err
	}
	s.notify(models.NotificationSuccess, msgTeacherUpdated)
	return snap, nil
}

func (s *RosterService) mutateSchedule(ctx context.Context, op, teacherID string, fn func(models.Teacher) (models.Schedule, error)) (models.RosterSnapshot, error) {
	snap, err := s.mutate(ctx, op, func(teachers []models.Teacher, selected string) ([]models.Teacher, string, error) {
		idx := indexOf(teachers, teacherID)
		if idx < 0 {
			return nil, "", teacherNotFound()
		}
		sched, err := fn(teachers[idx])
		if err != nil {
			return nil, "", err
		}
		teachers[idx].Schedule = &sched
		return teachers, selected, nil
	})
	if err != nil {
		return snap, err
	}
	s.notify(models.NotificationSuccess, msgScheduleUpdated)
	return snap, nil
}

// normalizeSchedule validates every slot and rebuilds the slot list through
// UpsertSlot, so ids and end times are derived and keys stay unique (last wins).
func (s *RosterService) normalizeSchedule(owner models.Teacher, in models.Schedule) (models.Schedule, error) {
	base := s.scheduleOf(owner)
	out := models.Schedule{
		ID:            in.ID,
		TeacherID:     in.TeacherID,
		WeekStartDate: in.WeekStartDate,
		Slots:         []models.TimeSlot{},
	}
	if out.ID == "" {
		out.ID = base.ID
	}
	if out.TeacherID == "" {
		out.TeacherID = owner.ID
	}
	if out.WeekStartDate == "" {
		out.WeekStartDate = base.WeekStartDate
	}
	for _, slot := range in.Slots {
		if err := ValidateSlotKey(slot.Day, slot.StartTime); err != nil {
			return models.Schedule{}, err
		}
		if !slot.Status.Valid() {
			return models.Schedule{}, appErrors.Validation("invalid slot", map[string]string{"status": "Status must be one of: available, booked, unavailable"})
		}
		out = UpsertSlot(out, slot)
	}
	return out, nil
}

func (s *RosterService) scheduleOf(t models.Teacher) models.Schedule {
	if t.Schedule != nil {
		return t.Schedule.Clone()
	}
	return s.emptySchedule(t.ID)
}

func (s *RosterService) emptySchedule(teacherID string) models.Schedule {
	return models.Schedule{
		ID:            s.newID(),
		TeacherID:     teacherID,
		WeekStartDate: calendar.WeekOf(s.now()).String(),
		Slots:         []models.TimeSlot{},
	}
}

func (s *RosterService) snapshotLocked() models.RosterSnapshot {
	return models.RosterSnapshot{Teachers: cloneTeachers(s.teachers), SelectedID: s.selectedID}
}

func (s *RosterService) notify(kind models.NotificationType, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(kind, message)
}

// normalizeQualifications keeps entries with an id untouched and runs the
// creation rules on the rest. Id-less entries that fail them are dropped.
func (s *RosterService) normalizeQualifications(in []models.Qualification) []models.Qualification {
	out := make([]models.Qualification, 0, len(in))
	for _, q := range in {
		if q.ID != "" {
			out = append(out, q)
			continue
		}
		// Bulk entries have no "unset" active flag, so new ones start active.
		q.IsActive = true
		if created, ok := s.newQualification(q); ok {
			out = append(out, created)
		}
	}
	return out
}

// newQualification applies the creation defaults to q and assigns it an id.
// It reports false for a blank name or a non-positive rate.
func (s *RosterService) newQualification(q models.Qualification) (models.Qualification, bool) {
	q.Name = strings.TrimSpace(q.Name)
	if q.Name == "" || q.Rate <= 0 {
		return models.Qualification{}, false
	}
	q.ID = s.newID()
	q.Currency = strings.ToUpper(strings.TrimSpace(q.Currency))
	if q.Currency == "" {
		q.Currency = defaultQualCurrency
	}
	if q.Type != models.QualificationPrivate && q.Type != models.QualificationGroup {
		q.Type = models.QualificationPrivate
	}
	q.Description = strings.TrimSpace(q.Description)
	q.Requirements = append([]string{}, q.Requirements...)
	return q, true
}

func cloneTeachers(in []models.Teacher) []models.Teacher {
	out := make([]models.Teacher, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func indexOf(teachers []models.Teacher, id string) int {
	for i := range teachers {
		if teachers[i].ID == id {
			return i
		}
	}
	return -1
}

func findTeacher(teachers []models.Teacher, id string) (models.Teacher, bool) {
	if idx := indexOf(teachers, id); idx >= 0 {
		return teachers[idx], true
	}
	return models.Teacher{}, false
}

func teacherNotFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
}

func qualificationNotFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, "qualification not found")
}
