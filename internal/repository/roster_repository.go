package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-admin-api/internal/models"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
)

// RosterRepository serializes the whole teacher collection into a SnapshotStore.
type RosterRepository struct {
	store  SnapshotStore
	logger *zap.Logger
}

// NewRosterRepository constructs a roster repository.
func NewRosterRepository(store SnapshotStore, logger *zap.Logger) *RosterRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterRepository{store: store, logger: logger}
}

// Load returns the stored collection. A missing or unreadable document yields
// an empty collection; the failure is logged and never returned.
func (r *RosterRepository) Load(ctx context.Context) []models.Teacher {
	raw, err := r.store.Read(ctx)
	if err != nil {
		if errors.Is(err, appErrors.ErrSnapshotMissing) {
			r.logger.Info("no stored teacher collection, starting empty")
		} else {
			r.logger.Warn("failed to read teacher collection, starting empty", zap.Error(err))
		}
		return []models.Teacher{}
	}

	var teachers []models.Teacher
	if err := json.Unmarshal(raw, &teachers); err != nil {
		r.logger.Warn("stored teacher collection is malformed, starting empty", zap.Error(err), zap.Int("bytes", len(raw)))
		return []models.Teacher{}
	}
	return normalize(teachers)
}

// Save overwrites the stored collection with teachers.
func (r *RosterRepository) Save(ctx context.Context, teachers []models.Teacher) error {
	if teachers == nil {
		teachers = []models.Teacher{}
	}
	payload, err := json.Marshal(teachers)
	if err != nil {
		return fmt.Errorf("marshal teacher collection: %w", err)
	}
	if err := r.store.Write(ctx, payload); err != nil {
		return err
	}
	r.logger.Debug("teacher collection saved", zap.Int("teachers", len(teachers)), zap.Int("bytes", len(payload)))
	return nil
}

func normalize(teachers []models.Teacher) []models.Teacher {
	if teachers == nil {
		return []models.Teacher{}
	}
	for i := range teachers {
		if teachers[i].Qualifications == nil {
			teachers[i].Qualifications = []models.Qualification{}
		}
		if s := teachers[i].Schedule; s != nil && s.Slots == nil {
			s.Slots = []models.TimeSlot{}
		}
	}
	return teachers
}
