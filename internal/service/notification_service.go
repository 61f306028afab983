package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/teacher-admin-api/internal/models"
)

// NotificationService keeps the short-lived success/error messages shown by the admin UI.
type NotificationService struct {
	mu    sync.Mutex
	items []models.Notification
	ttl   time.Duration
	now   func() time.Time
}

// NewNotificationService constructs a feed whose entries expire after ttl.
func NewNotificationService(ttl time.Duration, now func() time.Time) *NotificationService {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &NotificationService{ttl: ttl, now: now}
}

// Notify appends a message to the feed.
func (s *NotificationService) Notify(kind models.NotificationType, message string) models.Notification {
	now := s.now()
	n := models.Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.items = append(s.items, n)
	return n
}

// List returns the unexpired notifications, oldest first.
func (s *NotificationService) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())
	out := make([]models.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Dismiss removes a notification and reports whether it existed.
func (s *NotificationService) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *NotificationService) pruneLocked(now time.Time) {
	kept := s.items[:0]
	for _, n := range s.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	s.items = kept
}
