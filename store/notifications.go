// ABOUTME: Notification feed store with durable persistence
// ABOUTME: Prepend-ordered collection, read flags, and vault serialization
package store

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/bizdesk/models"
)

// Persister stores the serialized feed document. Load returns (nil, nil)
// when nothing has been persisted yet.
type Persister interface {
	Load() ([]byte, error)
	Save([]byte) error
}

// feedDocument is the persisted shape: one JSON object holding the whole
// collection, most-recent-first.
type feedDocument struct {
	Notifications []models.Notification `json:"notifications"`
}

// Draft is the caller-supplied part of a notification. The store stamps the
// identifier, timestamp, and read flag.
type Draft struct {
	Type     string
	Title    string
	Message  string
	Priority string
	Meta     models.Meta
}

// NotificationStore owns the feed. It is the single fan-in point for the
// other stores' side effects and the only collection that survives process
// restarts. The whole collection is written to the persister after every
// mutation; persistence failures are logged, never surfaced to mutators.
type NotificationStore struct {
	mu            sync.RWMutex
	persister     Persister
	notifications []models.Notification
}

// NewNotificationStore builds the store and rehydrates the feed from the
// persister, if one is given.
func NewNotificationStore(p Persister) *NotificationStore {
	s := &NotificationStore{persister: p}
	s.rehydrate()
	return s
}

func (s *NotificationStore) rehydrate() {
	if s.persister == nil {
		return
	}
	raw, err := s.persister.Load()
	if err != nil {
		log.Printf("feed: load failed: %v", err)
		return
	}
	if len(raw) == 0 {
		return
	}
	var doc feedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("feed: unreadable document, starting empty: %v", err)
		return
	}
	s.notifications = doc.Notifications
}

// Add stamps and prepends a notification, keeping most-recent-first order.
func (s *NotificationStore) Add(d Draft) models.Notification {
	n := models.Notification{
		ID:        ulid.Make().String(),
		Type:      d.Type,
		Title:     d.Title,
		Message:   d.Message,
		Timestamp: time.Now(),
		Priority:  d.Priority,
		Meta:      d.Meta,
	}
	if n.Type == "" {
		n.Type = models.NotifySystem
	}
	if n.Priority == "" {
		n.Priority = models.PriorityMedium
	}

	s.mu.Lock()
	s.notifications = append([]models.Notification{n}, s.notifications...)
	s.persistLocked()
	s.mu.Unlock()
	return n
}

// MarkAsRead flips the read flag on one notification. Idempotent.
func (s *NotificationStore) MarkAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = true
			s.persistLocked()
			return true
		}
	}
	return false
}

// MarkAllAsRead flips the read flag on every notification and reports how
// many were previously unread. Idempotent.
func (s *NotificationStore) MarkAllAsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for i := range s.notifications {
		if !s.notifications[i].IsRead {
			marked++
		}
		s.notifications[i].IsRead = true
	}
	s.persistLocked()
	return marked
}

// Delete removes one notification.
func (s *NotificationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// ClearAll empties the feed and reports how many notifications were removed.
func (s *NotificationStore) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := len(s.notifications)
	s.notifications = nil
	s.persistLocked()
	return cleared
}

// UnreadCount reports how many notifications are unread.
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// All returns a snapshot of the feed, most recent first.
func (s *NotificationStore) All() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *NotificationStore) persistLocked() {
	if s.persister == nil {
		return
	}
	doc := feedDocument{Notifications: s.notifications}
	if doc.Notifications == nil {
		doc.Notifications = []models.Notification{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		log.Printf("feed: marshal failed: %v", err)
		return
	}
	if err := s.persister.Save(raw); err != nil {
		log.Printf("feed: save failed: %v", err)
	}
}
