// ABOUTME: In-memory client collection with lifecycle events
// ABOUTME: Handles client CRUD and the deal-list bookkeeping
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizdesk/models"
)

// ClientStore owns the client collection. It is memory-only: state lives for
// the duration of the hosting process. Lookups by unknown ID are no-ops,
// never errors.
type ClientStore struct {
	mu      sync.RWMutex
	bus     *Dispatcher
	clients []models.Client
}

func NewClientStore(bus *Dispatcher) *ClientStore {
	return &ClientStore{bus: bus}
}

// ClientPatch is a partial update; nil fields are left untouched.
type ClientPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Company     *string
	Status      *string
	Type        *string
	LastContact *time.Time
	Notes       *string
}

// Add appends a new client and publishes ClientAdded. No constraint checking
// is done on email or phone; any string is accepted.
func (s *ClientStore) Add(c models.Client) models.Client {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = models.StatusActive
	}
	if c.Type == "" {
		c.Type = models.TypeProspect
	}

	s.mu.Lock()
	s.clients = append(s.clients, c)
	snapshot := cloneClient(c)
	s.mu.Unlock()

	s.bus.Publish(ClientAdded{Client: snapshot})
	return snapshot
}

// Update merges non-nil patch fields into the matching client. It reports
// whether a client matched; ClientUpdated is published even when the merge
// changed nothing observable (the event carries Changed so downstream can
// tell the difference).
func (s *ClientStore) Update(id uuid.UUID, patch ClientPatch) (models.Client, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Client{}, false
	}

	c := &s.clients[i]
	changed := false
	applyString(&c.Name, patch.Name, &changed)
	applyString(&c.Email, patch.Email, &changed)
	applyString(&c.Phone, patch.Phone, &changed)
	applyString(&c.Company, patch.Company, &changed)
	applyString(&c.Status, patch.Status, &changed)
	applyString(&c.Type, patch.Type, &changed)
	applyString(&c.Notes, patch.Notes, &changed)
	if patch.LastContact != nil {
		if c.LastContact == nil || !c.LastContact.Equal(*patch.LastContact) {
			changed = true
		}
		t := *patch.LastContact
		c.LastContact = &t
	}
	snapshot := cloneClient(*c)
	s.mu.Unlock()

	s.bus.Publish(ClientUpdated{Client: snapshot, Changed: changed})
	return snapshot, true
}

// Delete removes the client and publishes ClientDeleted. Leads referencing
// the client are left in place with a dangling client ID; callers that need
// cleanup must do it themselves.
func (s *ClientStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	snapshot := cloneClient(s.clients[i])
	s.clients = append(s.clients[:i], s.clients[i+1:]...)
	s.mu.Unlock()

	s.bus.Publish(ClientDeleted{Client: snapshot})
	return true
}

// GetByID looks a client up by ID.
func (s *ClientStore) GetByID(id uuid.UUID) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Client{}, false
	}
	return cloneClient(s.clients[i]), true
}

// All returns a snapshot of the collection in insertion order.
func (s *ClientStore) All() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, cloneClient(c))
	}
	return out
}

// linkDeal records a lead under the client's deal list. Pure bookkeeping: no
// event is published.
func (s *ClientStore) linkDeal(clientID, leadID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(clientID)
	if i < 0 {
		return
	}
	for _, existing := range s.clients[i].DealIDs {
		if existing == leadID {
			return
		}
	}
	s.clients[i].DealIDs = append(s.clients[i].DealIDs, leadID)
}

func (s *ClientStore) indexOf(id uuid.UUID) int {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneClient(c models.Client) models.Client {
	if c.DealIDs != nil {
		ids := make([]uuid.UUID, len(c.DealIDs))
		copy(ids, c.DealIDs)
		c.DealIDs = ids
	}
	if c.LastContact != nil {
		t := *c.LastContact
		c.LastContact = &t
	}
	return c
}

func applyString(dst *string, src *string, changed *bool) {
	if src == nil {
		return
	}
	if *dst != *src {
		*changed = true
	}
	*dst = *src
}
