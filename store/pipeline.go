// ABOUTME: In-memory lead collection and stage-transition logic
// ABOUTME: Handles lead CRUD, free-form stage moves, and pipeline totals
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizdesk/models"
)

// PipelineStore owns the lead collection. Stage transitions are free-form:
// any stage may move to any other stage, there is no funnel ordering.
type PipelineStore struct {
	mu    sync.RWMutex
	bus   *Dispatcher
	touch bool
	leads []models.Lead
}

func NewPipelineStore(bus *Dispatcher, touch bool) *PipelineStore {
	return &PipelineStore{bus: bus, touch: touch}
}

// LeadPatch is a partial update; nil fields are left untouched. Stage is
// deliberately absent: stage changes go through Move.
type LeadPatch struct {
	Title       *string
	ClientName  *string
	ClientID    *uuid.UUID
	Value       *int64
	DueDate     *time.Time
	Email       *string
	Phone       *string
	Notes       *string
	Tags        *[]string
	Probability *int
}

// Add appends a new lead and publishes LeadAdded. Leads default to the first
// pipeline stage.
func (s *PipelineStore) Add(l models.Lead) models.Lead {
	l.ID = uuid.New()
	l.CreatedAt = time.Now()
	if l.Stage == "" {
		l.Stage = models.StageWarmLead
	}

	s.mu.Lock()
	s.leads = append(s.leads, l)
	snapshot := cloneLead(l)
	s.mu.Unlock()

	s.bus.Publish(LeadAdded{Lead: snapshot})
	return snapshot
}

// Move sets the lead's stage and publishes LeadMoved. It reports whether a
// lead matched. A move to the current stage still executes and publishes
// unless the store was built with touch events disabled.
func (s *PipelineStore) Move(id uuid.UUID, stage string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	from := s.leads[i].Stage
	if from == stage && !s.touch {
		s.mu.Unlock()
		return true
	}
	s.leads[i].Stage = stage
	snapshot := cloneLead(s.leads[i])
	s.mu.Unlock()

	s.bus.Publish(LeadMoved{Lead: snapshot, From: from, To: stage})
	return true
}

// Update merges non-nil patch fields into the matching lead and publishes
// LeadUpdated, flagging whether the monetary value changed.
func (s *PipelineStore) Update(id uuid.UUID, patch LeadPatch) (models.Lead, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Lead{}, false
	}

	l := &s.leads[i]
	changed := false
	oldValue := l.Value
	valueChanged := false

	applyString(&l.Title, patch.Title, &changed)
	applyString(&l.ClientName, patch.ClientName, &changed)
	applyString(&l.Email, patch.Email, &changed)
	applyString(&l.Phone, patch.Phone, &changed)
	applyString(&l.Notes, patch.Notes, &changed)
	if patch.ClientID != nil {
		if l.ClientID != *patch.ClientID {
			changed = true
		}
		l.ClientID = *patch.ClientID
	}
	if patch.Value != nil {
		if l.Value != *patch.Value {
			changed = true
			valueChanged = true
		}
		l.Value = *patch.Value
	}
	if patch.DueDate != nil {
		if l.DueDate == nil || !l.DueDate.Equal(*patch.DueDate) {
			changed = true
		}
		t := *patch.DueDate
		l.DueDate = &t
	}
	if patch.Tags != nil {
		changed = true
		tags := make([]string, len(*patch.Tags))
		copy(tags, *patch.Tags)
		l.Tags = tags
	}
	if patch.Probability != nil {
		if l.Probability != *patch.Probability {
			changed = true
		}
		l.Probability = *patch.Probability
	}
	snapshot := cloneLead(*l)
	s.mu.Unlock()

	s.bus.Publish(LeadUpdated{
		Lead:         snapshot,
		Changed:      changed,
		ValueChanged: valueChanged,
		OldValue:     oldValue,
	})
	return snapshot, true
}

// Delete removes the lead and publishes LeadDeleted. The owning client's
// deal list is not touched; the identifier dangles there.
func (s *PipelineStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	snapshot := cloneLead(s.leads[i])
	s.leads = append(s.leads[:i], s.leads[i+1:]...)
	s.mu.Unlock()

	s.bus.Publish(LeadDeleted{Lead: snapshot})
	return true
}

// Get looks a lead up by ID.
func (s *PipelineStore) Get(id uuid.UUID) (models.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Lead{}, false
	}
	return cloneLead(s.leads[i]), true
}

// ByClientID returns all leads owned by the given client.
func (s *PipelineStore) ByClientID(clientID uuid.UUID) []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Lead
	for _, l := range s.leads {
		if l.ClientID == clientID {
			out = append(out, cloneLead(l))
		}
	}
	return out
}

// ByStage returns all leads currently in the given stage.
func (s *PipelineStore) ByStage(stage string) []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Lead
	for _, l := range s.leads {
		if l.Stage == stage {
			out = append(out, cloneLead(l))
		}
	}
	return out
}

// TotalValue sums the value of every lead in the pipeline.
func (s *PipelineStore) TotalValue() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, l := range s.leads {
		total += l.Value
	}
	return total
}

// All returns a snapshot of the collection in insertion order.
func (s *PipelineStore) All() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, cloneLead(l))
	}
	return out
}

func (s *PipelineStore) indexOf(id uuid.UUID) int {
	for i := range s.leads {
		if s.leads[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneLead(l models.Lead) models.Lead {
	if l.Tags != nil {
		tags := make([]string, len(l.Tags))
		copy(tags, l.Tags)
		l.Tags = tags
	}
	if l.DueDate != nil {
		t := *l.DueDate
		l.DueDate = &t
	}
	return l
}
