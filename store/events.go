// ABOUTME: Domain events and the synchronous dispatcher
// ABOUTME: Decouples store mutations from their cross-store reactions
package store

import (
	"sync"

	"github.com/harperreed/bizdesk/models"
)

// Event is a domain event published by a store mutator after its own
// mutation has been applied.
type Event interface {
	eventName() string
}

type ClientAdded struct {
	Client models.Client
}

type ClientUpdated struct {
	Client models.Client
	// Changed is false when the merge altered nothing observable.
	Changed bool
}

type ClientDeleted struct {
	Client models.Client
}

type LeadAdded struct {
	Lead models.Lead
}

type LeadMoved struct {
	Lead models.Lead
	From string
	To   string
}

type LeadUpdated struct {
	Lead         models.Lead
	Changed      bool
	ValueChanged bool
	OldValue     int64
}

type LeadDeleted struct {
	Lead models.Lead
}

func (ClientAdded) eventName() string   { return "client.added" }
func (ClientUpdated) eventName() string { return "client.updated" }
func (ClientDeleted) eventName() string { return "client.deleted" }
func (LeadAdded) eventName() string     { return "lead.added" }
func (LeadMoved) eventName() string     { return "lead.moved" }
func (LeadUpdated) eventName() string   { return "lead.updated" }
func (LeadDeleted) eventName() string   { return "lead.deleted" }

// Reaction handles a published event. Reactions run synchronously, in
// registration order, on the publishing goroutine.
type Reaction interface {
	Apply(Event)
}

// Dispatcher fans published events out to registered reactions. Publishing
// happens after the originating store has released its lock, so reactions
// are free to call back into any store.
type Dispatcher struct {
	mu        sync.RWMutex
	reactions []Reaction
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Register(r Reaction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reactions = append(d.reactions, r)
}

func (d *Dispatcher) Publish(e Event) {
	d.mu.RLock()
	reactions := make([]Reaction, len(d.reactions))
	copy(reactions, d.reactions)
	d.mu.RUnlock()

	for _, r := range reactions {
		r.Apply(e)
	}
}
