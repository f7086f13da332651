// ABOUTME: Desk assembles the three stores around one dispatcher
// ABOUTME: Dependency-injected container replacing process-wide singletons
package store

// Options configures a Desk.
type Options struct {
	// Persister backs the notification feed. Nil keeps the feed in memory
	// only (useful in tests).
	Persister Persister

	// QuietNoops suppresses the notifications historically emitted for
	// updates that change nothing and for same-stage moves. The default
	// (false) keeps the emit-on-touch behavior.
	QuietNoops bool
}

// Desk holds the client, pipeline, and notification stores wired together:
// every client/pipeline mutation publishes a domain event, and the
// registered reactions fan it out into the feed, the client deal lists, and
// the prospect-to-client promotion.
type Desk struct {
	Clients       *ClientStore
	Pipeline      *PipelineStore
	Notifications *NotificationStore
	Bus           *Dispatcher
}

func NewDesk(opts Options) *Desk {
	bus := NewDispatcher()
	feed := NewNotificationStore(opts.Persister)
	clients := NewClientStore(bus)
	pipeline := NewPipelineStore(bus, !opts.QuietNoops)

	bus.Register(&notifier{feed: feed, touch: !opts.QuietNoops})
	bus.Register(&linker{clients: clients})
	bus.Register(&promoter{clients: clients})

	return &Desk{
		Clients:       clients,
		Pipeline:      pipeline,
		Notifications: feed,
		Bus:           bus,
	}
}
