// Package eventbus implements a minimal named-event publish/subscribe
// primitive. Dispatch is synchronous and in registration order; Fire returns
// only after every handler for the event has run.
package eventbus

import "sync"

// Handler is a subscriber callback. Arguments are whatever the firer passed.
type Handler func(args ...any)

// Bus routes fired events to registered handlers by name.
//
// The handler table is guarded by a mutex so registration is safe from any
// goroutine; handlers themselves run unlocked on the firing goroutine. A
// panicking handler is not isolated; the panic propagates to the caller of
// Fire.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// On registers a handler for the named event. Handlers fire in the order
// they were registered. There is no unsubscription; callers that need it
// guard their own handlers.
func (b *Bus) On(event string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], h)
}

// Fire dispatches the named event to every registered handler, in order,
// on the calling goroutine. Firing an event with no subscribers is a no-op.
func (b *Bus) Fire(event string, args ...any) {
	b.mu.Lock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.Unlock()

	for _, h := range hs {
		h(args...)
	}
}
