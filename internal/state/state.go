// Package state provides the observable application-state container. It
// wraps a fixed-shape set of named fields and fires a per-field change event
// on the associated event bus whenever a write actually changes a value.
package state

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/vk/stageview/internal/eventbus"
)

// ChangedSuffix is appended to a field name to form its change event name.
// A consumer interested in the "progress" field subscribes to
// "progress:changed" and receives (newValue, previousValue).
const ChangedSuffix = ":changed"

// ChangedEvent returns the bus event name for a state field.
func ChangedEvent(field string) string {
	return field + ChangedSuffix
}

// Container holds the application state. The field set is captured at
// construction time and is permanent: writes to unknown fields are rejected
// and reported through the injected logger rather than panicking, so a typo
// in a producer cannot silently grow the schema.
type Container struct {
	mu     sync.Mutex
	fields map[string]any
	bus    *eventbus.Bus
	logger *slog.Logger
}

// New builds a container whose permanent schema is the key set of initial.
// Change events are fired on bus; rejected operations are reported through
// logger.
func New(initial map[string]any, bus *eventbus.Bus, logger *slog.Logger) *Container {
	fields := make(map[string]any, len(initial))
	for k, v := range initial {
		fields[k] = v
	}
	return &Container{
		fields: fields,
		bus:    bus,
		logger: logger,
	}
}

// Default returns the initial viewer state.
func Default() map[string]any {
	return map[string]any{
		"progress":    0,
		"loaded":      false,
		"error":       "",
		"inputMode":   "desktop",
		"xrSupported": false,
		"xrActive":    false,
	}
}

// Set stores value under field and fires "<field>:changed" with the new and
// previous values when they differ. Writing the current value again is a
// silent no-op that still reports success. Writing to a field outside the
// captured schema reports failure and fires nothing.
//
// The change event is dispatched while the container's lock is held, which
// keeps per-field event order identical to write order when producers race.
// Handlers must not call back into the same container.
func (c *Container) Set(field string, value any) bool {
	if field == "" {
		c.logger.Error("state: rejected write with empty field name")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.fields[field]
	if !ok {
		c.logger.Error("state: rejected write to unknown field", "field", field)
		return false
	}
	if equal(prev, value) {
		return true
	}

	c.fields[field] = value
	c.bus.Fire(ChangedEvent(field), value, prev)
	return true
}

// Get returns the current value of field. Unknown fields are rejected the
// same way Set rejects them: reported through the logger, ok=false.
func (c *Container) Get(field string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.fields[field]
	if !ok {
		c.logger.Error("state: rejected read of unknown field", "field", field)
		return nil, false
	}
	return v, true
}

// Fields returns the schema's field names. The result is a copy.
func (c *Container) Fields() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.fields))
	for k := range c.fields {
		names = append(names, k)
	}
	return names
}

// Snapshot returns a copy of the current state, for the status endpoint and
// the presentation relay.
func (c *Container) Snapshot() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := make(map[string]any, len(c.fields))
	for k, v := range c.fields {
		snap[k] = v
	}
	return snap
}

// equal is the change-detection predicate. Structural equality covers the
// slice and map shaped values that == would panic on.
func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
