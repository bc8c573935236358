// Package relay bridges the bootstrap's change events to the hosting page's
// session server over socket.io. Every "<field>:changed" event on the state
// bus is forwarded as a "state:changed" emit, so the browser-side UI can
// observe progress and mode transitions without polling.
package relay

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/stageview/internal/config"
	"github.com/vk/stageview/internal/ctxlog"
	"github.com/vk/stageview/internal/eventbus"
	"github.com/vk/stageview/internal/state"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// ChangeEmit is the socket.io event name used for forwarded field
	// changes.
	ChangeEmit = "state:changed"

	defaultTimeout = 10 * time.Second
)

// ChangePayload is the wire shape of one forwarded change event.
type ChangePayload struct {
	Field    string `json:"field"`
	Value    any    `json:"value"`
	Previous any    `json:"previous"`
}

// NewChangePayload builds the payload for one field change. args is the
// (newValue, previousValue) pair the bus delivers.
func NewChangePayload(field string, args []any) ChangePayload {
	p := ChangePayload{Field: field}
	if len(args) > 0 {
		p.Value = args[0]
	}
	if len(args) > 1 {
		p.Previous = args[1]
	}
	return p
}

// Relay is a connected presentation bridge.
type Relay struct {
	baseURL   string
	path      string
	namespace string
	timeout   time.Duration

	manager *socket.Manager
	io      *socket.Socket
}

// New validates the relay configuration without connecting.
func New(cfg config.Relay) (*Relay, error) {
	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relay URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("relay URL %q needs a scheme and host", cfg.URL)
	}

	timeout := defaultTimeout
	if cfg.Timeout != "" {
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse relay timeout: %w", err)
		}
	}

	return &Relay{
		baseURL:   fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host),
		path:      parsedURL.Path,
		namespace: cfg.Namespace,
		timeout:   timeout,
	}, nil
}

// Start connects to the session server and subscribes to every field of the
// state container. It blocks until the initial connection is up or the
// timeout elapses. Forwarding after that point is best-effort: a dropped
// connection is handled by the socket.io manager's own reconnect logic.
func (r *Relay) Start(ctx context.Context, bus *eventbus.Bus, st *state.Container) error {
	logger := ctxlog.FromContext(ctx).With("relay", r.baseURL, "namespace", r.namespace)
	logger.Debug("Relay starting.")

	var isConnected atomic.Bool
	connected := make(chan error, 1)

	opts := socket.DefaultOptions()
	opts.SetPath(r.path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	r.manager = socket.NewManager(r.baseURL, opts)
	r.io = r.manager.Socket(r.namespace, opts)

	r.io.On(types.EventName("connect"), func(...any) {
		if isConnected.CompareAndSwap(false, true) {
			logger.Info("Relay connected.", "sid", r.io.Id())
			connected <- nil
		}
	})
	r.io.On(types.EventName("connect_error"), func(errs ...any) {
		if isConnected.Load() {
			return
		}
		err := fmt.Errorf("connect_error with no detail")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("connect_error: %v", errs[0])
			}
		}
		select {
		case connected <- err:
		default:
		}
	})

	r.io.Connect()

	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	select {
	case <-opCtx.Done():
		r.Close()
		return fmt.Errorf("timed out while waiting for relay connection to %s", r.baseURL)
	case err := <-connected:
		if err != nil {
			r.Close()
			return fmt.Errorf("relay connection failed: %w", err)
		}
	}

	for _, field := range st.Fields() {
		field := field
		bus.On(state.ChangedEvent(field), func(args ...any) {
			r.io.Emit(ChangeEmit, NewChangePayload(field, args))
		})
	}
	logger.Debug("Relay subscribed to state fields.", "fields", len(st.Fields()))
	return nil
}

// Close disconnects the bridge. Handlers registered on the bus stay in
// place; emits on a disconnected socket are dropped by the client library.
func (r *Relay) Close() {
	if r.io != nil {
		r.io.Disconnect()
	}
}
