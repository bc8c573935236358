package app

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vk/stageview/internal/state"
)

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// stateHandler serves a JSON snapshot of the observable state, so the host
// page (or an operator) can inspect progress and mode without the relay.
func stateHandler(st *state.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st.Snapshot())
	}
}

// startStatusServer initializes and runs the status HTTP server.
func (a *App) startStatusServer(port int, st *state.Container) {
	a.logger.Debug("Configuring status server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/state", stateHandler(st))

	addr := fmt.Sprintf(":%d", port)

	go func() {
		a.logger.Info("Status server starting", "address", fmt.Sprintf("http://localhost%s/state", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("Status server failed", "error", err)
		}
	}()
}
