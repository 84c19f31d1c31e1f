package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/agentcore/logging"
)

// SessionHeader carries the runtime session identifier on invocation requests.
const SessionHeader = "X-Amzn-Bedrock-AgentCore-Runtime-Session-Id"

// DefaultAddr is the listen address the runtime contract expects.
const DefaultAddr = ":8080"

// Request is the payload delivered to the entrypoint.
type Request struct {
	// Prompt is the user message.
	Prompt string `json:"prompt"`

	// SessionID is taken from the invocation header, not the body.
	SessionID string `json:"-"`
}

// Response is returned to the caller as JSON.
type Response struct {
	Result    string `json:"result"`
	SessionID string `json:"session_id,omitempty"`
}

// Entrypoint handles one invocation.
type Entrypoint func(ctx context.Context, req Request) (Response, error)

// Options configures an App.
type Options struct {
	Addr   string
	Logger logging.Logger
}

// App serves the runtime contract around one entrypoint.
type App struct {
	entry Entrypoint
	addr  string
	log   logging.Logger
}

// New builds an App for the given entrypoint.
func New(entry Entrypoint, optFns ...func(o *Options)) *App {
	opts := Options{
		Addr:   DefaultAddr,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &App{entry: entry, addr: opts.Addr, log: opts.Logger}
}

// Handler returns the contract routes.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", a.handlePing)
	mux.HandleFunc("POST /invocations", a.handleInvocation)
	return mux
}

func (a *App) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Healthy"})
}

func (a *App) handleInvocation(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("decode payload: %v", err)})
		return
	}
	req.SessionID = r.Header.Get(SessionHeader)

	resp, err := a.entry(r.Context(), req)
	if err != nil {
		a.log.Error("invocation failed", "session_id", req.SessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	a.log.Info("invocation handled", "session_id", req.SessionID)
	writeJSON(w, http.StatusOK, resp)
}

// Run serves until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	a.log.Info("agent app listening", "addr", a.addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
