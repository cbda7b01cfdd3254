// Package http exposes a skein runtime over HTTP for out-of-process hosts:
// enqueueing dialogues, reading runner state, resolving choices, toggling
// the hold flag, and prometheus metrics. The tick loop itself stays with the
// embedding process; this surface never advances the runtime.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Semihazah/skein/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runtime is the slice of the skein facade the server needs. Methods are
// invoked from HTTP handler goroutines; embedders must ensure tick-thread
// affinity themselves (e.g. by running the tick loop and the server mux on
// the same executor or accepting the race for development tooling).
type Runtime interface {
	Enqueue(req domain.Request)
	Status() domain.Status
	SelectChoice(index int) error
	SetHold(hold bool)
	Held() bool
	QueueLen() int
}

// Server handles the HTTP surface.
type Server struct {
	runtime Runtime
	logger  *slog.Logger
}

// NewHandler builds the router. gatherer may be nil to omit /metrics.
func NewHandler(rt Runtime, logger *slog.Logger, gatherer prometheus.Gatherer) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{runtime: rt, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/dialogues", s.enqueue)
	r.Get("/status", s.status)
	r.Post("/choice", s.choice)
	r.Put("/hold", s.hold)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if gatherer != nil {
		r.Get("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	}
	return r
}

type enqueueRequest struct {
	Locator   string `json:"locator"`
	StartNode string `json:"start_node,omitempty"`
}

func (s *Server) enqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Locator == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("locator is required"))
		return
	}
	s.runtime.Enqueue(domain.Request{Locator: req.Locator, StartNode: req.StartNode})
	w.WriteHeader(http.StatusAccepted)
}

type statusResponse struct {
	Phase    domain.Phase    `json:"phase"`
	Substate domain.Substate `json:"substate,omitempty"`
	Script   string          `json:"script,omitempty"`
	Line     string          `json:"line,omitempty"`
	Choices  []string        `json:"choices,omitempty"`
	Held     bool            `json:"held"`
	Queued   int             `json:"queued"`
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	st := s.runtime.Status()
	s.writeJSON(w, http.StatusOK, statusResponse{
		Phase:    st.Phase,
		Substate: st.Substate,
		Script:   st.Script,
		Line:     st.Line,
		Choices:  st.Choices,
		Held:     s.runtime.Held(),
		Queued:   s.runtime.QueueLen(),
	})
}

type choiceRequest struct {
	Index int `json:"index"`
}

func (s *Server) choice(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.runtime.SelectChoice(req.Index); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSession), errors.Is(err, domain.ErrNoChoices):
			s.writeError(w, http.StatusConflict, err)
		default:
			s.writeError(w, http.StatusUnprocessableEntity, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type holdRequest struct {
	Held bool `json:"held"`
}

func (s *Server) hold(w http.ResponseWriter, r *http.Request) {
	var req holdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.runtime.SetHold(req.Held)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
