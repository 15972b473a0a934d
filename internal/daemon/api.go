package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// writeJSON encodes payload before touching the response, so an encoding
// failure still yields a 500 envelope instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("encoding response", "err", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorEnvelope{Error: errorBody{Code: "encoding_failed", Message: "response could not be encoded"}})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

// Handler returns the HTTP API. Every route is read-only.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	r.Get("/v1/stream", s.handleStream)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Get("/v1/status", s.handleStatus)
		r.Get("/v1/events", s.handleEvents)
		r.Get("/v1/summary", s.handleSummary)
		r.Get("/v1/members", s.handleMembers)
		r.Get("/v1/plan", s.handlePlan)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "the read API only serves GET")
	})
	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))

	sum, err := s.mess.Summary(r.Context(), from, to)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Service) handleMembers(w http.ResponseWriter, r *http.Request) {
	sum, err := s.mess.Summary(r.Context(), "", "")
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meal_rate": sum.MealRate,
		"members":   sum.Members,
	})
}

type planTier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Range   string `json:"range"`
	Tagline string `json:"tagline"`
}

type planResponse struct {
	Planner        model.PlannerStats     `json:"planner"`
	PlannerTier    planTier               `json:"planner_tier"`
	Meter          *model.MeterStats      `json:"meter,omitempty"`
	Calculator     model.CalculatorResult `json:"calculator"`
	CalculatorTier planTier               `json:"calculator_tier"`
}

func (s *Service) handlePlan(w http.ResponseWriter, r *http.Request) {
	in, err := parseCalculatorInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	pv, err := s.mess.Planner(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	cv, err := s.mess.Calculator(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := planResponse{
		Planner:        pv.Stats,
		PlannerTier:    planTier{ID: string(pv.Tier.ID), Name: pv.Tier.Name, Range: pv.Tier.Range, Tagline: pv.Tier.Tagline},
		Calculator:     cv.Result,
		CalculatorTier: planTier{ID: string(cv.Tier.ID), Name: cv.Tier.Label(), Range: cv.Tier.Range, Tagline: cv.Tier.Tagline},
	}
	if pv.HasMeter {
		m := pv.Meter
		resp.Meter = &m
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseCalculatorInput(r *http.Request) (model.CalculatorInput, error) {
	q := r.URL.Query()
	var in model.CalculatorInput
	if v := q.Get("budget"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return in, fmt.Errorf("invalid budget %q", v)
		}
		in.MonthlyBudget = f
	}
	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("invalid days %q", v)
		}
		in.Days = n
	}
	if v := q.Get("meals"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("invalid meals %q", v)
		}
		in.MealsPerDay = n
	}
	return in, nil
}

func (s *Service) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mess.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
		return
	case errors.Is(err, mess.ErrInvalidBudget):
		writeError(w, http.StatusBadRequest, "invalid_budget", err.Error())
		return
	}
	s.log.Error("read API request failed", "err", err)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: s.mess.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
