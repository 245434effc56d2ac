// Package dashboard exposes the read API over persisted snapshots plus the
// feedback write-back endpoint.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/model"
	"CryptoPulse/internal/store"
)

// Server serves the dashboard HTTP API.
type Server struct {
	store store.Store
	log   *logrus.Logger
}

// NewServer creates a Server over the given store.
func NewServer(st store.Store, log *logrus.Logger) *Server {
	return &Server{store: st, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/snapshots", s.handleSnapshots)
		r.Get("/snapshots/latest", s.handleLatest)
		r.Post("/snapshots/{id}/feedback", s.handleFeedback)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSnapshots returns the full history, newest run first. An optional
// coin query parameter filters to one asset.
func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.store.LoadAll(r.Context())
	if err != nil {
		s.log.Errorf("load snapshots: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load snapshots")
		return
	}

	if coin := r.URL.Query().Get("coin"); coin != "" {
		filtered := snapshots[:0:0]
		for _, snap := range snapshots {
			if strings.EqualFold(snap.Coin, coin) {
				filtered = append(filtered, snap)
			}
		}
		snapshots = filtered
	}
	if snapshots == nil {
		snapshots = []model.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// latestResponse is the latest snapshot with the multi-day high forecast
// decoded from its stored JSON form.
type latestResponse struct {
	model.Snapshot
	HighForecast []model.ForecastPoint `json:"high_forecast"`
}

// handleLatest returns the most recent snapshot for one coin, with the
// 5-day high forecast decoded for direct charting.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	coin := r.URL.Query().Get("coin")
	if coin == "" {
		writeError(w, http.StatusBadRequest, "coin query parameter is required")
		return
	}

	snapshots, err := s.store.LoadAll(r.Context())
	if err != nil {
		s.log.Errorf("load snapshots: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load snapshots")
		return
	}

	for _, snap := range snapshots {
		if !strings.EqualFold(snap.Coin, coin) {
			continue
		}
		resp := latestResponse{Snapshot: snap}
		if err := json.Unmarshal([]byte(snap.HighForecast5D), &resp.HighForecast); err != nil {
			s.log.Warnf("snapshot %d: malformed high forecast: %v", snap.ID, err)
			resp.HighForecast = []model.ForecastPoint{}
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeError(w, http.StatusNotFound, "no snapshots for coin "+coin)
}

type feedbackRequest struct {
	Feedback   string `json:"feedback"`
	Correction string `json:"correction"`
}

func validDecision(d string) bool {
	return d == "Confirmed" || d == "Denied"
}

// handleFeedback records the user's decision on one snapshot.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot id")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validDecision(req.Feedback) {
		writeError(w, http.StatusBadRequest, `feedback must be "Confirmed" or "Denied"`)
		return
	}

	if err := s.store.UpdateFeedback(r.Context(), id, req.Feedback, req.Correction); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found")
			return
		}
		s.log.Errorf("update feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("dashboard listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
