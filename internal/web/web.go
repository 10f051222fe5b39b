package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tripcal/internal/calendar"
	"tripcal/internal/clock"
	"tripcal/internal/config"
	"tripcal/internal/ics"
	applog "tripcal/internal/log"
	"tripcal/internal/tz"
)

// Server provides the HTTP API and the embedded calendar UI. It owns no
// itinerary state of its own; the week window lives in the injected
// calendar.Manager and the item list is immutable after startup.
type Server struct {
	cfg     *config.Config
	manager *calendar.Manager
	clk     *clock.Source
	homeLoc *time.Location
	debug   bool
	mux     *http.ServeMux

	// Cached ICS export; the item list never changes after load, so the
	// serialization is done at most once.
	icsMu    sync.Mutex
	icsCache string
}

// embeddedStatic contains the static calendar UI.
//
//go:embed all:static
var embeddedStatic embed.FS

// NewServer constructs a Server around the injected manager and clock.
func NewServer(cfg *config.Config, manager *calendar.Manager, clk *clock.Source, debug bool) *Server {
	s := &Server{
		cfg:     cfg,
		manager: manager,
		clk:     clk,
		homeLoc: tz.LocationOrUTC(cfg.HomeTimezone),
		debug:   debug,
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		applog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password counts as disabled.
	if s.cfg.BasicAuth.Username == "" || s.cfg.BasicAuth.Password == "" {
		return false
	}
	return true
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /health stays reachable without credentials.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="TripCal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// StartServer starts an HTTP server bound to cfg.Listen. Shutdown is
// driven by ctx through http.Server.
func StartServer(ctx context.Context, cfg *config.Config, manager *calendar.Manager, clk *clock.Source, debug bool) error {
	s := NewServer(cfg, manager, clk, debug)
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	applog.Info("starting HTTP server", "listen", "http://"+cfg.Listen, "debug", debug)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/items", s.handleItems)
	s.mux.HandleFunc("/api/week", s.handleWeek)
	s.mux.HandleFunc("/api/week/next", s.handleAction(calendar.ActionNextWeek))
	s.mux.HandleFunc("/api/week/prev", s.handleAction(calendar.ActionPrevWeek))
	s.mux.HandleFunc("/api/week/today", s.handleAction(calendar.ActionGoToday))
	s.mux.HandleFunc("/api/day/select", s.handleSelectDay)
	s.mux.HandleFunc("/api/item/select", s.handleSelectItem)
	s.mux.HandleFunc("/api/item/close", s.handleAction(calendar.ActionCloseItem))
	s.mux.HandleFunc("/itinerary.ics", s.handleICS)
	s.mux.HandleFunc("/preview.png", s.handlePreview)

	// Static UI; all non-API paths fall back to this handler.
	s.mux.Handle("/", s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleItems returns the raw loaded item list.
func (s *Server) handleItems(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.Items())
}

// handleWeek returns the active week window with per-day buckets, layout
// geometry, navigation guards, countdown and now-indicator.
//
// GET /api/week?currentDate=2026-08-05T10:00:00
//   - currentDate: optional debug override for "now"; invalid or absent
//     values fall back to the real clock.
func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.buildWeekView(s.requestClock(r)))
}

// handleAction dispatches a parameterless manager action and returns the
// refreshed week view.
func (s *Server) handleAction(kind calendar.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		clk := s.requestClock(r)
		action := calendar.Action{Kind: kind}
		if kind == calendar.ActionGoToday {
			action.Today = s.today(clk)
		}
		s.manager.Dispatch(action)
		writeJSON(w, http.StatusOK, s.buildWeekView(clk))
	}
}

// handleSelectDay focuses one day of the window (narrow viewports).
//
// POST /api/day/select  {"index": 0..6}
func (s *Server) handleSelectDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Index < 0 || req.Index > 6 {
		writeError(w, http.StatusBadRequest, "day index out of range")
		return
	}
	s.manager.Dispatch(calendar.Action{Kind: calendar.ActionSelectDay, DayIndex: req.Index})
	writeJSON(w, http.StatusOK, s.buildWeekView(s.requestClock(r)))
}

// handleSelectItem opens the detail view for one item.
//
// POST /api/item/select  {"index": n}  — index into the loaded item list.
func (s *Server) handleSelectItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	items := s.manager.Items()
	if req.Index < 0 || req.Index >= len(items) {
		writeError(w, http.StatusBadRequest, "item index out of range")
		return
	}
	item := items[req.Index]
	s.manager.Dispatch(calendar.Action{Kind: calendar.ActionSelectItem, Item: &item})
	writeJSON(w, http.StatusOK, s.buildWeekView(s.requestClock(r)))
}

// handleICS serves the itinerary as an iCalendar subscription feed.
func (s *Server) handleICS(w http.ResponseWriter, _ *http.Request) {
	s.icsMu.Lock()
	if s.icsCache == "" {
		s.icsCache = ics.Export(s.manager.Items(), "Trip "+s.cfg.TripStart)
	}
	body := s.icsCache
	s.icsMu.Unlock()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// handlePreview serves the last captured PNG snapshot from the cache dir.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.cfg.CacheDir, "preview.png"))
}

// requestClock builds the per-request clock: a currentDate query
// parameter overrides the base source for this response only.
func (s *Server) requestClock(r *http.Request) *clock.Source {
	if override := r.URL.Query().Get("currentDate"); override != "" {
		return clock.NewSource(override, s.homeLoc)
	}
	return s.clk
}

// staticFileServer returns an http.Handler serving the embedded UI.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		applog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static UI not available", http.StatusServiceUnavailable)
		})
	}

	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Never serve HTML for /api/* paths; a missing API route is 404.
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			http.NotFound(w, r)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
