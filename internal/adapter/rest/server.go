package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/simaogato/tradejournal-backend/internal/adapter/wire"
	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// Config holds server configuration
type Config struct {
	Port    int
	Log     zerolog.Logger
	Repo    domain.TradeRepository
	DevMode bool
}

// Server is the HTTP record service storing trades for the journal
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	repo   domain.TradeRepository
	port   int
}

// New creates a new record service
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "record_service").Logger(),
		repo:   cfg.Repo,
		port:   cfg.Port,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	// {id} is the owner's user id on GET and the trade id otherwise
	s.router.Route("/api/trades", func(r chi.Router) {
		r.Post("/", s.handleCreateTrade)
		r.Get("/{id}", s.handleListTrades)
		r.Put("/{id}", s.handleReplaceTrade)
		r.Delete("/{id}", s.handleDeleteTrade)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting record service")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down record service")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	trades, err := s.repo.FetchAll(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]wire.Trade, 0, len(trades))
	for _, t := range trades {
		out = append(out, wire.FromDomain(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	trade, ok := s.decodeTrade(w, r)
	if !ok {
		return
	}
	if trade.UserID == "" {
		writeJSON(w, http.StatusBadRequest, wire.ErrorResponse{Error: "userId is required"})
		return
	}
	trade.ID = ""

	saved, err := s.repo.Insert(r.Context(), trade)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromDomain(saved))
}

func (s *Server) handleReplaceTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trade, ok := s.decodeTrade(w, r)
	if !ok {
		return
	}
	trade.ID = id

	saved, err := s.repo.Replace(r.Context(), id, trade)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromDomain(saved))
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.repo.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) decodeTrade(w http.ResponseWriter, r *http.Request) (domain.Trade, bool) {
	var body wire.Trade
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, wire.ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return domain.Trade{}, false
	}

	trade, err := body.ToDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, wire.ErrorResponse{Error: err.Error()})
		return domain.Trade{}, false
	}
	return trade, true
}

// writeError maps repository errors to HTTP status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTradeNotFound):
		status = http.StatusNotFound
	case domain.IsValidationError(err):
		status = http.StatusBadRequest
	default:
		s.log.Error().Err(err).Msg("Repository call failed")
	}
	writeJSON(w, status, wire.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
