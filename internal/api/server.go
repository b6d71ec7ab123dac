package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MikeSquared-Agency/chat2repo/internal/config"
	"github.com/MikeSquared-Agency/chat2repo/internal/github"
	"github.com/MikeSquared-Agency/chat2repo/internal/parser"
	"github.com/MikeSquared-Agency/chat2repo/internal/session"
)

const serviceName = "chat2repo"

// CredentialValidator checks GitHub credentials.
type CredentialValidator interface {
	Validate(ctx context.Context, token, username string) (*github.Profile, error)
}

// Publisher sends events to the bus. A nil Publisher disables publishing.
type Publisher interface {
	Publish(subject string, data any) error
}

type Server struct {
	router *chi.Mux
	http   *http.Server

	cfg       config.Config
	version   string
	parser    *parser.Parser
	sessions  *session.Cache
	validator CredentialValidator
	events    Publisher
	logger    *slog.Logger
	started   time.Time
}

func NewServer(cfg config.Config, version string, p *parser.Parser, sessions *session.Cache, validator CredentialValidator, events Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestSize(cfg.MaxBodyBytes))

	s := &Server{
		router:    router,
		cfg:       cfg,
		version:   version,
		parser:    p,
		sessions:  sessions,
		validator: validator,
		events:    events,
		logger:    logger,
		started:   time.Now(),
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Route("/api", func(r chi.Router) {
		r.Use(RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Get("/health", s.health)
		r.Post("/parse-conversation", s.parseConversation)
		r.Get("/parsed-data/{sessionID}", s.parsedData)
		r.Post("/validate-github", s.validateGitHub)
	})

	return s
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Service   string  `json:"service"`
	Version   string  `json:"version"`
	Uptime    float64 `json:"uptime"`
	Parser    string  `json:"parser"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Version:   s.version,
		Uptime:    time.Since(s.started).Seconds(),
		Parser:    "parser/" + parser.Version,
	})
}

// fieldError reports one failed request validation.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []fieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody decodes a JSON request body, writing the error response itself
// and returning false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
	return false
}
