// Package server exposes the stored leads over a small read-only JSON API.
// Writes stay with the CLI commands; the server only reports.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

const defaultListLimit = 50

// Repository is the slice of the store the API reads from.
type Repository interface {
	Ping(ctx context.Context) error
	ListPeople(ctx context.Context, limit int) ([]model.PersonRecord, error)
	GetPersonByProfile(ctx context.Context, profile string) (*model.PersonRecord, error)
	ListCompanies(ctx context.Context, limit int) ([]model.CompanyRecord, error)
	GetCompanyByDomain(ctx context.Context, domain string) (*model.CompanyRecord, error)
	PendingEnrichment(ctx context.Context, limit int) ([]model.PendingCompany, error)
	DueOutreach(ctx context.Context, now time.Time) ([]model.OutreachMessage, error)
	ListOutreach(ctx context.Context, profile string) ([]model.OutreachMessage, error)
}

// Server serves the report API.
type Server struct {
	repo Repository
}

// New builds a Server over the given repository.
func New(repo Repository) *Server {
	return &Server{repo: repo}
}

// Router assembles the chi routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/people", s.handleListPeople)
		r.Get("/people/lookup", s.handleGetPerson)
		r.Get("/companies", s.handleListCompanies)
		r.Get("/companies/pending", s.handlePendingCompanies)
		r.Get("/companies/{domain}", s.handleGetCompany)
		r.Get("/outreach", s.handleListOutreach)
		r.Get("/outreach/due", s.handleDueOutreach)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.repo.ListPeople(r.Context(), queryLimit(r))
	if err != nil {
		serverError(w, "list people", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"people": people, "count": len(people)})
}

// handleGetPerson looks a person up by profile URL. The URL arrives as the
// ?profile= query parameter since it contains slashes itself.
func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if profile == "" {
		writeError(w, http.StatusBadRequest, "profile is required")
		return
	}
	person, err := s.repo.GetPersonByProfile(r.Context(), profile)
	if err != nil {
		serverError(w, "get person", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.repo.ListCompanies(r.Context(), queryLimit(r))
	if err != nil {
		serverError(w, "list companies", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies, "count": len(companies)})
}

func (s *Server) handlePendingCompanies(w http.ResponseWriter, r *http.Request) {
	pending, err := s.repo.PendingEnrichment(r.Context(), queryLimit(r))
	if err != nil {
		serverError(w, "pending companies", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": pending, "count": len(pending)})
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	company, err := s.repo.GetCompanyByDomain(r.Context(), domain)
	if err != nil {
		serverError(w, "get company", err)
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleListOutreach(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if profile == "" {
		writeError(w, http.StatusBadRequest, "profile is required")
		return
	}
	messages, err := s.repo.ListOutreach(r.Context(), profile)
	if err != nil {
		serverError(w, "list outreach", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages, "count": len(messages)})
}

func (s *Server) handleDueOutreach(w http.ResponseWriter, r *http.Request) {
	messages, err := s.repo.DueOutreach(r.Context(), time.Now())
	if err != nil {
		serverError(w, "due outreach", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages, "count": len(messages)})
}

func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return defaultListLimit
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serverError(w http.ResponseWriter, action string, err error) {
	zap.L().Error("request failed", zap.String("action", action), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
