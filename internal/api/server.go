// Package api exposes the booking back office over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"omservice/internal/config"
	"omservice/internal/database"
	"omservice/internal/lifecycle"
	"omservice/internal/metrics"
	"omservice/internal/service"

	"github.com/rs/zerolog"
)

type Server struct {
	cfg      *config.Config
	bookings *service.BookingService
	partners *service.PartnerService
	reviews  *service.ReviewService
	catalog  *service.CatalogService
	server   *http.Server
	limiter  *rateLimiter
	log      zerolog.Logger
}

func NewServer(cfg *config.Config, bookings *service.BookingService, partners *service.PartnerService,
	reviews *service.ReviewService, catalog *service.CatalogService, logger *zerolog.Logger) *Server {
	srv := &Server{
		cfg:      cfg,
		bookings: bookings,
		partners: partners,
		reviews:  reviews,
		catalog:  catalog,
		limiter:  newRateLimiter(cfg.RateLimit),
	}
	if logger != nil {
		srv.log = logger.With().Str("component", "http").Logger()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings", srv.handleBookings)
	mux.HandleFunc("/api/bookings/", srv.handleBooking)
	mux.HandleFunc("/api/user-bookings/", srv.handleUserBookings)
	mux.HandleFunc("/api/reviews", srv.handleReviews)
	mux.HandleFunc("/api/reviews/", srv.handleReview)
	mux.HandleFunc("/api/services", srv.handleServices)
	mux.HandleFunc("/api/admin/login", srv.handleAdminLogin)
	mux.HandleFunc("/api/admin/statistics", srv.handleStatistics)
	mux.HandleFunc("/api/admin/analytics", srv.handleAnalytics)
	mux.HandleFunc("/api/admin/upload", srv.handleAdminUpload)
	mux.HandleFunc("/api/admin/export/excel", srv.handleExportExcel)
	mux.HandleFunc("/api/admin/export/statistics", srv.handleExportStatistics)
	mux.HandleFunc("/api/admin/export/pdf", srv.handleExportAnalyticsPDF)
	mux.HandleFunc("/api/admin/export/pdf/", srv.handleExportBookingPDF)
	mux.HandleFunc("/api/join", srv.handleJoin)
	mux.HandleFunc("/api/partners", srv.handlePartners)
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.Handle("/uploads/", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.Uploads.Path))))

	handler := srv.loggingMiddleware(srv.limiter.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Report rendering can take a while on large collections.
		WriteTimeout: 60 * time.Second,
	}

	return srv
}

// Handler returns the full middleware chain. Tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(endpointLabel(r.URL.Path))
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// endpointLabel collapses request paths into a small fixed label set so
// path parameters never leak into metric labels.
func endpointLabel(path string) string {
	switch {
	case path == "/api/bookings":
		return "bookings"
	case strings.HasPrefix(path, "/api/bookings/"):
		return "booking_detail"
	case strings.HasPrefix(path, "/api/user-bookings/"):
		return "user_bookings"
	case strings.HasPrefix(path, "/api/admin/export/"):
		return "export"
	case strings.HasPrefix(path, "/api/reviews"):
		return "reviews"
	case path == "/api/services":
		return "services"
	case path == "/api/admin/statistics":
		return "statistics"
	case path == "/api/admin/analytics":
		return "analytics"
	case path == "/api/admin/upload":
		return "upload"
	case path == "/api/admin/login":
		return "login"
	case path == "/api/join":
		return "join"
	case path == "/api/partners":
		return "partners"
	case path == "/healthz":
		return "health"
	case strings.HasPrefix(path, "/uploads/"):
		return "uploads"
	default:
		return "other"
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"success": false, "message": message})
}

// writeServiceError maps storage and lifecycle errors onto HTTP codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, database.ErrValidation), errors.Is(err, lifecycle.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
