package api

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"omservice/internal/report"
	"omservice/internal/stats"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Admin.Password)) == 1
	if !userOK || !passOK {
		s.log.Warn().Str("username", req.Username).Msg("Admin login failed")
		writeError(w, http.StatusUnauthorized, "Invalid Admin Credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Welcome back!"})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	summary, err := s.bookings.Statistics(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "statistics unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "statistics": summary})
}

// handleAnalytics serves the admin dashboard headline numbers. There is
// no user store, so the customer count stands in for registered users.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	summary, err := s.bookings.Statistics(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "analytics unavailable")
		return
	}
	reviewsCount, err := s.reviews.Count(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "analytics unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"totalBookings": summary.TotalBookings,
		"usersCount":    summary.UniqueCustomers,
		"reviewsCount":  reviewsCount,
		"serviceStats":  summary.ByService,
	})
}

// handleAdminUpload stores a single image and hands back its public URL
// for the admin to paste into catalog listings.
func (s *Server) handleAdminUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}

	path, err := s.saveUpload(files[0], "image")
	if err != nil {
		s.log.Error().Err(err).Str("filename", files[0].Filename).Msg("Image upload failed")
		writeError(w, http.StatusInternalServerError, "Image upload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "imageUrl": path})
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListUnpaged(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteBookings(&buf, bookings); err != nil {
		s.log.Error().Err(err).Msg("Excel export failed")
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	filename := fmt.Sprintf("OM_Service_Bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	serveAttachment(w, contentTypeXLSX, filename, buf.Bytes())
}

func (s *Server) handleExportStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.bookings.Snapshot(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteStatistics(&buf, stats.Summarize(bookings)); err != nil {
		s.log.Error().Err(err).Msg("Statistics export failed")
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	filename := fmt.Sprintf("OM_Service_Statistics_%s.xlsx", time.Now().Format("2006-01-02"))
	serveAttachment(w, contentTypeXLSX, filename, buf.Bytes())
}

func (s *Server) handleExportAnalyticsPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := s.bookings.Snapshot(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteAnalytics(&buf, bookings); err != nil {
		s.log.Error().Err(err).Msg("Analytics PDF failed")
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	filename := fmt.Sprintf("OM_Service_Analytics_%s.pdf", time.Now().Format("2006-01-02"))
	serveAttachment(w, contentTypePDF, filename, buf.Bytes())
}

func (s *Server) handleExportBookingPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := pathSuffix(r.URL.Path, "/api/admin/export/pdf/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	// Resolve the booking before any bytes go out, so a missing id is a
	// clean 404 rather than a broken download.
	b, err := s.bookings.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteBookingConfirmation(&buf, b); err != nil {
		s.log.Error().Err(err).Msg("Booking PDF failed")
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	serveAttachment(w, contentTypePDF, fmt.Sprintf("Booking_%s.pdf", b.ShortID()), buf.Bytes())
}

func serveAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	_, _ = w.Write(body)
}
