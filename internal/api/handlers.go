package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"omservice/internal/database"
	"omservice/internal/models"
	"omservice/internal/service"
)

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBookings(w, r)
	case http.MethodPost:
		s.createBooking(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var b models.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if b.Name == "" || b.ServiceType == "" {
		writeError(w, http.StatusBadRequest, "Name and Service Type are required")
		return
	}

	// Server-assigned fields; clients cannot seed state.
	b.ID = ""
	b.Status = ""
	b.StatusHistory = nil

	if err := s.bookings.Create(r.Context(), &b); err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"booking": b,
		"message": "Booking created successfully",
	})
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, total, err := s.bookings.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	page, limit := filter.Normalize()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"bookings": bookings,
		"pagination": map[string]any{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": database.Pages(total, limit),
		},
	})
}

func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	id := pathSuffix(r.URL.Path, "/api/bookings/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		b, err := s.bookings.Get(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err, "Booking not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "booking": b})

	case http.MethodPut:
		s.updateBooking(w, r, id)

	case http.MethodDelete:
		if err := s.bookings.Delete(r.Context(), id); err != nil {
			s.writeServiceError(w, err, "Booking not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Booking deleted successfully",
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// updateBookingRequest carries a partial update. Absent fields stay
// untouched; statusNote annotates the history entry of a status change.
type updateBookingRequest struct {
	ServiceType *string                `json:"serviceType"`
	ServiceName *string                `json:"serviceName"`
	Name        *string                `json:"name"`
	Age         *int64                 `json:"age"`
	Phone       *string                `json:"phone"`
	Email       *string                `json:"email"`
	Address     *string                `json:"address"`
	Date        *string                `json:"date"`
	Notes       *string                `json:"notes"`
	TotalAmount *string                `json:"totalAmount"`
	Status      *string                `json:"status"`
	StatusNote  *string                `json:"statusNote"`
	ChangedBy   *string                `json:"changedBy"`
	Details     *models.ServiceDetails `json:"details"`
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request, id string) {
	var req updateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	b, err := s.bookings.Update(r.Context(), id, service.BookingUpdate{
		ServiceType: req.ServiceType,
		ServiceName: req.ServiceName,
		Name:        req.Name,
		Age:         req.Age,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Date:        req.Date,
		Notes:       req.Notes,
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
		StatusNote:  req.StatusNote,
		ChangedBy:   req.ChangedBy,
		Details:     req.Details,
	})
	if err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"booking": b,
		"message": "Booking updated successfully",
	})
}

func (s *Server) handleUserBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	email := pathSuffix(r.URL.Path, "/api/user-bookings/")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	bookings, err := s.bookings.ListByEmail(r.Context(), email)
	if err != nil {
		s.writeServiceError(w, err, "Booking not found")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "bookings": bookings})
}

// filterFromQuery parses listing parameters. Unparsable page and limit
// fall back to defaults; a malformed date is a client error.
func filterFromQuery(r *http.Request) (database.BookingFilter, error) {
	q := r.URL.Query()
	filter := database.BookingFilter{
		ServiceType: strings.TrimSpace(q.Get("serviceType")),
		Status:      strings.TrimSpace(q.Get("status")),
		Search:      strings.TrimSpace(q.Get("search")),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	var err error
	if filter.StartDate, err = parseDateParam(q.Get("startDate")); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseDateParam(q.Get("endDate")); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseDateParam(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errInvalidDate
	}
	return &t, nil
}

var errInvalidDate = errors.New("invalid date format; expected YYYY-MM-DD")

func pathSuffix(path, prefix string) string {
	suffix := strings.TrimPrefix(path, prefix)
	suffix = strings.TrimSpace(suffix)
	if suffix == "" || strings.Contains(suffix, "/") {
		return ""
	}
	return suffix
}
