package api

import (
	"encoding/json"
	"net/http"

	"omservice/internal/models"
	"omservice/internal/service"
)

// Handlers for the public-site content the admin curates: customer
// reviews and the per-category service catalog.

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReviews(w, r)
	case http.MethodPost:
		s.createReview(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "Review not found")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "reviews": reviews})
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	var req models.Review
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.reviews.Create(r.Context(), &req); err != nil {
		s.writeServiceError(w, err, "Review not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "review": req})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	id := pathSuffix(r.URL.Path, "/api/reviews/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "review id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateReview(w, r, id)
	case http.MethodDelete:
		s.deleteReview(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Name        *string `json:"name"`
		Rating      *int    `json:"rating"`
		Comment     *string `json:"comment"`
		ServiceType *string `json:"serviceType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	review, err := s.reviews.Update(r.Context(), id, service.ReviewUpdate{
		Name:        req.Name,
		Rating:      req.Rating,
		Comment:     req.Comment,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		s.writeServiceError(w, err, "Review not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "review": review})
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.reviews.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, err, "Review not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Review deleted successfully",
	})
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listServices(w, r)
	case http.MethodPost:
		s.upsertService(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	listings, err := s.catalog.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.writeServiceError(w, err, "Service not found")
		return
	}
	if listings == nil {
		listings = []models.ServiceListing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "services": listings})
}

func (s *Server) upsertService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceListing
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.catalog.Upsert(r.Context(), &req); err != nil {
		s.writeServiceError(w, err, "Service not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "service": req})
}
