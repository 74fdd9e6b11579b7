package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"omservice/internal/models"
	"omservice/internal/service"

	"github.com/google/uuid"
)

// maxUploadBytes caps a single partner image at 5 MB.
const maxUploadBytes = 5 << 20

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	p := &models.Partner{
		Category:     r.FormValue("category"),
		Name:         r.FormValue("name"),
		Mobile:       r.FormValue("mobile"),
		Email:        r.FormValue("email"),
		Address:      r.FormValue("address"),
		TeamSize:     r.FormValue("teamSize"),
		MenuItems:    r.FormValue("menuItems"),
		VehicleModel: r.FormValue("vehicleModel"),
		CameraModel:  r.FormValue("cameraModel"),
		SweetType:    r.FormValue("sweetType"),
	}
	// The form may repeat the details field; collapse into one value.
	p.Details = service.CollapseDetails(r.MultipartForm.Value["details"])

	files := r.MultipartForm.File["images"]
	if len(files) > models.MaxPartnerImages {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("at most %d images allowed", models.MaxPartnerImages))
		return
	}

	for _, fh := range files {
		path, err := s.saveUpload(fh, "images")
		if err != nil {
			s.log.Error().Err(err).Str("filename", fh.Filename).Msg("Image upload failed")
			writeError(w, http.StatusInternalServerError, "Image upload failed")
			return
		}
		p.Images = append(p.Images, path)
	}

	if err := s.partners.Create(r.Context(), p); err != nil {
		s.writeServiceError(w, err, "Partner not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Request submitted successfully!",
	})
}

func (s *Server) handlePartners(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	partners, err := s.partners.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "Partner not found")
		return
	}
	if partners == nil {
		partners = []models.Partner{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "partners": partners})
}

// saveUpload writes one multipart file under the uploads directory with
// a collision-free name derived from the form field and returns the
// public path.
func (s *Server) saveUpload(fh *multipart.FileHeader, field string) (string, error) {
	if fh.Size > maxUploadBytes {
		return "", fmt.Errorf("file %s exceeds %d bytes", fh.Filename, maxUploadBytes)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.cfg.Uploads.Path, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := fmt.Sprintf("%s-%d-%s%s",
		field, time.Now().UnixMilli(), uuid.NewString()[:8], filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(s.cfg.Uploads.Path, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + name, nil
}
