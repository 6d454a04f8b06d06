package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/demand-prediction/backend/internal/domain"
)

// uploadMultipartMemory caps how much of the multipart form is buffered in
// memory before spilling to disk. The overall request size is bounded
// separately by the max-body-size middleware.
const uploadMultipartMemory = 32 << 20 // 32 MiB

// uploadForm holds the non-file multipart fields. The validate tags mirror
// the documented bounds; violations are shape errors (422), not business
// errors.
type uploadForm struct {
	Mode       string `validate:"required,oneof=create update"`
	LimitRows  int    `validate:"gt=0,lte=1000000"`
	TopNRoutes int    `validate:"gt=0,lte=500"`
}

// handleUploadTrips handles POST /uploads/trips-parquet.
// Multipart fields: file (required), mode (required: create|update),
// limit_rows and top_n_routes (optional, defaulted from config).
func (s *Server) handleUploadTrips(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMultipartMemory); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request must be multipart/form-data")
		return
	}

	form := uploadForm{
		Mode:       r.FormValue("mode"),
		LimitRows:  s.uploadDefaults.LimitRows,
		TopNRoutes: s.uploadDefaults.TopNRoutes,
	}

	for field, dst := range map[string]*int{
		"limit_rows":   &form.LimitRows,
		"top_n_routes": &form.TopNRoutes,
	} {
		if raw := r.FormValue(field); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "validation_error",
					fmt.Sprintf("%s must be an integer", field))
				return
			}
			*dst = v
		}
	}

	if err := s.validate.Struct(form); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "file is required")
		return
	}
	defer file.Close()

	summary, err := s.uploads.ProcessTripFile(file, header.Size, domain.UploadParams{
		FileName:   header.Filename,
		Mode:       domain.UploadMode(form.Mode),
		LimitRows:  form.LimitRows,
		TopNRoutes: form.TopNRoutes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
