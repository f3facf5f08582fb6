// internal/api/harmony_handler.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/andrecollier/website-builder-sub004/internal/common/errors"
	"github.com/andrecollier/website-builder-sub004/internal/common/metrics"
	"github.com/andrecollier/website-builder-sub004/internal/harmony"
	"github.com/andrecollier/website-builder-sub004/internal/models"
)

type harmonyCheckRequest struct {
	References     []*models.Reference   `json:"references"`
	SectionMapping models.SectionMapping `json:"sectionMapping,omitempty"`
	Options        *harmony.CheckOptions `json:"options,omitempty"`
}

type harmonyCheckResponse struct {
	Success bool                  `json:"success"`
	Result  *models.HarmonyResult `json:"result"`
}

func (s *Server) handleHarmonyCheck(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	if violations := validateSchema(harmonyCheckSchema, body); len(violations) > 0 {
		s.writeError(w, apperrors.NewSchemaValidationError(violations))
		return
	}

	var req harmonyCheckRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	if err := s.validateSectionTypes(req.SectionMapping); err != nil {
		s.writeError(w, err)
		return
	}

	if !harmony.CanCalculate(req.References) {
		s.writeError(w, apperrors.NewInsufficientInputError(
			"harmony needs at least two ready references with color tokens"))
		return
	}

	result := s.checker.Calculate(req.References, req.SectionMapping, req.Options)

	metrics.HarmonyChecksTotal.WithLabelValues("http").Inc()
	metrics.HarmonyScore.Observe(float64(result.Score))

	writeJSON(w, http.StatusOK, harmonyCheckResponse{Success: true, Result: result})
}
