// internal/api/merge_handler.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	apperrors "github.com/andrecollier/website-builder-sub004/internal/common/errors"
	"github.com/andrecollier/website-builder-sub004/internal/common/metrics"
	"github.com/andrecollier/website-builder-sub004/internal/merger"
	"github.com/andrecollier/website-builder-sub004/internal/models"
)

type mergeOptions struct {
	Strict bool `json:"strict"`
}

type mergeRequest struct {
	References []*models.Reference  `json:"references"`
	Strategy   models.MergeStrategy `json:"strategy"`
	Options    *mergeOptions        `json:"options,omitempty"`
}

type mergeResponse struct {
	Success bool           `json:"success"`
	Result  *merger.Result `json:"result"`
}

func (s *Server) handleMergeTokens(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	if violations := validateSchema(mergeSchema, body); len(violations) > 0 {
		s.writeError(w, apperrors.NewSchemaValidationError(violations))
		return
	}

	var req mergeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	result, err := s.merge(merger.Input{References: req.References, Strategy: req.Strategy}, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mergeResponse{Success: true, Result: result})
}

// merge runs the engine with instrumentation and maps its sentinel errors
// onto coded API errors.
func (s *Server) merge(input merger.Input, opts *mergeOptions) (*merger.Result, error) {
	engineOpts := &merger.Options{}
	if opts != nil {
		engineOpts.Strict = opts.Strict
	}

	start := time.Now()
	result, err := merger.MergeTokens(input, engineOpts)
	metrics.MergeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.MergesTotal.WithLabelValues("error").Inc()
		return nil, mapMergeError(err)
	}

	metrics.MergesTotal.WithLabelValues("ok").Inc()
	if n := len(result.FailedOverrides); n > 0 {
		metrics.OverridesFailedTotal.Add(float64(n))
	}
	return result, nil
}

func mapMergeError(err error) error {
	switch {
	case errors.Is(err, merger.ErrStrategyInvalid):
		return apperrors.NewStrategyInvalidError(err.Error())
	case errors.Is(err, merger.ErrBaseTokensMissing):
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeBaseTokensMissing,
			Message:   "Base reference has no tokens",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	case errors.Is(err, merger.ErrReferenceNotReady):
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeReferenceNotReady,
			Message:   "A referenced source is not ready",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	case errors.Is(err, merger.ErrOverrideFailed):
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeOverrideFailed,
			Message:   "An override could not be applied",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	default:
		return err
	}
}
