// internal/api/session_handler.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/andrecollier/website-builder-sub004/internal/common/errors"
	"github.com/andrecollier/website-builder-sub004/internal/common/metrics"
	"github.com/andrecollier/website-builder-sub004/internal/harmony"
	"github.com/andrecollier/website-builder-sub004/internal/merger"
	"github.com/andrecollier/website-builder-sub004/internal/models"
)

type createSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.store.CreateSession(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{Success: true, SessionID: sessionID})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSession(r.Context(), r.PathValue("sid")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addReferenceRequest struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

type referenceResponse struct {
	Success   bool              `json:"success"`
	Reference *models.Reference `json:"reference"`
}

func (s *Server) handleAddReference(w http.ResponseWriter, r *http.Request) {
	var req addReferenceRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.URL == "" {
		s.writeError(w, apperrors.NewInvalidRequestError("url is required"))
		return
	}

	ref, err := s.store.AddReference(r.Context(), r.PathValue("sid"), req.URL, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, referenceResponse{Success: true, Reference: ref})
}

type listReferencesResponse struct {
	Success    bool                `json:"success"`
	References []*models.Reference `json:"references"`
}

func (s *Server) handleListReferences(w http.ResponseWriter, r *http.Request) {
	refs, err := s.store.ListReferences(r.Context(), r.PathValue("sid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listReferencesResponse{Success: true, References: refs})
}

type deliverTokensRequest struct {
	Tokens *models.DesignSystem `json:"tokens"`
}

// handleDeliverTokens is the hand-off point of the extraction pipeline:
// it walks the reference through processing into ready with its tokens.
func (s *Server) handleDeliverTokens(w http.ResponseWriter, r *http.Request) {
	var req deliverTokensRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Tokens == nil {
		s.writeError(w, apperrors.NewInvalidRequestError("tokens are required"))
		return
	}

	sessionID, referenceID := r.PathValue("sid"), r.PathValue("id")

	ref, err := s.store.GetReference(r.Context(), sessionID, referenceID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if ref.Status != models.StatusProcessing {
		if _, err := s.store.UpdateStatus(r.Context(), sessionID, referenceID, models.StatusProcessing, nil); err != nil {
			s.writeError(w, err)
			return
		}
	}

	ref, err = s.store.UpdateStatus(r.Context(), sessionID, referenceID, models.StatusReady, req.Tokens)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, referenceResponse{Success: true, Reference: ref})
}

type updateSectionsRequest struct {
	SectionMapping models.SectionMapping `json:"sectionMapping"`
	Options        *harmony.CheckOptions `json:"options,omitempty"`
}

type updateSectionsResponse struct {
	Success bool                  `json:"success"`
	Harmony *models.HarmonyResult `json:"harmony,omitempty"`
}

// handleUpdateSections stores the mapping and answers with the live
// harmony of the sources the mapping actually uses.
func (s *Server) handleUpdateSections(w http.ResponseWriter, r *http.Request) {
	var req updateSectionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.validateSectionTypes(req.SectionMapping); err != nil {
		s.writeError(w, err)
		return
	}

	sessionID := r.PathValue("sid")
	if err := s.store.SetSectionMapping(r.Context(), sessionID, req.SectionMapping); err != nil {
		s.writeError(w, err)
		return
	}

	refs, err := s.store.ListReferences(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := updateSectionsResponse{Success: true}
	used := harmony.UsedReferences(req.SectionMapping, refs)
	if harmony.CanCalculate(used) {
		resp.Harmony = s.checker.Calculate(used, req.SectionMapping, req.Options)
		metrics.HarmonyChecksTotal.WithLabelValues("sections").Inc()
		metrics.HarmonyScore.Observe(float64(resp.Harmony.Score))
		s.live.Broadcast(liveFrame{Type: "harmony", SessionID: sessionID, Result: resp.Harmony})
	}
	writeJSON(w, http.StatusOK, resp)
}

type sessionMergeRequest struct {
	Strategy models.MergeStrategy `json:"strategy"`
	Options  *mergeOptions        `json:"options,omitempty"`
}

func (s *Server) handleSessionMerge(w http.ResponseWriter, r *http.Request) {
	var req sessionMergeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	refs, err := s.store.ListReferences(r.Context(), r.PathValue("sid"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.merge(merger.Input{References: refs, Strategy: req.Strategy}, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mergeResponse{Success: true, Result: result})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	return nil
}
