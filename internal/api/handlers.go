package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/versioning"
	"github.com/presenton/presenton-go/internal/uischema"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartGeneration(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TenantID     string `json:"tenant_id"`
		Topic        string `json:"topic"`
		Instructions string `json:"instructions,omitempty"`
		NumSlides    int    `json:"num_slides,omitempty"`
		Language     string `json:"language,omitempty"`
		Tone         string `json:"tone,omitempty"`
		TemplateID   string `json:"template_id,omitempty"`
		ExportFormat string `json:"export_format,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tenantID := requestTenant(r, body.TenantID)
	if tenantID == "" || body.Topic == "" {
		writeError(w, http.StatusBadRequest, "'tenant_id' and 'topic' fields are required")
		return
	}

	req := domain.NewGenerationRequest(body.Topic)
	req.Instructions = body.Instructions
	if body.NumSlides > 0 {
		req.NumSlides = body.NumSlides
	}
	if body.Language != "" {
		req.Language = body.Language
	}
	if body.Tone != "" {
		req.Tone = domain.Tone(body.Tone)
	}
	if body.TemplateID != "" {
		req.TemplateID = body.TemplateID
	}
	if body.ExportFormat != "" {
		req.ExportFormat = domain.ExportFormat(body.ExportFormat)
	}

	tenant := domain.NewTenantContext(tenantID)
	tenant.ReviewRequired = s.reviewRequired
	result, err := s.orch.StartGeneration(r.Context(), tenant, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, result)
}

func (s *Server) handleListPresentations(w http.ResponseWriter, r *http.Request) {
	opts := orchestrator.ListOptions{
		TaskQueue: versioning.QueueGenerate,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		opts.StatusFilter = status
	}
	if size := r.URL.Query().Get("page_size"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			opts.PageSize = n
		}
	}

	summaries, err := s.orch.ListPresentations(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetPresentation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "workflow id required")
		return
	}

	result, err := s.orch.GetState(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetPresentationUI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "workflow id required")
		return
	}

	result, err := s.orch.GetState(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	schema := uischema.Build(result.State)
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.handleReviewAction(w, r, true)
}

func (s *Server) handleDeny(w http.ResponseWriter, r *http.Request) {
	s.handleReviewAction(w, r, false)
}

func (s *Server) handleReviewAction(w http.ResponseWriter, r *http.Request, approved bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "workflow id required")
		return
	}

	var body struct {
		By     string `json:"by"`
		Reason string `json:"reason,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.By == "" {
		writeError(w, http.StatusBadRequest, "'by' field is required")
		return
	}

	resp := activities.ReviewResponse{
		Approved: approved,
		By:       body.By,
		Reason:   body.Reason,
	}
	result, err := s.orch.SubmitOutlineReview(r.Context(), id, resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "workflow id required")
		return
	}

	if err := s.orch.CancelGeneration(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "cancellation requested"})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	if s.templates == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, s.templates.List())
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	if s.decks == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	tenantID := r.URL.Query().Get("tenant_id")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := s.decks.List(r.Context(), tenantID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}
