// internal/handlers/optimization_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adpulse/internal/models"
	"adpulse/internal/optimizer"
)

type OptimizationHandler struct {
	engine *optimizer.Engine
	logger *zap.Logger
}

func NewOptimizationHandler(engine *optimizer.Engine, logger *zap.Logger) *OptimizationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptimizationHandler{engine: engine, logger: logger}
}

// GetPerformance handles GET /api/v1/campaigns/{id}/performance
func (h *OptimizationHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	perf, err := h.engine.Analyze(r.Context(), campaignID)
	if err != nil {
		h.writeAnalysisError(w, campaignID, "analyze_failed", "Failed to analyze campaign", err)
		return
	}

	writeJSON(w, http.StatusOK, perf)
}

// AutoOptimize handles POST /api/v1/campaigns/{id}/auto-optimize
func (h *OptimizationHandler) AutoOptimize(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	result, err := h.engine.AutoOptimize(r.Context(), campaignID)
	if err != nil {
		h.writeAnalysisError(w, campaignID, "auto_optimize_failed", "Failed to auto-optimize campaign", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetInsights handles GET /api/v1/optimization/insights
func (h *OptimizationHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.engine.Insights(r.Context(), requestUserID(r))
	if err != nil {
		h.logger.Error("optimization insights failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "insights_failed", "Failed to compute insights")
		return
	}

	writeJSON(w, http.StatusOK, insights)
}

// OptimizeCampaign handles POST /api/v1/campaigns/{id}/optimize
func (h *OptimizationHandler) OptimizeCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	recs, err := h.engine.OptimizeCampaign(r.Context(), campaignID)
	if err != nil {
		h.writeAnalysisError(w, campaignID, "optimize_failed", "Failed to optimize campaign", err)
		return
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"campaign_id":     campaignID,
		"recommendations": recs,
	})
}

// OptimizeAllCampaigns handles POST /api/v1/optimization/run
func (h *OptimizationHandler) OptimizeAllCampaigns(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.OptimizeAllCampaigns(r.Context(), requestUserID(r))
	if err != nil {
		h.logger.Error("batch optimize failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "optimize_all_failed", "Failed to optimize campaigns")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListRecommendations handles GET /api/v1/campaigns/{id}/recommendations
func (h *OptimizationHandler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	recs, err := h.engine.Recommendations(r.Context(), campaignID)
	if err != nil {
		h.logger.Error("list recommendations failed",
			zap.String("campaign_id", campaignID), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "list_recommendations_failed", "Failed to list recommendations")
		return
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}

	writeJSON(w, http.StatusOK, recs)
}

type applyRecommendationRequest struct {
	Index int `json:"index"`
}

// ApplyRecommendation handles POST /api/v1/campaigns/{id}/recommendations/apply
func (h *OptimizationHandler) ApplyRecommendation(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	var req applyRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	applied := h.engine.ApplyRecommendation(r.Context(), campaignID, req.Index)
	if !applied {
		writeJSON(w, http.StatusConflict, map[string]any{
			"applied": false,
			"message": "recommendation was not applied",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"applied": true,
		"index":   req.Index,
	})
}

// writeAnalysisError maps analysis errors onto API responses. Unknown
// campaigns and campaigns without metric history get distinct codes so the
// dashboard can tell "wrong id" from "nothing recorded yet".
func (h *OptimizationHandler) writeAnalysisError(w http.ResponseWriter, campaignID, code, message string, err error) {
	switch {
	case optimizer.IsNotFound(err):
		writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
	case optimizer.IsNoData(err):
		writeJSONErrorResponse(w, http.StatusUnprocessableEntity, "no_metrics", "No metric samples recorded for this campaign")
	default:
		h.logger.Error(message, zap.String("campaign_id", campaignID), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, code, message)
	}
}
