// internal/handlers/metric_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type MetricHandler struct {
	store     interfaces.Store
	validator *validator.Validate
	logger    *zap.Logger
}

func NewMetricHandler(store interfaces.Store, logger *zap.Logger) *MetricHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricHandler{
		store:     store,
		validator: validator.New(),
		logger:    logger,
	}
}

// AddMetricSample handles POST /api/v1/campaigns/{id}/metrics
func (h *MetricHandler) AddMetricSample(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	var req models.CreateMetricSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.Clicks > req.Impressions {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "Clicks cannot exceed impressions")
		return
	}

	// Reject samples for unknown campaigns up front so the metrics table
	// cannot accumulate orphans.
	if _, err := h.store.GetCampaign(r.Context(), campaignID); err != nil {
		if errors.Is(err, interfaces.ErrCampaignNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		h.logger.Error("add metric sample: campaign lookup failed",
			zap.String("campaign_id", campaignID), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "add_metric_failed", "Failed to record metrics")
		return
	}

	sample := &models.MetricSample{
		ID:          uuid.NewString(),
		CampaignID:  campaignID,
		Date:        req.Date.UTC(),
		Impressions: req.Impressions,
		Clicks:      req.Clicks,
		Conversions: req.Conversions,
		Cost:        req.Cost,
	}
	if err := h.store.AddMetricSample(r.Context(), sample); err != nil {
		h.logger.Error("add metric sample failed",
			zap.String("campaign_id", campaignID), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "add_metric_failed", "Failed to record metrics")
		return
	}

	writeJSON(w, http.StatusCreated, sample)
}

// ListMetricSamples handles GET /api/v1/campaigns/{id}/metrics
func (h *MetricHandler) ListMetricSamples(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	if _, err := h.store.GetCampaign(r.Context(), campaignID); err != nil {
		if errors.Is(err, interfaces.ErrCampaignNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		h.logger.Error("list metric samples: campaign lookup failed",
			zap.String("campaign_id", campaignID), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "list_metrics_failed", "Failed to list metrics")
		return
	}

	samples, err := h.store.ListMetricSamples(r.Context(), campaignID)
	if err != nil {
		h.logger.Error("list metric samples failed",
			zap.String("campaign_id", campaignID), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "list_metrics_failed", "Failed to list metrics")
		return
	}
	if samples == nil {
		samples = []*models.MetricSample{}
	}

	writeJSON(w, http.StatusOK, samples)
}

// DashboardStats handles GET /api/v1/dashboard/stats
func (h *MetricHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.DashboardStats(r.Context(), requestUserID(r))
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "dashboard_stats_failed", "Failed to compute dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
