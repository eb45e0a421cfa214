// internal/handlers/campaign_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type CampaignHandler struct {
	store     interfaces.Store
	validator *validator.Validate
	logger    *zap.Logger
}

func NewCampaignHandler(store interfaces.Store, logger *zap.Logger) *CampaignHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignHandler{
		store:     store,
		validator: validator.New(),
		logger:    logger,
	}
}

// CreateCampaign handles POST /api/v1/campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	now := time.Now().UTC()
	campaign := &models.Campaign{
		ID:             uuid.NewString(),
		UserID:         requestUserID(r),
		Name:           req.Name,
		Objective:      models.CampaignObjective(req.Objective),
		Platforms:      req.Platforms,
		Status:         models.CampaignStatusDraft,
		DailyBudget:    req.DailyBudget,
		TotalBudget:    req.TotalBudget,
		Duration:       req.Duration,
		TargetAudience: req.TargetAudience,
		AdCreative:     req.AdCreative,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.store.CreateCampaign(r.Context(), campaign); err != nil {
		h.logger.Error("create campaign failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "create_campaign_failed", "Failed to create campaign")
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// GetCampaign handles GET /api/v1/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	campaign, err := h.store.GetCampaign(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrCampaignNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		h.logger.Error("get campaign failed", zap.String("campaign_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "get_campaign_failed", "Failed to fetch campaign")
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// ListCampaigns handles GET /api/v1/campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.store.ListCampaigns(r.Context(), requestUserID(r))
	if err != nil {
		h.logger.Error("list campaigns failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "list_campaigns_failed", "Failed to list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// UpdateCampaign handles PUT /api/v1/campaigns/{id}
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	var req models.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	update := interfaces.CampaignUpdate{
		Name:           req.Name,
		DailyBudget:    req.DailyBudget,
		TotalBudget:    req.TotalBudget,
		Duration:       req.Duration,
		TargetAudience: req.TargetAudience,
		AdCreative:     req.AdCreative,
	}
	if req.Status != nil {
		status := models.CampaignStatus(*req.Status)
		update.Status = &status
	}

	campaign, err := h.store.UpdateCampaign(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, interfaces.ErrCampaignNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		h.logger.Error("update campaign failed", zap.String("campaign_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "update_campaign_failed", "Failed to update campaign")
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// DeleteCampaign handles DELETE /api/v1/campaigns/{id}
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	if err := h.store.DeleteCampaign(r.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrCampaignNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		h.logger.Error("delete campaign failed", zap.String("campaign_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "delete_campaign_failed", "Failed to delete campaign")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "campaign deleted successfully",
		"id":      id,
	})
}
