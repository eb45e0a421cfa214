// internal/handlers/integration_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
	"adpulse/internal/services"
)

// CampaignPublisher pushes campaigns to the ads platform.
type CampaignPublisher interface {
	PublishCampaign(ctx context.Context, campaign *models.Campaign) (string, error)
	PauseCampaign(ctx context.Context, externalID string) error
}

// PaymentProvider funds campaign budgets.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount float64, currency, campaignID string) (*services.PaymentIntent, error)
}

// CopyGenerator produces and reworks ad copy.
type CopyGenerator interface {
	GenerateAdCopy(ctx context.Context, product, audience, tone string) (*services.AdCopy, error)
	OptimizeAdCopy(ctx context.Context, existing, goal string) (*services.CopySuggestions, error)
}

type IntegrationHandler struct {
	store     interfaces.Store
	publisher CampaignPublisher
	payments  PaymentProvider
	copygen   CopyGenerator
	validator *validator.Validate
	logger    *zap.Logger
}

func NewIntegrationHandler(store interfaces.Store, publisher CampaignPublisher, payments PaymentProvider, copygen CopyGenerator, logger *zap.Logger) *IntegrationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrationHandler{
		store:     store,
		publisher: publisher,
		payments:  payments,
		copygen:   copygen,
		validator: validator.New(),
		logger:    logger,
	}
}

// PublishCampaign handles POST /api/v1/campaigns/{id}/publish
func (h *IntegrationHandler) PublishCampaign(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Error("publish campaign: lookup failed", zap.String("campaign_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "publish_failed", "Failed to publish campaign")
		return
	}
	if campaign.ExternalID != "" {
		writeJSONErrorResponse(w, http.StatusConflict, "already_published", "Campaign is already published")
		return
	}

	externalID, err := h.publisher.PublishCampaign(r.Context(), campaign)
	if err != nil {
		h.logger.Error("publish campaign failed", zap.String("campaign_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusBadGateway, "publish_failed", "Ads platform rejected the campaign")
		return
	}

	status := models.CampaignStatusActive
	update := interfaces.CampaignUpdate{ExternalID: &externalID, Status: &status}
	updated, err := h.store.UpdateCampaign(r.Context(), id, update)
	if err != nil {
		h.logger.Error("publish campaign: persisting external id failed",
			zap.String("campaign_id", id), zap.String("external_id", externalID), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "publish_failed", "Failed to persist published campaign")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

type fundCampaignRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
}

// FundCampaign handles POST /api/v1/campaigns/{id}/fund
func (h *IntegrationHandler) FundCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Campaign ID is required")
		return
	}

	var req fundCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if _, err := h.store.GetCampaign(r.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrCampaignNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "campaign_not_found", "Campaign not found")
			return
		}
		h.logger.Error("fund campaign: lookup failed", zap.String("campaign_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "fund_failed", "Failed to fund campaign")
		return
	}

	intent, err := h.payments.CreatePaymentIntent(r.Context(), req.Amount, req.Currency, id)
	if err != nil {
		var vErr *interfaces.ValidationError
		if errors.As(err, &vErr) {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", vErr.Error())
			return
		}
		h.logger.Error("fund campaign failed", zap.String("campaign_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusBadGateway, "fund_failed", "Payment provider rejected the request")
		return
	}

	writeJSON(w, http.StatusOK, intent)
}

type generateCopyRequest struct {
	Product  string `json:"product" validate:"required"`
	Audience string `json:"audience" validate:"required"`
	Tone     string `json:"tone" validate:"omitempty"`
}

// GenerateAdCopy handles POST /api/v1/copy/generate
func (h *IntegrationHandler) GenerateAdCopy(w http.ResponseWriter, r *http.Request) {
	var req generateCopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.Tone == "" {
		req.Tone = "professional"
	}

	copySet, err := h.copygen.GenerateAdCopy(r.Context(), req.Product, req.Audience, req.Tone)
	if err != nil {
		h.logger.Error("generate ad copy failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusBadGateway, "copy_generation_failed", "Failed to generate ad copy")
		return
	}

	writeJSON(w, http.StatusOK, copySet)
}

type optimizeCopyRequest struct {
	Copy string `json:"copy" validate:"required"`
	Goal string `json:"goal" validate:"omitempty"`
}

// OptimizeAdCopy handles POST /api/v1/copy/optimize
func (h *IntegrationHandler) OptimizeAdCopy(w http.ResponseWriter, r *http.Request) {
	var req optimizeCopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.Goal == "" {
		req.Goal = "higher click-through rate"
	}

	suggestions, err := h.copygen.OptimizeAdCopy(r.Context(), req.Copy, req.Goal)
	if err != nil {
		h.logger.Error("optimize ad copy failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusBadGateway, "copy_optimization_failed", "Failed to optimize ad copy")
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}
