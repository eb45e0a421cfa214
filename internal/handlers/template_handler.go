// internal/handlers/template_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type TemplateHandler struct {
	store  interfaces.TemplateStore
	logger *zap.Logger
}

func NewTemplateHandler(store interfaces.TemplateStore, logger *zap.Logger) *TemplateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateHandler{store: store, logger: logger}
}

// ListAdTemplates handles GET /api/v1/templates
func (h *TemplateHandler) ListAdTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.ListAdTemplates(r.Context())
	if err != nil {
		h.logger.Error("list ad templates failed", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "list_templates_failed", "Failed to list templates")
		return
	}
	if templates == nil {
		templates = []*models.AdTemplate{}
	}

	writeJSON(w, http.StatusOK, templates)
}

// GetAdTemplate handles GET /api/v1/templates/{id}
func (h *TemplateHandler) GetAdTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "missing_id", "Template ID is required")
		return
	}

	template, err := h.store.GetAdTemplate(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrTemplateNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "template_not_found", "Template not found")
			return
		}
		h.logger.Error("get ad template failed", zap.String("template_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "get_template_failed", "Failed to fetch template")
		return
	}

	writeJSON(w, http.StatusOK, template)
}
