package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"promptflow-backend/application/services"
	"promptflow-backend/domain/flow"
	"promptflow-backend/domain/prompt"
	"promptflow-backend/pkg/common"
	"promptflow-backend/pkg/utils"
)

// maxPromptBodyBytes bounds a stored flow payload.
const maxPromptBodyBytes = 1 << 20

// PromptHandler handles the named-prompt CRUD endpoints.
type PromptHandler struct {
	prompts *services.PromptService
	logger  *zap.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(prompts *services.PromptService, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{
		prompts: prompts,
		logger:  logger,
	}
}

// CreatePromptRequest represents the request body for creating a prompt
type CreatePromptRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=200"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty" validate:"omitempty,max=100"`
	Elements    *flow.Elements `json:"elements" validate:"required"`
}

// List handles GET /api/prompts
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.prompts.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list prompts", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, prompts)
}

// Get handles GET /api/prompts/{promptID}
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "promptID")

	p, err := h.prompts.Get(r.Context(), id)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, p)
}

// Create handles POST /api/prompts
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePromptRequest
	if err := common.ParseJSONBody(r, &req, maxPromptBodyBytes); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Elements.Nodes == nil || req.Elements.Edges == nil {
		common.RespondMessage(w, http.StatusBadRequest, "Validation error: elements must contain nodes and edges arrays")
		return
	}

	created, err := h.prompts.Create(r.Context(), req.Name, req.Description, req.Category, *req.Elements)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/prompts/{promptID}
func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "promptID")

	var upd prompt.Update
	if err := common.ParseJSONBody(r, &upd, maxPromptBodyBytes); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.prompts.Update(r.Context(), id, upd)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/prompts/{promptID}
func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "promptID")

	deleted, err := h.prompts.Delete(r.Context(), id)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	if !deleted {
		common.RespondMessage(w, http.StatusNotFound, "Prompt not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByCategory handles GET /api/prompts/category/{category}
func (h *PromptHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	prompts, err := h.prompts.ListByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error("failed to list prompts by category",
			zap.String("category", category),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, prompts)
}
