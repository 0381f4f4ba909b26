package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"promptflow-backend/application/ports"
	"promptflow-backend/application/services"
	"promptflow-backend/domain/flow"
	"promptflow-backend/pkg/common"
)

// ExecuteHandler handles POST /api/execute-prompt. The response bodies
// are a fixed client contract and use the "error" key rather than the
// CRUD surface's "message" key.
type ExecuteHandler struct {
	execution *services.ExecutionService
	logger    *zap.Logger
}

// NewExecuteHandler creates a new execute handler
func NewExecuteHandler(execution *services.ExecutionService, logger *zap.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		execution: execution,
		logger:    logger,
	}
}

// ExecutePromptRequest represents the request body for executing a flow
type ExecutePromptRequest struct {
	Elements   *flow.Elements    `json:"elements"`
	UserInputs map[string]string `json:"userInputs"`
	Model      string            `json:"model"`
}

// ExecutePromptResponse is the success body.
type ExecutePromptResponse struct {
	Result string      `json:"result"`
	Prompt string      `json:"prompt"`
	Model  string      `json:"model"`
	Usage  ports.Usage `json:"usage"`
}

// ExecuteErrorResponse is the failure body. MissingKey distinguishes
// the unconfigured-credential condition so the client can prompt for a
// key instead of showing a generic failure.
type ExecuteErrorResponse struct {
	Error      string `json:"error"`
	Prompt     string `json:"prompt,omitempty"`
	MissingKey bool   `json:"missingKey,omitempty"`
}

// Execute handles POST /api/execute-prompt
func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecutePromptRequest
	if err := common.ParseJSONBody(r, &req, maxPromptBodyBytes); err != nil {
		common.RespondJSON(w, http.StatusBadRequest, ExecuteErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.Elements == nil || req.Elements.Nodes == nil || req.Elements.Edges == nil {
		common.RespondJSON(w, http.StatusBadRequest, ExecuteErrorResponse{Error: "Missing or invalid flow elements"})
		return
	}

	outcome, err := h.execution.Execute(r.Context(), *req.Elements, req.UserInputs, req.Model)
	if err != nil {
		if errors.Is(err, ports.ErrMissingAPIKey) {
			common.RespondJSON(w, http.StatusUnauthorized, ExecuteErrorResponse{
				Error:      "OpenAI API key not configured",
				Prompt:     outcome.Prompt,
				MissingKey: true,
			})
			return
		}

		h.logger.Error("prompt execution failed", zap.Error(err))
		common.RespondJSON(w, http.StatusInternalServerError, ExecuteErrorResponse{
			Error:  err.Error(),
			Prompt: outcome.Prompt,
		})
		return
	}

	common.RespondJSON(w, http.StatusOK, ExecutePromptResponse{
		Result: outcome.Result,
		Prompt: outcome.Prompt,
		Model:  outcome.Model,
		Usage:  outcome.Usage,
	})
}
