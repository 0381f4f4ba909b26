package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"promptflow-backend/application/compiler"
	"promptflow-backend/domain/flow"
	"promptflow-backend/pkg/common"
	pkgerrors "promptflow-backend/pkg/errors"
)

// ImportHandler handles POST /api/import-conversation: turning a
// ChatGPT or Claude transcript into a linear flow.
type ImportHandler struct {
	logger *zap.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(logger *zap.Logger) *ImportHandler {
	return &ImportHandler{logger: logger}
}

// ImportConversationRequest represents the request body. Conversation
// is either a transcript string or a message array.
type ImportConversationRequest struct {
	Conversation json.RawMessage `json:"conversation"`
	Source       string          `json:"source"`
}

// ImportConversationResponse is the success body.
type ImportConversationResponse struct {
	Elements     flow.Elements `json:"elements"`
	MessageCount int           `json:"messageCount"`
}

// Import handles POST /api/import-conversation
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportConversationRequest
	if err := common.ParseJSONBody(r, &req, maxPromptBodyBytes); err != nil {
		common.RespondJSON(w, http.StatusBadRequest, ExecuteErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if len(req.Conversation) == 0 || string(req.Conversation) == "null" {
		common.RespondJSON(w, http.StatusBadRequest, ExecuteErrorResponse{Error: "Missing conversation data"})
		return
	}
	if req.Source == "" {
		req.Source = "chatgpt"
	}

	messages, err := compiler.ParseConversation(req.Conversation, req.Source)
	if err != nil {
		status := http.StatusBadRequest
		if appErr := pkgerrors.GetAppError(err); appErr != nil {
			status = appErr.HTTPStatus
		}
		common.RespondJSON(w, status, ExecuteErrorResponse{Error: err.Error()})
		return
	}

	elements := compiler.MessagesToElements(messages)

	h.logger.Info("conversation imported",
		zap.String("source", req.Source),
		zap.Int("messages", len(messages)),
		zap.Int("nodes", len(elements.Nodes)),
	)

	common.RespondJSON(w, http.StatusOK, ImportConversationResponse{
		Elements:     elements,
		MessageCount: len(messages),
	})
}
