package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/assistant"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type AssistantHandler interface {
	Summarize(w http.ResponseWriter, r *http.Request)
	Command(w http.ResponseWriter, r *http.Request)
}

type AssistantHandlerImpl struct {
	assistantService assistant.AssistantService
}

func NewAssistantHandler(assistantService assistant.AssistantService) AssistantHandler {
	return &AssistantHandlerImpl{
		assistantService: assistantService,
	}
}

// Summarize implements AssistantHandler.
func (a *AssistantHandlerImpl) Summarize(w http.ResponseWriter, r *http.Request) {
	var req assistant.SummarizeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Summarize decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.assistantService.SummarizeReason(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Command implements AssistantHandler.
func (a *AssistantHandlerImpl) Command(w http.ResponseWriter, r *http.Request) {
	var req assistant.CommandRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Command decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.assistantService.ParseCommand(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
