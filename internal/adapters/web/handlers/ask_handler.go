package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vulniq/vulniq/internal/core/domain"
	"github.com/vulniq/vulniq/internal/core/services/classify"
	"github.com/vulniq/vulniq/internal/core/services/dispatch"
	"github.com/vulniq/vulniq/internal/core/services/report"
)

// AskHandler turns a natural-language prompt into one upstream call and a
// summarized response.
type AskHandler struct {
	Classifier *classify.Classifier
	Dispatcher *dispatch.Dispatcher
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(classifier *classify.Classifier, dispatcher *dispatch.Dispatcher) *AskHandler {
	return &AskHandler{Classifier: classifier, Dispatcher: dispatcher}
}

type askRequest struct {
	Prompt  string                      `json:"prompt"`
	Context *domain.ConversationContext `json:"context,omitempty"`
}

type askResponse struct {
	RawResponse map[string]any    `json:"rawResponse"`
	Summary     string            `json:"summary"`
	Action      string            `json:"action,omitempty"`
	Filters     map[string]string `json:"filters,omitempty"`
}

// HandleAsk classifies the prompt, dispatches the resulting intent and wraps
// the envelope. An upstream failure still answers 200 with the error embedded
// in the payload; only a malformed request body is rejected outright.
func (h *AskHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	intent := h.Classifier.Classify(req.Prompt, req.Context)

	env, err := h.Dispatcher.Dispatch(r.Context(), intent)
	if err != nil {
		log.Printf("dispatch failed for action %s: %v", intent.Action, err)
		env = &domain.Envelope{
			Action:  intent.Action,
			Filters: map[string]string{},
			Err:     err.Error(),
		}
	}

	writeJSON(w, http.StatusOK, askResponse{
		RawResponse: env.Payload(),
		Summary:     report.Summarize(intent, env),
		Action:      string(env.Action),
		Filters:     env.Filters,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
