package http

import (
	"encoding/json"
	"net/http"

	"github.com/rights360/rights360/internal/assistant"
)

// POST /api/ai/assistant {"message": "..."}
func AssistantHandler(resp *assistant.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		// The responder is total: no-match is the fallback answer, never
		// an error.
		writeJSON(w, map[string]any{
			"response": resp.Respond(req.Message),
			"success":  true,
		})
	}
}

// POST /api/ai/explain-topic {"topic": "..."}
func ExplainTopicHandler(resp *assistant.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic string `json:"topic"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{
			"explanation": resp.ExplainTopic(req.Topic),
			"success":     true,
		})
	}
}
