package httpinterface

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

type webhookHandler struct {
	pubsub ports.SecurePubSub
}

func newWebhookHandler(pubsub ports.SecurePubSub) *webhookHandler {
	return &webhookHandler{pubsub: pubsub}
}

type subscribeRequest struct {
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret,omitempty"`
}

type subscribeResponse struct {
	Id string `json:"id"`
}

func (h *webhookHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	id, err := h.pubsub.Subscribe(req.Topic, req.Endpoint, req.Secret)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, subscribeResponse{Id: id})
}

func (h *webhookHandler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = ports.AnyTopic
	}
	if err := h.pubsub.Unsubscribe(topic, id); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
