package handler

import (
	"net/http"

	"github.com/fedipost-dev/fedipost/internal/metrics"
	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/utils"
)

// Submit drives the whole submission. On success the session is closed and
// the posted status handed back; on failure the session sticks around with
// its state intact so the user can retry.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	status, err := c.Submit(r.Context())
	if err != nil {
		metrics.Submissions.WithLabelValues("failure").Inc()
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.Submissions.WithLabelValues("success").Inc()

	h.manager.Remove(c.Session().ID)
	utils.WriteJSON(w, api.SubmitResponse{Status: status})
}
