package handler

import (
	"errors"
	"net/http"

	"github.com/fedipost-dev/fedipost/internal/compose"
	"github.com/fedipost-dev/fedipost/internal/metrics"
	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/utils"
)

func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	var body api.AutocompleteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.AutocompleteQueries.WithLabelValues(body.Trigger).Inc()

	suggestions, matched, err := c.Autocomplete(r.Context(), compose.Trigger(body.Trigger), body.Query)
	if errors.Is(err, compose.ErrSuperseded) {
		// A newer keystroke owns the suggestion list now; this response
		// must not touch it.
		metrics.AutocompleteStaleDropped.Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.AutocompleteResponse{Matched: matched}
	for _, s := range suggestions {
		resp.Suggestions = append(resp.Suggestions, api.SuggestionView{
			Value:    s.Value,
			Label:    s.Label,
			ImageURL: s.ImageURL,
		})
	}
	utils.WriteJSON(w, resp)
}

func (h *Handler) AcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	var body api.AcceptSuggestionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := c.AcceptSuggestion(body.SpanStart, body.SpanEnd, compose.Trigger(body.Trigger), body.Value); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, sessionView(c, ""))
}
