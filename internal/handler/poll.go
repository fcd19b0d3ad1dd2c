package handler

import (
	"net/http"

	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/domain"
	"github.com/fedipost-dev/fedipost/shared/utils"
)

func (h *Handler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := c.AddPoll(); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, sessionView(c, ""))
}

func (h *Handler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	var body api.PollRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	poll := domain.Poll{
		Options:          body.Options,
		ExpiresInSeconds: body.ExpiresInSeconds,
		AllowMultiple:    body.AllowMultiple,
	}
	if err := c.UpdatePoll(poll); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, sessionView(c, ""))
}

func (h *Handler) RemovePoll(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := c.RemovePoll(); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, sessionView(c, ""))
}
