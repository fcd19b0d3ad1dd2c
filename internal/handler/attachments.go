package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/utils"
)

func (h *Handler) AddAttachments(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	var body api.AddAttachmentsRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := c.AddFiles(body.Paths); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, sessionView(c, ""))
}

func (h *Handler) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	index, err := attachmentIndex(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := c.RemoveAttachment(index); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, sessionView(c, ""))
}

func (h *Handler) UpdateAttachmentDescription(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	index, err := attachmentIndex(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.AttachmentDescriptionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := c.SetAttachmentDescription(index, body.Description); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, sessionView(c, ""))
}

func attachmentIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, &errors.ErrorWithStatusCode{Message: "Invalid attachment index", StatusCode: http.StatusBadRequest}
	}
	return index, nil
}
