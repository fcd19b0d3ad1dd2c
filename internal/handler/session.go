package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fedipost-dev/fedipost/internal/metrics"
	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/domain"
	"github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/utils"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body api.OpenSessionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	origin, err := h.buildOrigin(body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	c, openErr := h.manager.Open(r.Context(), origin)
	if c == nil {
		utils.WriteErrorAndStatusCode(w, openErr)
		return
	}
	metrics.SessionsOpened.WithLabelValues(string(origin.Kind)).Inc()

	// A failed edit hydration still yields a session; it is inert and the
	// reason travels in the view for the UI to show verbatim.
	hydrationErr := ""
	if openErr != nil {
		hydrationErr = openErr.Error()
	}
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, sessionView(c, hydrationErr))
}

func (h *Handler) buildOrigin(body api.OpenSessionRequest) (domain.Origin, error) {
	switch domain.OriginKind(body.Origin) {
	case domain.OriginBlank:
		return domain.Origin{Kind: domain.OriginBlank}, nil
	case domain.OriginReply:
		if body.ReplyToStatus == nil {
			return domain.Origin{}, &errors.ErrorWithStatusCode{Message: "reply origin needs reply_to_status", StatusCode: http.StatusBadRequest}
		}
		return domain.Origin{Kind: domain.OriginReply, ReplyTo: body.ReplyToStatus}, nil
	case domain.OriginEdit:
		if body.EditStatus == nil {
			return domain.Origin{}, &errors.ErrorWithStatusCode{Message: "edit origin needs edit_status", StatusCode: http.StatusBadRequest}
		}
		return domain.Origin{Kind: domain.OriginEdit, Edit: body.EditStatus}, nil
	case domain.OriginDraft:
		draft := body.Draft
		if draft == nil && body.DraftID != "" {
			stored, err := h.drafts.LoadDraft(body.DraftID)
			if err != nil {
				return domain.Origin{}, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusNotFound}
			}
			draft = stored
		}
		if draft == nil {
			return domain.Origin{}, &errors.ErrorWithStatusCode{Message: "draft origin needs draft or draft_id", StatusCode: http.StatusBadRequest}
		}
		return domain.Origin{Kind: domain.OriginDraft, Draft: draft}, nil
	}
	return domain.Origin{}, &errors.ErrorWithStatusCode{Message: "unknown origin", StatusCode: http.StatusBadRequest}
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, sessionView(c, ""))
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	var body api.UpdateSessionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	apply := func(err error) bool {
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return false
		}
		return true
	}
	if body.BodyText != nil && !apply(c.SetBody(*body.BodyText)) {
		return
	}
	if body.ContentWarningText != nil && !apply(c.SetContentWarning(*body.ContentWarningText)) {
		return
	}
	if body.Sensitive != nil && !apply(c.SetSensitive(*body.Sensitive)) {
		return
	}
	if body.Visibility != nil && !apply(c.SetVisibility(domain.Visibility(*body.Visibility))) {
		return
	}
	if body.Language != nil && !apply(c.SetLanguage(*body.Language)) {
		return
	}
	utils.WriteJSON(w, sessionView(c, ""))
}

// CloseSession discards a session. Without ?force=true it refuses when the
// unsaved-changes guard finds meaningful input, and the UI must confirm.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	force := r.URL.Query().Get("force") == "true"
	if err := c.Close(force); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.manager.Remove(c.Session().ID)
	w.WriteHeader(http.StatusNoContent)
}

// HandoffSession exports the session as a draft payload for another window
// and closes it here. Uncommitted attachments cannot travel; the caller
// must confirm their loss first.
func (h *Handler) HandoffSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	var body api.HandoffRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	snap, dropped := c.Export()
	if dropped > 0 && !body.ConfirmDrop {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{
			Message:    "You have media attachments that are not yet uploaded. Opening a new window will discard them and you will need to re-attach them. Are you sure you want to continue?",
			StatusCode: http.StatusConflict,
		})
		return
	}

	h.manager.Remove(c.Session().ID)
	utils.WriteJSON(w, api.HandoffResponse{Draft: snap, DroppedAttachments: dropped})
}

// SaveDraft persists the session snapshot for later resumption.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	snap, dropped := c.Export()
	if err := h.drafts.SaveDraft(c.Session().ID, snap); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.HandoffResponse{Draft: snap, DroppedAttachments: dropped})
}

func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	records, err := h.drafts.ListDrafts()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	entries := make([]api.DraftListEntry, len(records))
	for i, rec := range records {
		entries[i] = api.DraftListEntry{
			ID:        rec.ID,
			UpdatedAt: rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Draft:     rec.Snapshot,
		}
	}
	utils.WriteJSON(w, entries)
}

func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.DeleteDraft(chi.URLParam(r, "draft")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
