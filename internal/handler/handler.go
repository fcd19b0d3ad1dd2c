package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fedipost-dev/fedipost/internal/compose"
	"github.com/fedipost-dev/fedipost/internal/store"
	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/utils"
)

type Handler struct {
	manager *compose.Manager
	drafts  *store.Store
}

func New(manager *compose.Manager, drafts *store.Store) *Handler {
	return &Handler{manager: manager, drafts: drafts}
}

// controller resolves the session from the URL, writing a 404 when it is
// gone. The second return value reports success.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*compose.Controller, bool) {
	id := chi.URLParam(r, "session")
	c, ok := h.manager.Get(id)
	if !ok {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "No such session", StatusCode: http.StatusNotFound})
		return nil, false
	}
	return c, true
}

// sessionView projects controller state into the response shape the UI
// consumes, affordances included.
func sessionView(c *compose.Controller, hydrationErr string) api.SessionResponse {
	s := c.Session()
	cfg := c.Config()
	meter := c.Meter()
	return api.SessionResponse{
		ID:                 s.ID,
		Phase:              string(s.Phase),
		Origin:             string(s.Origin.Kind),
		BodyText:           s.BodyText,
		ContentWarningText: s.ContentWarningText,
		Sensitive:          s.Sensitive,
		Visibility:         string(s.Visibility),
		Language:           s.Language,
		Attachments:        s.Attachments,
		Poll:               s.Poll,
		Meter: api.MeterView{
			Count:     meter.Count,
			Max:       meter.Max,
			Remaining: meter.Remaining,
			Level:     string(meter.Level),
		},
		CanDiscard:          c.CanDiscard(),
		CanAddPoll:          compose.CanAddPoll(&s),
		CanAttachFiles:      compose.CanAttachFiles(&s, cfg),
		AllowMultipleSelect: compose.AllowMultipleSelect(&s, cfg),
		Error:               hydrationErr,
	}
}
