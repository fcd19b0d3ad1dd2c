package api

import "github.com/fedipost-dev/fedipost/shared/domain"

// Request DTOs for the composer HTTP surface

type OpenSessionRequest struct {
	Origin string `json:"origin" validate:"required,oneof=blank reply edit draft"`
	// Exactly one of the following backs a non-blank origin.
	ReplyToStatus *domain.Status        `json:"reply_to_status,omitempty"`
	EditStatus    *domain.Status        `json:"edit_status,omitempty"`
	Draft         *domain.DraftSnapshot `json:"draft,omitempty"`
	DraftID       string                `json:"draft_id,omitempty"` // stored draft to resume
}

// UpdateSessionRequest patches session fields; nil fields are untouched.
type UpdateSessionRequest struct {
	BodyText           *string `json:"body_text,omitempty"`
	ContentWarningText *string `json:"content_warning_text,omitempty"`
	Sensitive          *bool   `json:"sensitive,omitempty"`
	Visibility         *string `json:"visibility,omitempty"`
	Language           *string `json:"language,omitempty"`
}

type AddAttachmentsRequest struct {
	Paths []string `json:"paths" validate:"required,min=1"`
}

type AttachmentDescriptionRequest struct {
	Description string `json:"description"`
}

type PollRequest struct {
	Options          []string `json:"options" validate:"required,min=1"`
	ExpiresInSeconds int64    `json:"expires_in_seconds" validate:"required"`
	AllowMultiple    bool     `json:"allow_multiple"`
}

type AutocompleteRequest struct {
	Trigger string `json:"trigger" validate:"required,oneof=@ # :"`
	Query   string `json:"query"`
}

type AcceptSuggestionRequest struct {
	Trigger string `json:"trigger" validate:"required,oneof=@ # :"`
	Value   string `json:"value" validate:"required"`
	// Byte offsets of the trigger+query span being replaced.
	SpanStart int `json:"span_start"`
	SpanEnd   int `json:"span_end"`
}

type HandoffRequest struct {
	// ConfirmDrop acknowledges that uncommitted attachments are lost.
	ConfirmDrop bool `json:"confirm_drop"`
}

// Response DTOs

type MeterView struct {
	Count     int    `json:"count"`
	Max       int    `json:"max"`
	Remaining int    `json:"remaining"`
	Level     string `json:"level"`
}

type SessionResponse struct {
	ID                 string              `json:"id"`
	Phase              string              `json:"phase"`
	Origin             string              `json:"origin"`
	BodyText           string              `json:"body_text"`
	ContentWarningText string              `json:"content_warning_text,omitempty"`
	Sensitive          bool                `json:"sensitive"`
	Visibility         string              `json:"visibility"`
	Language           string              `json:"language"`
	Attachments        []domain.Attachment `json:"attachments,omitempty"`
	Poll               *domain.Poll        `json:"poll,omitempty"`
	Meter              MeterView           `json:"meter"`

	// Affordances the UI renders as enabled/disabled controls.
	CanDiscard          bool `json:"can_discard"`
	CanAddPoll          bool `json:"can_add_poll"`
	CanAttachFiles      bool `json:"can_attach_files"`
	AllowMultipleSelect bool `json:"allow_multiple_select"`

	// Error carries the hydration failure reason for an inert session.
	Error string `json:"error,omitempty"`
}

type SuggestionView struct {
	Value    string `json:"value"`
	Label    string `json:"label,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type AutocompleteResponse struct {
	Matched     bool             `json:"matched"`
	Suggestions []SuggestionView `json:"suggestions,omitempty"`
}

type SubmitResponse struct {
	Status *domain.Status `json:"status"`
}

type HandoffResponse struct {
	Draft              domain.DraftSnapshot `json:"draft"`
	DroppedAttachments int                  `json:"dropped_attachments"`
}

type DraftListEntry struct {
	ID        string               `json:"id"`
	UpdatedAt string               `json:"updated_at"`
	Draft     domain.DraftSnapshot `json:"draft"`
}
