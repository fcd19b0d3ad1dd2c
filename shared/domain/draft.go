package domain

import "time"

// DraftSnapshot is the serializable form of a session used for cross-window
// handoff and later resumption. Only committed attachments survive
// serialization; local files are dropped (with a warning) before handoff.
type DraftSnapshot struct {
	BodyText           string       `json:"body_text"`
	ContentWarningText string       `json:"content_warning_text,omitempty"`
	Visibility         Visibility   `json:"visibility"`
	Language           string       `json:"language,omitempty"`
	Sensitive          bool         `json:"sensitive"`
	Poll               *DraftPoll   `json:"poll,omitempty"`
	Attachments        []Attachment `json:"attachments,omitempty"`
}

// DraftPoll stores either a relative expiry (fresh drafts) or an absolute
// one (drafts derived from a published poll). On restore the absolute form
// is converted to the smallest enumerated duration covering the remaining
// time, falling back to one day.
type DraftPoll struct {
	Options          []string   `json:"options"`
	ExpiresInSeconds int64      `json:"expires_in_seconds,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	AllowMultiple    bool       `json:"allow_multiple"`
}
