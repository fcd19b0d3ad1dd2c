package domain

import "time"

// Status is a published post as returned by the instance API.
type Status struct {
	Id               string            `json:"id"`
	CreatedAt        time.Time         `json:"created_at"`
	Visibility       string            `json:"visibility"`
	Language         string            `json:"language,omitempty"`
	Url              string            `json:"url,omitempty"`
	Content          string            `json:"content"`
	SpoilerText      string            `json:"spoiler_text,omitempty"`
	Sensitive        bool              `json:"sensitive"`
	Account          Account           `json:"account"`
	Mentions         []Mention         `json:"mentions,omitempty"`
	Tags             []Tag             `json:"tags,omitempty"`
	Poll             *StatusPoll       `json:"poll,omitempty"`
	MediaAttachments []MediaAttachment `json:"media_attachments,omitempty"`
}

type Account struct {
	Id           string `json:"id"`
	Acct         string `json:"acct"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	AvatarStatic string `json:"avatar_static,omitempty"`
}

type Mention struct {
	Id   string `json:"id"`
	Acct string `json:"acct"`
}

type Tag struct {
	Name string `json:"name"`
}

// StatusPoll is a poll attached to a published status. Options carry titles;
// the expiry is absolute and gets re-enumerated when hydrating an edit.
type StatusPoll struct {
	Id        string       `json:"id,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Multiple  bool         `json:"multiple"`
	Options   []PollOption `json:"options"`
}

type PollOption struct {
	Title string `json:"title"`
}

type MediaAttachment struct {
	Id          string `json:"id"`
	Type        string `json:"type"`
	Url         string `json:"url,omitempty"`
	PreviewUrl  string `json:"preview_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// StatusSource is the pre-render text of an existing status, used when
// hydrating an edit session. Rendered Content is never edited directly.
type StatusSource struct {
	Id          string `json:"id"`
	Text        string `json:"text"`
	SpoilerText string `json:"spoiler_text"`
}
