package api

// Outbound status payloads. Create and update are distinct shapes because
// the server rejects visibility and reply-target changes on an existing
// status. Empty fields are omitted entirely: the API distinguishes
// "omitted" from "explicitly cleared".

type PollPayload struct {
	Options   []string `json:"options"`
	ExpiresIn int64    `json:"expires_in"`
	Multiple  bool     `json:"multiple,omitempty"`
}

type CreateStatusPayload struct {
	Status      string       `json:"status,omitempty"`
	SpoilerText string       `json:"spoiler_text,omitempty"`
	Language    string       `json:"language,omitempty"`
	Sensitive   bool         `json:"sensitive"`
	Poll        *PollPayload `json:"poll,omitempty"`
	MediaIDs    []string     `json:"media_ids,omitempty"`
	Visibility  string       `json:"visibility,omitempty"`
	InReplyToID string       `json:"in_reply_to_id,omitempty"`
}

type UpdateStatusPayload struct {
	Status      string       `json:"status,omitempty"`
	SpoilerText string       `json:"spoiler_text,omitempty"`
	Language    string       `json:"language,omitempty"`
	Sensitive   bool         `json:"sensitive"`
	Poll        *PollPayload `json:"poll,omitempty"`
	MediaIDs    []string     `json:"media_ids,omitempty"`
}
