package domain

// InstanceConfig carries the client-known limits of the host instance.
// Fetched once per session and never mutated by the engine; the server stays
// authoritative for everything here.
type InstanceConfig struct {
	MaxCharacters            int      `json:"max_characters"`
	MaxMediaAttachments      int      `json:"max_media_attachments"`
	CharactersReservedPerURL int      `json:"characters_reserved_per_url"`
	SupportedMimeTypes       []string `json:"supported_mime_types"`

	MaxPollOptions             int   `json:"max_poll_options"`
	MaxCharactersPerPollOption int   `json:"max_characters_per_poll_option"`
	MinPollExpiration          int64 `json:"min_poll_expiration"`
	MaxPollExpiration          int64 `json:"max_poll_expiration"`
}

// CustomEmoji is one entry of the instance's emoji directory.
type CustomEmoji struct {
	Shortcode string `json:"shortcode"`
	Url       string `json:"url"`
	StaticUrl string `json:"static_url,omitempty"`
}
