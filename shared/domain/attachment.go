package domain

// Attachment is one media item on a session. An attachment starts from a
// local file (no RemoteID) or is restored from a draft already uploaded.
// Once RemoteID is set the attachment is committed and never re-uploaded.
type Attachment struct {
	// LocalPath points at the source file. Empty once committed.
	LocalPath   string `json:"-"`
	RemoteID    string `json:"remote_id,omitempty"`
	MimeType    string `json:"mime_type"`
	ByteSize    int64  `json:"byte_size"`
	PreviewURL  string `json:"preview_url,omitempty"`
	Description string `json:"description,omitempty"`

	ImageWidth  *int `json:"image_width,omitempty"`
	ImageHeight *int `json:"image_height,omitempty"`
}

// Committed reports whether the attachment already lives on the server.
func (a Attachment) Committed() bool {
	return a.RemoteID != ""
}
