package domain

// Phase is the lifecycle state of a composition session.
type Phase string

const (
	PhaseHydrating  Phase = "hydrating"
	PhaseReady      Phase = "ready"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
	PhaseFailed     Phase = "failed"
)

// Visibility of a status, as the instance understands it.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
	VisibilityDirect   Visibility = "direct"
)

// OriginKind says where a session's initial state came from.
type OriginKind string

const (
	OriginBlank OriginKind = "blank"
	OriginReply OriginKind = "reply"
	OriginEdit  OriginKind = "edit"
	OriginDraft OriginKind = "draft"
)

// Origin is a tagged variant: exactly the field matching Kind is set.
type Origin struct {
	Kind    OriginKind
	ReplyTo *Status        // Kind == OriginReply
	Edit    *Status        // Kind == OriginEdit
	Draft   *DraftSnapshot // Kind == OriginDraft
}

// Session is one in-progress post, from open to submit/close.
//
// Poll and non-empty Attachments are mutually exclusive. When Origin.Kind is
// OriginEdit, Visibility and Language are fixed because the server does not
// allow changing them on an existing status.
type Session struct {
	ID                 string
	BodyText           string
	ContentWarningText string
	Sensitive          bool
	Visibility         Visibility
	Language           string
	Attachments        []Attachment
	Poll               *Poll
	Origin             Origin
	Phase              Phase

	// PristineBody is the fetched source text recorded at edit hydration.
	// Nil for every other origin.
	PristineBody *string
}

// Editing reports whether the session modifies an existing status.
func (s *Session) Editing() bool {
	return s.Origin.Kind == OriginEdit
}
