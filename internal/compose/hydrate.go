package compose

import (
	"context"
	"strings"
	"time"

	"github.com/fedipost-dev/fedipost/shared/domain"
	"github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/logger"
)

// SourceFetcher retrieves the pre-render text of an existing status.
type SourceFetcher interface {
	FetchStatusSource(ctx context.Context, id string) (*domain.StatusSource, error)
}

// LanguageStore remembers the last language the user posted in.
type LanguageStore interface {
	LastUsedLanguage() (string, error)
	SaveLastUsedLanguage(code string) error
}

// Hydrator builds the initial session state for each origin. Exactly one
// hydration happens per session, moving phase from hydrating to ready, or to
// failed when the edit source-fetch errors.
type Hydrator struct {
	source          SourceFetcher
	languages       LanguageStore
	self            domain.Account
	defaultLanguage string
	now             func() time.Time
}

func NewHydrator(source SourceFetcher, languages LanguageStore, self domain.Account, defaultLanguage string) *Hydrator {
	return &Hydrator{
		source:          source,
		languages:       languages,
		self:            self,
		defaultLanguage: defaultLanguage,
		now:             time.Now,
	}
}

// Hydrate fills the session in from its origin and settles the phase.
// The returned error is non-nil only for the edit origin, whose source
// fetch can fail; the session is then left inert in the failed phase.
func (h *Hydrator) Hydrate(ctx context.Context, s *domain.Session) error {
	s.Phase = domain.PhaseHydrating

	switch s.Origin.Kind {
	case domain.OriginBlank:
		s.Visibility = domain.VisibilityPublic
		s.Language = h.lastOrDefaultLanguage()

	case domain.OriginReply:
		parent := s.Origin.ReplyTo
		s.BodyText = replyMentionPrefix(parent, h.self.Acct)
		s.ContentWarningText = parent.SpoilerText
		s.Sensitive = parent.Sensitive
		s.Visibility = domain.Visibility(parent.Visibility)
		s.Language = orDefault(parent.Language, h.defaultLanguage)

	case domain.OriginDraft:
		snap := s.Origin.Draft
		s.BodyText = snap.BodyText
		s.ContentWarningText = snap.ContentWarningText
		s.Sensitive = snap.Sensitive
		s.Visibility = snap.Visibility
		s.Language = orDefault(snap.Language, h.defaultLanguage)
		s.Attachments = append([]domain.Attachment(nil), snap.Attachments...)
		if snap.Poll != nil {
			s.Poll = h.restorePoll(snap.Poll)
		}

	case domain.OriginEdit:
		status := s.Origin.Edit
		src, err := h.source.FetchStatusSource(ctx, status.Id)
		if err != nil {
			s.Phase = domain.PhaseFailed
			return &errors.HydrationError{Reason: err.Error()}
		}
		// Body and content warning come from the source text, everything
		// else from the status metadata.
		s.BodyText = src.Text
		s.ContentWarningText = src.SpoilerText
		pristine := src.Text
		s.PristineBody = &pristine
		s.Sensitive = status.Sensitive
		s.Visibility = domain.Visibility(status.Visibility)
		s.Language = orDefault(status.Language, h.defaultLanguage)
		for _, m := range status.MediaAttachments {
			s.Attachments = append(s.Attachments, domain.Attachment{
				RemoteID:    m.Id,
				MimeType:    m.Type,
				PreviewURL:  m.PreviewUrl,
				Description: m.Description,
			})
		}
		if status.Poll != nil {
			s.Poll = &domain.Poll{
				Options:          pollOptionTitles(status.Poll.Options),
				ExpiresInSeconds: h.expiresInFromExpiresAt(status.Poll.ExpiresAt),
				AllowMultiple:    status.Poll.Multiple,
			}
		}
	}

	s.Phase = domain.PhaseReady
	logger.Log.Debug("session hydrated",
		"component", "hydrator",
		"session", s.ID,
		"origin", s.Origin.Kind)
	return nil
}

func (h *Hydrator) lastOrDefaultLanguage() string {
	code, err := h.languages.LastUsedLanguage()
	if err != nil || code == "" {
		return h.defaultLanguage
	}
	return code
}

// restorePoll converts a draft poll back to a composable one. An absolute
// expiry becomes the smallest enumerated duration covering the remaining
// time; one day when nothing fits or the expiry is missing.
func (h *Hydrator) restorePoll(p *domain.DraftPoll) *domain.Poll {
	expiresIn := p.ExpiresInSeconds
	if expiresIn == 0 {
		expiresIn = h.expiresInFromExpiresAt(p.ExpiresAt)
	}
	return &domain.Poll{
		Options:          append([]string(nil), p.Options...),
		ExpiresInSeconds: expiresIn,
		AllowMultiple:    p.AllowMultiple,
	}
}

func (h *Hydrator) expiresInFromExpiresAt(expiresAt *time.Time) int64 {
	if expiresAt == nil {
		return domain.DefaultPollExpiry
	}
	delta := int64(expiresAt.Sub(h.now()).Seconds())
	for _, choice := range domain.PollExpiryChoices {
		if choice >= delta {
			return choice
		}
	}
	return domain.DefaultPollExpiry
}

// replyMentionPrefix assembles the mention set of a reply: the parent's
// author plus everyone the parent mentions, minus the replying user,
// de-duplicated in encounter order, each followed by a space. Empty when
// nobody is left to mention.
func replyMentionPrefix(parent *domain.Status, selfAcct string) string {
	seen := make(map[string]bool)
	var handles []string
	for _, acct := range append([]string{parent.Account.Acct}, mentionAccts(parent.Mentions)...) {
		if acct == selfAcct || seen[acct] {
			continue
		}
		seen[acct] = true
		handles = append(handles, "@"+acct)
	}
	if len(handles) == 0 {
		return ""
	}
	return strings.Join(handles, " ") + " "
}

func mentionAccts(mentions []domain.Mention) []string {
	accts := make([]string, len(mentions))
	for i, m := range mentions {
		accts[i] = m.Acct
	}
	return accts
}

func pollOptionTitles(options []domain.PollOption) []string {
	titles := make([]string, len(options))
	for i, o := range options {
		titles[i] = o.Title
	}
	return titles
}

func orDefault(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
