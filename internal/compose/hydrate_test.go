package compose

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedipost-dev/fedipost/shared/domain"
	serrors "github.com/fedipost-dev/fedipost/shared/errors"
)

type mockSourceFetcher struct {
	source *domain.StatusSource
	err    error
}

func (m *mockSourceFetcher) FetchStatusSource(ctx context.Context, id string) (*domain.StatusSource, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.source, nil
}

type mockLanguageStore struct {
	code  string
	saved []string
	err   error
}

func (m *mockLanguageStore) LastUsedLanguage() (string, error) {
	return m.code, m.err
}

func (m *mockLanguageStore) SaveLastUsedLanguage(code string) error {
	m.saved = append(m.saved, code)
	return nil
}

func newTestHydrator(source SourceFetcher, langs LanguageStore) *Hydrator {
	return NewHydrator(source, langs, domain.Account{Id: "self-id", Acct: "me"}, "en")
}

func TestHydrate_Blank(t *testing.T) {
	h := newTestHydrator(&mockSourceFetcher{}, &mockLanguageStore{code: "de"})
	s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginBlank}}

	require.NoError(t, h.Hydrate(context.Background(), s))

	assert.Equal(t, domain.PhaseReady, s.Phase)
	assert.Empty(t, s.BodyText)
	assert.Equal(t, domain.VisibilityPublic, s.Visibility)
	assert.Equal(t, "de", s.Language, "remembered language wins over the default")
	assert.Nil(t, s.PristineBody)
}

func TestHydrate_BlankFallsBackToDefaultLanguage(t *testing.T) {
	h := newTestHydrator(&mockSourceFetcher{}, &mockLanguageStore{})
	s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginBlank}}

	require.NoError(t, h.Hydrate(context.Background(), s))
	assert.Equal(t, "en", s.Language)
}

func TestHydrate_Reply(t *testing.T) {
	parent := &domain.Status{
		Id:          "42",
		Visibility:  "unlisted",
		Language:    "fr",
		Sensitive:   true,
		SpoilerText: "politics",
		Account:     domain.Account{Id: "a1", Acct: "alice"},
		Mentions: []domain.Mention{
			{Id: "b1", Acct: "bob"},
			{Id: "self-id", Acct: "me"},
			{Id: "a1", Acct: "alice"}, // duplicate of the author
		},
	}
	h := newTestHydrator(&mockSourceFetcher{}, &mockLanguageStore{})
	s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginReply, ReplyTo: parent}}

	require.NoError(t, h.Hydrate(context.Background(), s))

	assert.Equal(t, "@alice @bob ", s.BodyText)
	assert.Equal(t, "politics", s.ContentWarningText)
	assert.True(t, s.Sensitive)
	assert.Equal(t, domain.VisibilityUnlisted, s.Visibility)
	assert.Equal(t, "fr", s.Language)
}

func TestHydrate_ReplyOnlyToSelfLeavesBodyEmpty(t *testing.T) {
	parent := &domain.Status{
		Account: domain.Account{Id: "self-id", Acct: "me"},
	}
	h := newTestHydrator(&mockSourceFetcher{}, &mockLanguageStore{})
	s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginReply, ReplyTo: parent}}

	require.NoError(t, h.Hydrate(context.Background(), s))
	assert.Empty(t, s.BodyText)
}

func TestHydrate_Draft(t *testing.T) {
	snap := &domain.DraftSnapshot{
		BodyText:           "half-written",
		ContentWarningText: "cw",
		Visibility:         domain.VisibilityPrivate,
		Language:           "nl",
		Sensitive:          true,
		Poll: &domain.DraftPoll{
			Options:          []string{"yes", "no"},
			ExpiresInSeconds: 3600,
			AllowMultiple:    true,
		},
		Attachments: []domain.Attachment{{RemoteID: "m1"}},
	}
	h := newTestHydrator(&mockSourceFetcher{}, &mockLanguageStore{})
	s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginDraft, Draft: snap}}

	require.NoError(t, h.Hydrate(context.Background(), s))

	assert.Equal(t, "half-written", s.BodyText)
	assert.Equal(t, domain.VisibilityPrivate, s.Visibility)
	require.NotNil(t, s.Poll)
	assert.Equal(t, int64(3600), s.Poll.ExpiresInSeconds)
	assert.True(t, s.Poll.AllowMultiple)
	require.Len(t, s.Attachments, 1)
	assert.True(t, s.Attachments[0].Committed())
}

func TestHydrate_DraftAbsoluteExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      int64
	}{
		{"smallest enumerated duration covering the remainder", timePtr(now.Add(40 * time.Minute)), 3600},
		{"exact match", timePtr(now.Add(30 * time.Minute)), 1800},
		{"nothing fits falls back to one day", timePtr(now.Add(10 * 24 * time.Hour)), domain.DefaultPollExpiry},
		{"missing expiry falls back to one day", nil, domain.DefaultPollExpiry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHydrator(&mockSourceFetcher{}, &mockLanguageStore{})
			h.now = func() time.Time { return now }

			snap := &domain.DraftSnapshot{
				Poll: &domain.DraftPoll{Options: []string{"a", "b"}, ExpiresAt: tt.expiresAt},
			}
			s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginDraft, Draft: snap}}
			require.NoError(t, h.Hydrate(context.Background(), s))
			require.NotNil(t, s.Poll)
			assert.Equal(t, tt.want, s.Poll.ExpiresInSeconds)
		})
	}
}

func TestHydrate_Edit(t *testing.T) {
	status := &domain.Status{
		Id:         "7",
		Visibility: "public",
		Language:   "en",
		Sensitive:  false,
		Content:    "<p>original text</p>",
		Poll: &domain.StatusPoll{
			Multiple: false,
			Options:  []domain.PollOption{{Title: "tea"}, {Title: "coffee"}},
		},
		MediaAttachments: []domain.MediaAttachment{
			{Id: "m1", Type: "image", PreviewUrl: "https://cdn.example/p.png", Description: "a cat"},
		},
	}
	fetcher := &mockSourceFetcher{source: &domain.StatusSource{Id: "7", Text: "original text", SpoilerText: "old cw"}}
	h := newTestHydrator(fetcher, &mockLanguageStore{})
	s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginEdit, Edit: status}}

	require.NoError(t, h.Hydrate(context.Background(), s))

	// Body comes from the source text, never from the rendered HTML.
	assert.Equal(t, "original text", s.BodyText)
	assert.Equal(t, "old cw", s.ContentWarningText)
	require.NotNil(t, s.PristineBody)
	assert.Equal(t, "original text", *s.PristineBody)
	require.Len(t, s.Attachments, 1)
	assert.Equal(t, "m1", s.Attachments[0].RemoteID)
	require.NotNil(t, s.Poll)
	assert.Equal(t, []string{"tea", "coffee"}, s.Poll.Options)
}

func TestHydrate_EditSourceFetchFails(t *testing.T) {
	fetcher := &mockSourceFetcher{err: assert.AnError}
	h := newTestHydrator(fetcher, &mockLanguageStore{})
	s := &domain.Session{Origin: domain.Origin{Kind: domain.OriginEdit, Edit: &domain.Status{Id: "7"}}}

	err := h.Hydrate(context.Background(), s)

	require.Error(t, err)
	var hydrationErr *serrors.HydrationError
	require.ErrorAs(t, err, &hydrationErr)
	assert.Equal(t, assert.AnError.Error(), hydrationErr.Reason, "reason surfaces verbatim")
	assert.Equal(t, domain.PhaseFailed, s.Phase)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
