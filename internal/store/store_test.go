package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDraftRoundTrip(t *testing.T) {
	s := newTestStore(t)

	expiresAt := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	snap := domain.DraftSnapshot{
		BodyText:           "half-written thought",
		ContentWarningText: "cw",
		Visibility:         domain.VisibilityPrivate,
		Language:           "nl",
		Sensitive:          true,
		Poll: &domain.DraftPoll{
			Options:   []string{"yes", "no"},
			ExpiresAt: &expiresAt,
		},
		Attachments: []domain.Attachment{
			{RemoteID: "m1", MimeType: "image/png", Description: "a cat"},
		},
	}

	require.NoError(t, s.SaveDraft("d1", snap))

	got, err := s.LoadDraft("d1")
	require.NoError(t, err)
	assert.Equal(t, snap.BodyText, got.BodyText)
	assert.Equal(t, snap.Visibility, got.Visibility)
	require.NotNil(t, got.Poll)
	require.NotNil(t, got.Poll.ExpiresAt)
	assert.True(t, expiresAt.Equal(*got.Poll.ExpiresAt))
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "m1", got.Attachments[0].RemoteID)
	assert.Empty(t, got.Attachments[0].LocalPath, "local paths never round-trip")
}

func TestLoadDraft_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadDraft("missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSaveDraft_Overwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveDraft("d1", domain.DraftSnapshot{BodyText: "first"}))
	require.NoError(t, s.SaveDraft("d1", domain.DraftSnapshot{BodyText: "second"}))

	got, err := s.LoadDraft("d1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.BodyText)

	records, err := s.ListDrafts()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDeleteDraft(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveDraft("d1", domain.DraftSnapshot{BodyText: "x"}))
	require.NoError(t, s.DeleteDraft("d1"))

	_, err := s.LoadDraft("d1")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	assert.NoError(t, s.DeleteDraft("d1"), "deleting twice is not an error")
}

func TestListDrafts_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveDraft("old", domain.DraftSnapshot{BodyText: "old"}))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.SaveDraft("new", domain.DraftSnapshot{BodyText: "new"}))

	records, err := s.ListDrafts()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "old", records[1].ID)
}

func TestLastUsedLanguage(t *testing.T) {
	s := newTestStore(t)

	code, err := s.LastUsedLanguage()
	require.NoError(t, err)
	assert.Empty(t, code, "unset language reads as empty, not an error")

	require.NoError(t, s.SaveLastUsedLanguage("de"))
	require.NoError(t, s.SaveLastUsedLanguage("fr"))

	code, err = s.LastUsedLanguage()
	require.NoError(t, err)
	assert.Equal(t, "fr", code)
}
