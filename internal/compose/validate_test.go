package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedipost-dev/fedipost/shared/domain"
	serrors "github.com/fedipost-dev/fedipost/shared/errors"
)

func testInstanceConfig() domain.InstanceConfig {
	return domain.InstanceConfig{
		MaxCharacters:              500,
		MaxMediaAttachments:        4,
		CharactersReservedPerURL:   23,
		SupportedMimeTypes:         []string{"image/png", "image/jpeg", "video/mp4"},
		MaxPollOptions:             4,
		MaxCharactersPerPollOption: 50,
		MinPollExpiration:          300,
		MaxPollExpiration:          604800,
	}
}

func TestValidatePoll(t *testing.T) {
	tests := []struct {
		name    string
		poll    *domain.Poll
		wantErr string
	}{
		{"no poll is fine", nil, ""},
		{"two filled options pass", &domain.Poll{Options: []string{"yes", "no"}}, ""},
		{"single option rejected", &domain.Poll{Options: []string{"only"}}, "Poll must have at least 2 options"},
		{"empty option rejected", &domain.Poll{Options: []string{"", "yes"}}, "Some poll choices are empty"},
		{"whitespace still counts as filled", &domain.Poll{Options: []string{" ", "yes"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoll(tt.poll)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *serrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantErr, vErr.Message)
		})
	}
}

func TestValidatePollShape(t *testing.T) {
	cfg := testInstanceConfig()

	t.Run("empty options tolerated while editing", func(t *testing.T) {
		assert.NoError(t, ValidatePollShape(&domain.Poll{Options: []string{"", ""}, ExpiresInSeconds: 86400}, cfg))
	})

	t.Run("too many options", func(t *testing.T) {
		p := &domain.Poll{Options: []string{"a", "b", "c", "d", "e"}, ExpiresInSeconds: 86400}
		assert.ErrorContains(t, ValidatePollShape(p, cfg), "at most 4 options")
	})

	t.Run("option over the character limit", func(t *testing.T) {
		long := make([]rune, 51)
		for i := range long {
			long[i] = 'x'
		}
		p := &domain.Poll{Options: []string{string(long), "b"}, ExpiresInSeconds: 86400}
		assert.ErrorContains(t, ValidatePollShape(p, cfg), "limited to 50 characters")
	})

	t.Run("expiry outside the enumerated set", func(t *testing.T) {
		p := &domain.Poll{Options: []string{"a", "b"}, ExpiresInSeconds: 1234}
		assert.ErrorContains(t, ValidatePollShape(p, cfg), "duration")
	})

	t.Run("expiry below the instance minimum", func(t *testing.T) {
		strict := cfg
		strict.MinPollExpiration = 1800
		p := &domain.Poll{Options: []string{"a", "b"}, ExpiresInSeconds: 300}
		assert.Error(t, ValidatePollShape(p, strict))
	})
}

func TestValidateAttachmentAdd(t *testing.T) {
	assert.NoError(t, ValidateAttachmentAdd(2, 2, 4))

	err := ValidateAttachmentAdd(3, 2, 4)
	var vErr *serrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	// The limit is named, not just "too many".
	assert.Equal(t, "You can only attach up to 4 files.", vErr.Message)
}

func TestAffordances(t *testing.T) {
	cfg := testInstanceConfig()

	t.Run("poll blocks file attachment", func(t *testing.T) {
		s := &domain.Session{Poll: &domain.Poll{Options: []string{"", ""}}}
		assert.False(t, CanAttachFiles(s, cfg))
		assert.False(t, CanAddPoll(s))
	})

	t.Run("attachments block the poll", func(t *testing.T) {
		s := &domain.Session{Attachments: []domain.Attachment{{LocalPath: "/tmp/a.png"}}}
		assert.False(t, CanAddPoll(s))
		assert.True(t, CanAttachFiles(s, cfg))
	})

	t.Run("full attachment slots", func(t *testing.T) {
		s := &domain.Session{Attachments: make([]domain.Attachment, 4)}
		assert.False(t, CanAttachFiles(s, cfg))
	})

	t.Run("multi select off at one slot left", func(t *testing.T) {
		s := &domain.Session{Attachments: make([]domain.Attachment, 3)}
		assert.False(t, AllowMultipleSelect(s, cfg))
		s.Attachments = s.Attachments[:2]
		assert.True(t, AllowMultipleSelect(s, cfg))
	})
}
