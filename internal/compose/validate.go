package compose

import (
	"fmt"

	"github.com/fedipost-dev/fedipost/shared/domain"
	"github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/validation"
)

// ValidatePoll enforces the client-known poll rules just before submission:
// at least two options, none empty. Duplicates are the server's concern.
func ValidatePoll(p *domain.Poll) error {
	if p == nil {
		return nil
	}
	if len(p.Options) < 2 {
		return &errors.ValidationError{Message: "Poll must have at least 2 options"}
	}
	for _, option := range p.Options {
		if option == "" {
			return &errors.ValidationError{Message: "Some poll choices are empty"}
		}
	}
	return nil
}

// ValidatePollShape checks an edited poll against the instance bounds while
// the user is still typing. Unlike ValidatePoll it tolerates empty options,
// which only block at submission time.
func ValidatePollShape(p *domain.Poll, cfg domain.InstanceConfig) error {
	if p == nil {
		return nil
	}
	if cfg.MaxPollOptions > 0 && len(p.Options) > cfg.MaxPollOptions {
		return &errors.ValidationError{Message: fmt.Sprintf("Polls allow at most %d options", cfg.MaxPollOptions)}
	}
	if cfg.MaxCharactersPerPollOption > 0 {
		for _, option := range p.Options {
			if len([]rune(option)) > cfg.MaxCharactersPerPollOption {
				return &errors.ValidationError{Message: fmt.Sprintf("Poll options are limited to %d characters", cfg.MaxCharactersPerPollOption)}
			}
		}
	}
	if !allowedExpiry(p.ExpiresInSeconds, cfg) {
		return &errors.ValidationError{Message: "Poll duration is not allowed on this instance"}
	}
	return nil
}

func allowedExpiry(seconds int64, cfg domain.InstanceConfig) bool {
	for _, choice := range domain.PollExpiryChoices {
		if choice != seconds {
			continue
		}
		if cfg.MinPollExpiration > 0 && choice < cfg.MinPollExpiration {
			return false
		}
		if cfg.MaxPollExpiration > 0 && choice > cfg.MaxPollExpiration {
			return false
		}
		return true
	}
	return false
}

// ValidateAttachmentAdd rejects file additions that would exceed the
// instance limit. The message names the limit.
func ValidateAttachmentAdd(current, adding, maxMediaAttachments int) error {
	if current+adding > maxMediaAttachments {
		return &errors.ValidationError{
			Message: fmt.Sprintf("You can only attach up to %d files.", maxMediaAttachments),
		}
	}
	return nil
}

// ProbeFiles validates local files against the instance MIME list and reads
// their metadata. Failures become local validation errors.
func ProbeFiles(paths []string, cfg domain.InstanceConfig) ([]domain.Attachment, error) {
	attachments, err := validation.ProbeFiles(paths, cfg.SupportedMimeTypes)
	if err != nil {
		return nil, &errors.ValidationError{Message: err.Error()}
	}
	return attachments, nil
}

// Affordance predicates. Poll and file attachment are mutually exclusive at
// the control level: adding one disables the other rather than silently
// dropping state.

func CanAttachFiles(s *domain.Session, cfg domain.InstanceConfig) bool {
	return s.Poll == nil && len(s.Attachments) < cfg.MaxMediaAttachments
}

func CanAddPoll(s *domain.Session) bool {
	return s.Poll == nil && len(s.Attachments) == 0
}

// AllowMultipleSelect reports whether the file picker may accept several
// files at once; disabled once only one attachment slot remains.
func AllowMultipleSelect(s *domain.Session, cfg domain.InstanceConfig) bool {
	return len(s.Attachments) < cfg.MaxMediaAttachments-1
}
