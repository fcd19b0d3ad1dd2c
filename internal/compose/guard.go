package compose

import (
	"strings"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

// CanDiscard reports whether closing the session loses nothing worth a
// confirmation. selfID is the current user's account id, used to ignore the
// auto-inserted mention when replying to someone else.
//
// Known quirk, kept on purpose: a session whose attachments are all
// committed counts as safe even when the body was edited after the uploads.
// Attachments are the expensive part; the text is considered cheap to lose.
func CanDiscard(s *domain.Session, selfID string) bool {
	if s.Phase == domain.PhaseHydrating || s.Phase == domain.PhaseSubmitting {
		return false
	}

	if s.BodyText == "" && len(s.Attachments) == 0 {
		return true
	}

	if len(s.Attachments) > 0 && allCommitted(s.Attachments) {
		return true
	}

	if s.Origin.Kind == domain.OriginReply {
		parent := s.Origin.ReplyTo
		notSelf := parent.Account.Id != selfID
		onlyMention := strings.TrimSpace(s.BodyText) == "@"+parent.Account.Acct
		if notSelf && onlyMention {
			return true
		}
	}

	if s.PristineBody != nil && s.BodyText == *s.PristineBody {
		return true
	}

	return false
}

func allCommitted(attachments []domain.Attachment) bool {
	for _, a := range attachments {
		if !a.Committed() {
			return false
		}
	}
	return true
}
