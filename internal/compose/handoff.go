package compose

import "github.com/fedipost-dev/fedipost/shared/domain"

// ExportSnapshot serializes a session for cross-window handoff or later
// resumption. Attachments without a remote id cannot be serialized; they
// are dropped and the count is returned so the caller can warn the user
// before the handoff actually happens. The snapshot is an explicit payload
// handed between windows, never shared ambient state.
func ExportSnapshot(s *domain.Session) (domain.DraftSnapshot, int) {
	snap := domain.DraftSnapshot{
		BodyText:           s.BodyText,
		ContentWarningText: s.ContentWarningText,
		Visibility:         s.Visibility,
		Language:           s.Language,
		Sensitive:          s.Sensitive,
	}
	if s.Poll != nil {
		snap.Poll = &domain.DraftPoll{
			Options:          append([]string(nil), s.Poll.Options...),
			ExpiresInSeconds: s.Poll.ExpiresInSeconds,
			AllowMultiple:    s.Poll.AllowMultiple,
		}
	}

	dropped := 0
	for _, a := range s.Attachments {
		if !a.Committed() {
			dropped++
			continue
		}
		snap.Attachments = append(snap.Attachments, a)
	}
	return snap, dropped
}
