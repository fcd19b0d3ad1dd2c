package compose

import (
	"context"
	"sync"

	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/domain"
	"github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/logger"
)

// MediaUploader uploads one local file and returns its remote id.
type MediaUploader interface {
	UploadMedia(ctx context.Context, localPath, description string) (string, error)
}

// StatusService creates or updates a status on the instance.
type StatusService interface {
	CreateStatus(ctx context.Context, payload api.CreateStatusPayload) (*domain.Status, error)
	UpdateStatus(ctx context.Context, id string, payload api.UpdateStatusPayload) (*domain.Status, error)
}

// UploadOutcome is one attachment's settled upload. Exactly one of RemoteID
// and Err is set. Attachments already committed produce no outcome.
type UploadOutcome struct {
	Index    int
	RemoteID string
	Err      *errors.UploadError
}

// Orchestrator drives a submission over a session snapshot. It never
// mutates the session; the controller applies the returned outcomes, so
// remote ids from successful uploads survive a failed attempt and retries
// skip them.
type Orchestrator struct {
	media    MediaUploader
	statuses StatusService
}

func NewOrchestrator(media MediaUploader, statuses StatusService) *Orchestrator {
	return &Orchestrator{media: media, statuses: statuses}
}

// Submit validates, uploads every uncommitted attachment concurrently, and
// dispatches the create or update. All uploads settle before any failure is
// reported; failures come back together as one UploadBatchError.
func (o *Orchestrator) Submit(ctx context.Context, s domain.Session) (*domain.Status, []UploadOutcome, error) {
	if err := ValidatePoll(s.Poll); err != nil {
		return nil, nil, err
	}
	if s.BodyText == "" && len(s.Attachments) == 0 {
		return nil, nil, &errors.ValidationError{Message: "Write something or attach a file first"}
	}

	outcomes := o.uploadPending(ctx, s.Attachments)

	var failures []*errors.UploadError
	mediaIDs := make([]string, len(s.Attachments))
	for i, a := range s.Attachments {
		mediaIDs[i] = a.RemoteID
	}
	for _, out := range outcomes {
		if out.Err != nil {
			failures = append(failures, out.Err)
			continue
		}
		mediaIDs[out.Index] = out.RemoteID
	}
	if len(failures) > 0 {
		// Outcomes still carry the successes so the controller can persist
		// their remote ids before the retry.
		return nil, outcomes, &errors.UploadBatchError{Failures: failures}
	}

	status, err := o.dispatch(ctx, s, mediaIDs)
	if err != nil {
		return nil, outcomes, err
	}
	return status, outcomes, nil
}

// uploadPending fans out one goroutine per uncommitted attachment and waits
// for every upload to settle. There is no early abort on first failure.
func (o *Orchestrator) uploadPending(ctx context.Context, attachments []domain.Attachment) []UploadOutcome {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var outcomes []UploadOutcome

	for i, a := range attachments {
		if a.Committed() {
			continue
		}
		wg.Add(1)
		go func(i int, a domain.Attachment) {
			defer wg.Done()
			remoteID, err := o.media.UploadMedia(ctx, a.LocalPath, a.Description)
			outcome := UploadOutcome{Index: i, RemoteID: remoteID}
			if err != nil {
				outcome.Err = &errors.UploadError{Index: i, Reason: err.Error()}
			} else if remoteID == "" {
				outcome.Err = &errors.UploadError{Index: i, Reason: "upload returned no identifier"}
			}
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
		}(i, a)
	}
	wg.Wait()
	return outcomes
}

func (o *Orchestrator) dispatch(ctx context.Context, s domain.Session, mediaIDs []string) (*domain.Status, error) {
	spoiler := ""
	if s.Sensitive {
		spoiler = s.ContentWarningText
	}
	var poll *api.PollPayload
	if s.Poll != nil {
		poll = &api.PollPayload{
			Options:   s.Poll.Options,
			ExpiresIn: s.Poll.ExpiresInSeconds,
			Multiple:  s.Poll.AllowMultiple,
		}
	}
	if len(mediaIDs) == 0 {
		mediaIDs = nil
	}

	var status *domain.Status
	var err error
	if s.Editing() {
		status, err = o.statuses.UpdateStatus(ctx, s.Origin.Edit.Id, api.UpdateStatusPayload{
			Status:      s.BodyText,
			SpoilerText: spoiler,
			Language:    s.Language,
			Sensitive:   s.Sensitive,
			Poll:        poll,
			MediaIDs:    mediaIDs,
		})
	} else {
		payload := api.CreateStatusPayload{
			Status:      s.BodyText,
			SpoilerText: spoiler,
			Language:    s.Language,
			Sensitive:   s.Sensitive,
			Poll:        poll,
			MediaIDs:    mediaIDs,
			Visibility:  string(s.Visibility),
		}
		if s.Origin.Kind == domain.OriginReply {
			payload.InReplyToID = s.Origin.ReplyTo.Id
		}
		status, err = o.statuses.CreateStatus(ctx, payload)
	}
	if err != nil {
		logger.Log.Warn("status dispatch rejected",
			"component", "orchestrator",
			"session", s.ID,
			"editing", s.Editing(),
			"error", err)
		return nil, &errors.SubmissionError{Reason: err.Error()}
	}
	return status, nil
}
