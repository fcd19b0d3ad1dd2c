package compose

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/fedipost-dev/fedipost/shared/domain"
	serrors "github.com/fedipost-dev/fedipost/shared/errors"
	"github.com/fedipost-dev/fedipost/shared/logger"
)

// APIService is everything the controller needs from the instance API.
type APIService interface {
	FetchInstanceConfig(ctx context.Context) (*domain.InstanceConfig, error)
	ListCustomEmojis(ctx context.Context) ([]domain.CustomEmoji, error)
	SearchService
	SourceFetcher
	MediaUploader
	StatusService
}

type Deps struct {
	API             APIService
	Languages       LanguageStore
	Self            domain.Account
	DefaultLanguage string
}

// Controller owns one session's state and sequences hydration, editing,
// autocompletion and submission over it. Nothing else mutates the session:
// resolver, validator and orchestrator work on snapshots and the controller
// applies whatever they return.
type Controller struct {
	mu   sync.Mutex
	deps Deps
	cfg  domain.InstanceConfig

	session      *domain.Session
	resolver     *Resolver
	orchestrator *Orchestrator

	// hydrationFailed pins an edit session whose source fetch failed; it
	// stays inert until closed.
	hydrationFailed bool
}

// Open creates and hydrates a session. The instance configuration is
// fetched once here; a failed emoji-directory fetch is tolerated and just
// yields no emoji suggestions for the session. For the edit origin a failed
// source fetch still returns the (inert) controller together with the
// hydration error so the caller can surface the reason verbatim.
func Open(ctx context.Context, origin domain.Origin, deps Deps) (*Controller, error) {
	cfg, err := deps.API.FetchInstanceConfig(ctx)
	if err != nil {
		return nil, &serrors.HydrationError{Reason: err.Error()}
	}

	emojis, err := deps.API.ListCustomEmojis(ctx)
	if err != nil {
		logger.Log.Warn("custom emoji fetch failed, emoji suggestions disabled",
			"component", "session",
			"error", err)
		emojis = nil
	}

	s := &domain.Session{
		ID:     uuid.NewString(),
		Origin: origin,
		Phase:  domain.PhaseHydrating,
	}
	c := &Controller{
		deps:         deps,
		cfg:          *cfg,
		session:      s,
		resolver:     NewResolver(deps.API, emojis),
		orchestrator: NewOrchestrator(deps.API, deps.API),
	}

	hydrator := NewHydrator(deps.API, deps.Languages, deps.Self, deps.DefaultLanguage)
	if err := hydrator.Hydrate(ctx, s); err != nil {
		c.hydrationFailed = true
		return c, err
	}

	logger.Log.Info("session opened",
		"component", "session",
		"session", s.ID,
		"origin", origin.Kind)
	return c, nil
}

// Session returns a copy of the current state for reading.
func (c *Controller) Session() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.session
}

func (c *Controller) Config() domain.InstanceConfig {
	return c.cfg
}

// editable rejects mutation while the session is hydrating, submitting,
// already submitted, or pinned by a failed edit hydration.
func (c *Controller) editable() error {
	if c.hydrationFailed {
		return &serrors.ErrorWithStatusCode{Message: "Session failed to load and can only be closed", StatusCode: http.StatusConflict}
	}
	switch c.session.Phase {
	case domain.PhaseHydrating, domain.PhaseSubmitting:
		return &serrors.ErrorWithStatusCode{Message: "Session is busy", StatusCode: http.StatusConflict}
	case domain.PhaseSubmitted:
		return &serrors.ErrorWithStatusCode{Message: "Session is already submitted", StatusCode: http.StatusConflict}
	}
	return nil
}

func (c *Controller) SetBody(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	c.session.BodyText = text
	return nil
}

func (c *Controller) SetContentWarning(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	c.session.ContentWarningText = text
	return nil
}

func (c *Controller) SetSensitive(sensitive bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if c.session.Editing() {
		return &serrors.ErrorWithStatusCode{Message: "Sensitivity can't be changed on an existing post", StatusCode: http.StatusConflict}
	}
	c.session.Sensitive = sensitive
	return nil
}

func (c *Controller) SetVisibility(v domain.Visibility) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if c.session.Editing() {
		return &serrors.ErrorWithStatusCode{Message: "Visibility can't be changed on an existing post", StatusCode: http.StatusConflict}
	}
	c.session.Visibility = v
	return nil
}

// SetLanguage changes the session language and remembers it for future
// sessions. Persistence failures are logged, not surfaced; the session
// state is already correct.
func (c *Controller) SetLanguage(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if c.session.Editing() {
		return &serrors.ErrorWithStatusCode{Message: "Language can't be changed on an existing post", StatusCode: http.StatusConflict}
	}
	if code == "" {
		code = c.deps.DefaultLanguage
	}
	c.session.Language = code
	if err := c.deps.Languages.SaveLastUsedLanguage(code); err != nil {
		logger.Log.Error("failed to persist language",
			"component", "session",
			"session", c.session.ID,
			"error", err)
	}
	return nil
}

// AddFiles validates and stages local files as pending attachments.
func (c *Controller) AddFiles(paths []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if c.session.Poll != nil {
		return &serrors.ValidationError{Message: "Remove the poll to attach files"}
	}
	if err := ValidateAttachmentAdd(len(c.session.Attachments), len(paths), c.cfg.MaxMediaAttachments); err != nil {
		return err
	}
	attachments, err := ProbeFiles(paths, c.cfg)
	if err != nil {
		return err
	}
	c.session.Attachments = append(c.session.Attachments, attachments...)
	return nil
}

func (c *Controller) RemoveAttachment(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if index < 0 || index >= len(c.session.Attachments) {
		return &serrors.ErrorWithStatusCode{Message: "No such attachment", StatusCode: http.StatusNotFound}
	}
	c.session.Attachments = append(c.session.Attachments[:index], c.session.Attachments[index+1:]...)
	return nil
}

// SetAttachmentDescription edits alt text. Committed attachments are
// immutable; their description was fixed at upload time.
func (c *Controller) SetAttachmentDescription(index int, description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if index < 0 || index >= len(c.session.Attachments) {
		return &serrors.ErrorWithStatusCode{Message: "No such attachment", StatusCode: http.StatusNotFound}
	}
	if c.session.Attachments[index].Committed() {
		return &serrors.ErrorWithStatusCode{Message: "Description can't be changed after upload", StatusCode: http.StatusConflict}
	}
	c.session.Attachments[index].Description = description
	return nil
}

// AddPoll creates the default two-option, one-day poll. Disabled while any
// attachment exists.
func (c *Controller) AddPoll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if !CanAddPoll(c.session) {
		return &serrors.ValidationError{Message: "Remove attachments to add a poll"}
	}
	c.session.Poll = &domain.Poll{
		Options:          []string{"", ""},
		ExpiresInSeconds: domain.DefaultPollExpiry,
	}
	return nil
}

func (c *Controller) UpdatePoll(p domain.Poll) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if c.session.Poll == nil {
		return &serrors.ErrorWithStatusCode{Message: "Session has no poll", StatusCode: http.StatusNotFound}
	}
	if err := ValidatePollShape(&p, c.cfg); err != nil {
		return err
	}
	c.session.Poll = &p
	return nil
}

func (c *Controller) RemovePoll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	c.session.Poll = nil
	return nil
}

// Autocomplete resolves a trigger and query against the session's resolver.
// It deliberately runs outside the session lock; the resolver guards its
// own race state.
func (c *Controller) Autocomplete(ctx context.Context, trigger Trigger, query string) ([]Suggestion, bool, error) {
	return c.resolver.Resolve(ctx, trigger, query)
}

// AcceptSuggestion splices a chosen suggestion over the trigger+query span.
func (c *Controller) AcceptSuggestion(start, end int, trigger Trigger, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	c.session.BodyText = SpliceExpansion(c.session.BodyText, start, end, Expansion(trigger, value))
	return nil
}

// Meter reports the character budget state for the current draft.
func (c *Controller) Meter() Meter {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := CountableLength(c.session.BodyText, c.session.ContentWarningText, c.cfg.CharactersReservedPerURL)
	return BudgetMeter(count, c.cfg.MaxCharacters)
}

// Submit drives the submission. The orchestrator works on a snapshot; the
// controller applies the upload outcomes afterwards so remote ids earned in
// a failed attempt stick, and a retry does not re-upload them.
func (c *Controller) Submit(ctx context.Context) (*domain.Status, error) {
	c.mu.Lock()
	if err := c.editable(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if err := ValidatePoll(c.session.Poll); err != nil {
		// Local rule violation: no phase change, no network call.
		c.mu.Unlock()
		return nil, err
	}
	c.session.Phase = domain.PhaseSubmitting
	snapshot := *c.session
	snapshot.Attachments = append([]domain.Attachment(nil), c.session.Attachments...)
	c.mu.Unlock()

	status, outcomes, err := c.orchestrator.Submit(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, out := range outcomes {
		if out.Err != nil {
			continue
		}
		c.session.Attachments[out.Index].RemoteID = out.RemoteID
		c.session.Attachments[out.Index].LocalPath = ""
	}
	if err != nil {
		if _, ok := err.(*serrors.ValidationError); ok {
			// Nothing was sent; hand control straight back.
			c.session.Phase = domain.PhaseReady
		} else {
			c.session.Phase = domain.PhaseFailed
		}
		return nil, err
	}
	c.session.Phase = domain.PhaseSubmitted
	logger.Log.Info("session submitted",
		"component", "session",
		"session", c.session.ID,
		"status", status.Id)
	return status, nil
}

// CanDiscard reports whether the session can be closed without losing
// meaningful input.
func (c *Controller) CanDiscard() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CanDiscard(c.session, c.deps.Self.Id)
}

// ErrUnsavedChanges is returned by Close when discarding needs an explicit
// confirmation from the user.
var ErrUnsavedChanges = &serrors.ErrorWithStatusCode{
	Message:    "You have unsaved changes. Are you sure you want to discard this post?",
	StatusCode: http.StatusConflict,
}

// Close ends the session. Without force it refuses when the unsaved-changes
// guard says input would be lost.
func (c *Controller) Close(force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !force && !CanDiscard(c.session, c.deps.Self.Id) {
		return ErrUnsavedChanges
	}
	return nil
}

// Export serializes the session for handoff, dropping uncommitted
// attachments and reporting how many were dropped.
func (c *Controller) Export() (domain.DraftSnapshot, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ExportSnapshot(c.session)
}
