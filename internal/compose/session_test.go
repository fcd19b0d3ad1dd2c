package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedipost-dev/fedipost/shared/api"
	"github.com/fedipost-dev/fedipost/shared/domain"
	serrors "github.com/fedipost-dev/fedipost/shared/errors"
)

// fakeAPI is an in-memory APIService. Zero value serves sensible defaults;
// tests override individual fields to force failures.
type fakeAPI struct {
	mu sync.Mutex

	cfg       domain.InstanceConfig
	cfgErr    error
	emojis    []domain.CustomEmoji
	emojiErr  error
	source    *domain.StatusSource
	sourceErr error

	uploadErr   map[string]error
	uploadCalls []string
	nextMediaID int

	created   *api.CreateStatusPayload
	updated   *api.UpdateStatusPayload
	statusErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cfg:       testInstanceConfig(),
		uploadErr: make(map[string]error),
	}
}

func (f *fakeAPI) FetchInstanceConfig(ctx context.Context) (*domain.InstanceConfig, error) {
	if f.cfgErr != nil {
		return nil, f.cfgErr
	}
	cfg := f.cfg
	return &cfg, nil
}

func (f *fakeAPI) ListCustomEmojis(ctx context.Context) ([]domain.CustomEmoji, error) {
	return f.emojis, f.emojiErr
}

func (f *fakeAPI) Search(ctx context.Context, entityType, query string, limit int) (*domain.SearchResults, error) {
	return &domain.SearchResults{}, nil
}

func (f *fakeAPI) FetchStatusSource(ctx context.Context, id string) (*domain.StatusSource, error) {
	if f.sourceErr != nil {
		return nil, f.sourceErr
	}
	if f.source != nil {
		return f.source, nil
	}
	return &domain.StatusSource{Id: id}, nil
}

func (f *fakeAPI) UploadMedia(ctx context.Context, localPath, description string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls = append(f.uploadCalls, localPath)
	if err := f.uploadErr[localPath]; err != nil {
		return "", err
	}
	f.nextMediaID++
	return fmt.Sprintf("media-%d", f.nextMediaID), nil
}

func (f *fakeAPI) CreateStatus(ctx context.Context, payload api.CreateStatusPayload) (*domain.Status, error) {
	f.created = &payload
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &domain.Status{Id: "created-1"}, nil
}

func (f *fakeAPI) UpdateStatus(ctx context.Context, id string, payload api.UpdateStatusPayload) (*domain.Status, error) {
	f.updated = &payload
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &domain.Status{Id: id}, nil
}

func testDeps(apiSvc *fakeAPI) Deps {
	return Deps{
		API:             apiSvc,
		Languages:       &mockLanguageStore{},
		Self:            domain.Account{Id: "self-id", Acct: "me"},
		DefaultLanguage: "en",
	}
}

func stageFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("not really an image"), 0o644))
	return p
}

func TestOpen_Blank(t *testing.T) {
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(newFakeAPI()))
	require.NoError(t, err)

	s := c.Session()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, domain.PhaseReady, s.Phase)
	assert.Equal(t, 500, c.Config().MaxCharacters)
}

func TestOpen_InstanceConfigFetchFails(t *testing.T) {
	apiSvc := newFakeAPI()
	apiSvc.cfgErr = fmt.Errorf("instance unreachable")

	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(apiSvc))

	assert.Nil(t, c)
	var hErr *serrors.HydrationError
	require.ErrorAs(t, err, &hErr)
}

func TestOpen_EmojiFetchFailureIsTolerated(t *testing.T) {
	apiSvc := newFakeAPI()
	apiSvc.emojiErr = fmt.Errorf("timeout")

	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(apiSvc))
	require.NoError(t, err)

	_, matched, err := c.Autocomplete(context.Background(), TriggerEmoji, "heart")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestOpen_EditSourceFetchFailsButSessionSurvives(t *testing.T) {
	apiSvc := newFakeAPI()
	apiSvc.sourceErr = fmt.Errorf("404 gone")
	origin := domain.Origin{Kind: domain.OriginEdit, Edit: &domain.Status{Id: "7"}}

	c, err := Open(context.Background(), origin, testDeps(apiSvc))

	// The controller exists so the failure reason can be shown, but the
	// session only accepts Close from here on.
	require.NotNil(t, c)
	var hErr *serrors.HydrationError
	require.ErrorAs(t, err, &hErr)
	assert.Equal(t, "404 gone", hErr.Reason)

	setErr := c.SetBody("ignored")
	var statusErr *serrors.ErrorWithStatusCode
	require.ErrorAs(t, setErr, &statusErr)
	assert.Equal(t, 409, statusErr.StatusCode)

	assert.NoError(t, c.Close(true))
}

func TestController_EditLocksMetadata(t *testing.T) {
	apiSvc := newFakeAPI()
	apiSvc.source = &domain.StatusSource{Id: "7", Text: "body"}
	origin := domain.Origin{Kind: domain.OriginEdit, Edit: &domain.Status{Id: "7", Visibility: "public", Language: "en"}}

	c, err := Open(context.Background(), origin, testDeps(apiSvc))
	require.NoError(t, err)

	assert.Error(t, c.SetVisibility(domain.VisibilityPrivate))
	assert.Error(t, c.SetLanguage("de"))
	assert.Error(t, c.SetSensitive(true))
	assert.NoError(t, c.SetBody("new body"), "the text itself stays editable")
}

func TestController_SetLanguagePersists(t *testing.T) {
	langs := &mockLanguageStore{}
	deps := testDeps(newFakeAPI())
	deps.Languages = langs

	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, deps)
	require.NoError(t, err)

	require.NoError(t, c.SetLanguage("de"))
	assert.Equal(t, []string{"de"}, langs.saved)
	assert.Equal(t, "de", c.Session().Language)
}

func TestController_PollAndAttachmentsExclude(t *testing.T) {
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(newFakeAPI()))
	require.NoError(t, err)

	require.NoError(t, c.AddPoll())
	s := c.Session()
	require.NotNil(t, s.Poll)
	assert.Equal(t, []string{"", ""}, s.Poll.Options)
	assert.Equal(t, int64(domain.DefaultPollExpiry), s.Poll.ExpiresInSeconds)

	err = c.AddFiles([]string{stageFile(t, "a.png")})
	var vErr *serrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	require.NoError(t, c.RemovePoll())
	require.NoError(t, c.AddFiles([]string{stageFile(t, "a.png")}))
	require.ErrorAs(t, c.AddPoll(), &vErr)
}

func TestController_AttachmentDescriptionLifecycle(t *testing.T) {
	apiSvc := newFakeAPI()
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(apiSvc))
	require.NoError(t, err)

	good := stageFile(t, "a.png")
	bad := stageFile(t, "b.png")
	apiSvc.uploadErr[bad] = fmt.Errorf("file too large")

	require.NoError(t, c.AddFiles([]string{good, bad}))
	require.NoError(t, c.SetAttachmentDescription(0, "a red bicycle"))
	require.NoError(t, c.SetBody("look"))

	_, err = c.Submit(context.Background())
	require.Error(t, err)

	// The first file uploaded; its description went with it and is fixed.
	descErr := c.SetAttachmentDescription(0, "changed my mind")
	var statusErr *serrors.ErrorWithStatusCode
	require.ErrorAs(t, descErr, &statusErr)
	assert.Equal(t, 409, statusErr.StatusCode)

	// The failed one is still local and stays editable.
	assert.NoError(t, c.SetAttachmentDescription(1, "second try alt text"))
}

func TestController_SubmitFailureKeepsCommittedUploads(t *testing.T) {
	apiSvc := newFakeAPI()
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(apiSvc))
	require.NoError(t, err)

	good := stageFile(t, "good.png")
	bad := stageFile(t, "bad.png")
	apiSvc.uploadErr[bad] = fmt.Errorf("file too large")

	require.NoError(t, c.AddFiles([]string{good, bad}))
	require.NoError(t, c.SetBody("two files"))

	_, err = c.Submit(context.Background())
	var batch *serrors.UploadBatchError
	require.ErrorAs(t, err, &batch)
	require.Len(t, batch.Failures, 1)

	s := c.Session()
	assert.Equal(t, domain.PhaseFailed, s.Phase)
	assert.True(t, s.Attachments[0].Committed(), "the successful upload's remote id sticks")
	assert.Empty(t, s.Attachments[0].LocalPath)
	assert.False(t, s.Attachments[1].Committed())

	// Retry: only the failed file goes up again.
	delete(apiSvc.uploadErr, bad)
	before := len(apiSvc.uploadCalls)

	status, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "created-1", status.Id)
	assert.Equal(t, []string{bad}, apiSvc.uploadCalls[before:])
	assert.Equal(t, domain.PhaseSubmitted, c.Session().Phase)
}

func TestController_LocalValidationDoesNotChangePhase(t *testing.T) {
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(newFakeAPI()))
	require.NoError(t, err)

	require.NoError(t, c.SetBody("vote"))
	require.NoError(t, c.AddPoll())

	_, err = c.Submit(context.Background())
	var vErr *serrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.PhaseReady, c.Session().Phase)
}

func TestController_SubmittedSessionRejectsEdits(t *testing.T) {
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(newFakeAPI()))
	require.NoError(t, err)

	require.NoError(t, c.SetBody("done"))
	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	assert.Error(t, c.SetBody("afterthought"))
	_, err = c.Submit(context.Background())
	assert.Error(t, err)
}

func TestController_CloseGuard(t *testing.T) {
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(newFakeAPI()))
	require.NoError(t, err)

	require.NoError(t, c.Close(false), "empty session closes without fuss")

	require.NoError(t, c.SetBody("precious words"))
	assert.ErrorIs(t, c.Close(false), ErrUnsavedChanges)
	assert.NoError(t, c.Close(true))
}

func TestController_Meter(t *testing.T) {
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(newFakeAPI()))
	require.NoError(t, err)

	require.NoError(t, c.SetBody("short"))
	m := c.Meter()
	assert.Equal(t, MeterHidden, m.Level)
	assert.Equal(t, 495, m.Remaining)
}

func TestController_AcceptSuggestion(t *testing.T) {
	c, err := Open(context.Background(), domain.Origin{Kind: domain.OriginBlank}, testDeps(newFakeAPI()))
	require.NoError(t, err)

	require.NoError(t, c.SetBody("hi @ali"))
	require.NoError(t, c.AcceptSuggestion(3, 7, TriggerMention, "alice@example.social"))
	assert.Equal(t, "hi @alice@example.social ", c.Session().BodyText)
}
