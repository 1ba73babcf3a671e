package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
	ucassert "github.com/aalvaropc/ghrepo/internal/usecase/assert"
	ucextract "github.com/aalvaropc/ghrepo/internal/usecase/extract"
)

// Page markers and form fields of the hosting service.
const (
	MarkerLoginPage    = "Log in"
	MarkerLoggedIn     = "create a new one"
	MarkerCreationForm = "Create a New Repository"

	LinkNewRepository = "create a new one"

	LoginFormNumber    = 1
	CreationFormNumber = 2

	FieldLogin           = "login"
	FieldPassword        = "password"
	FieldCommit          = "commit"
	FieldRepoName        = "repository[name]"
	FieldRepoDescription = "repository[description]"
	FieldRepoHomepage    = "repository[homepage]"
	FieldRepoPublic      = "repository[public]"

	CommitLogin  = "Log in"
	CommitCreate = "Create repository"
)

// RunInput holds the explicit project values given by the operator. Empty
// fields are resolved from the metadata file.
type RunInput struct {
	Name        string
	Description string
}

// MetadataResolver resolves the project metadata for a run.
type MetadataResolver interface {
	Execute(ctx context.Context, name, desc string) (domain.ProjectMetadata, error)
}

// CreateRepo creates the remote repository through the web UI and pushes the
// local repository to it. Steps run strictly in order and the first failure
// ends the run; nothing done before it is undone.
type CreateRepo struct {
	cfg      domain.Config
	vcs      ports.VCS
	browser  ports.Browser
	metadata MetadataResolver

	observer ports.StageObserver
	store    ports.RunStore
	log      *slog.Logger
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
}

type CreateRepoOption func(*CreateRepo)

func WithObserver(o ports.StageObserver) CreateRepoOption {
	return func(uc *CreateRepo) { uc.observer = o }
}

// WithStore saves a record of every run, successful or not.
func WithStore(store ports.RunStore) CreateRepoOption {
	return func(uc *CreateRepo) { uc.store = store }
}

func WithLogger(l *slog.Logger) CreateRepoOption {
	return func(uc *CreateRepo) {
		if l != nil {
			uc.log = l
		}
	}
}

func WithNow(now func() time.Time) CreateRepoOption {
	return func(uc *CreateRepo) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithWait replaces the pause taken before wiring the remote.
func WithWait(wait func(ctx context.Context, d time.Duration) error) CreateRepoOption {
	return func(uc *CreateRepo) {
		if wait != nil {
			uc.wait = wait
		}
	}
}

func NewCreateRepo(cfg domain.Config, vcs ports.VCS, browser ports.Browser, metadata MetadataResolver, opts ...CreateRepoOption) *CreateRepo {
	uc := &CreateRepo{
		cfg:      cfg,
		vcs:      vcs,
		browser:  browser,
		metadata: metadata,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
		wait:     sleep,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *CreateRepo) Execute(ctx context.Context, in RunInput) (domain.RemoteReference, error) {
	rec := &domain.RunRecord{
		Project:   in.Name,
		Account:   uc.cfg.Account,
		LoginPage: uc.cfg.LoginPageURL,
		Debug:     uc.cfg.Debug,
		StartedAt: uc.now(),
	}

	ref, err := uc.execute(ctx, in, rec)

	rec.Remote = ref
	rec.EndedAt = uc.now()
	if err != nil {
		rec.Stage = domain.StageOf(err)
		rec.Reason = err.Error()
		uc.log.Error("workflow.failed", slog.String("stage", string(rec.Stage)), slog.String("err", err.Error()))
	}
	uc.save(*rec)

	return ref, err
}

func (uc *CreateRepo) execute(ctx context.Context, in RunInput, rec *domain.RunRecord) (domain.RemoteReference, error) {
	// Local checks first: nothing touches the network until both pass.
	if err := NewGuardRemote(uc.vcs).Execute(ctx); err != nil {
		return domain.RemoteReference{}, err
	}

	meta, err := uc.metadata.Execute(ctx, in.Name, in.Description)
	if err != nil {
		return domain.RemoteReference{}, err
	}
	rec.Project = meta.Name
	if po, ok := uc.observer.(ports.ProjectObserver); ok {
		po.OnProject(meta)
	}

	uc.log.Info("workflow.start",
		slog.String("name", meta.Name),
		slog.String("account", uc.cfg.Account),
		slog.Bool("debug", uc.cfg.Debug),
	)

	state := domain.StateStart

	// 1. login page
	page, err := uc.browser.Navigate(ctx, uc.cfg.LoginPageURL)
	if err != nil {
		return domain.RemoteReference{}, domain.Fail(domain.StageLoginPageUnrecognized, "cannot load "+uc.cfg.LoginPageURL, err)
	}
	if err := check(domain.StageLoginPageUnrecognized, page, MarkerLoginPage); err != nil {
		return domain.RemoteReference{}, err
	}
	state = uc.advance(rec, state, domain.StateLoginPageLoaded)

	// 2. log in
	page, err = uc.browser.SubmitForm(ctx, LoginFormNumber, map[string]string{
		FieldLogin:    uc.cfg.Account,
		FieldPassword: uc.cfg.Password,
		FieldCommit:   CommitLogin,
	})
	if err != nil {
		return domain.RemoteReference{}, domain.Fail(domain.StageLoginFailed, "cannot submit the login form", err)
	}
	if err := check(domain.StageLoginFailed, page, MarkerLoggedIn); err != nil {
		return domain.RemoteReference{}, err
	}
	state = uc.advance(rec, state, domain.StateLoggedIn)

	// 3. creation form
	page, err = uc.browser.FollowLink(ctx, LinkNewRepository)
	if err != nil {
		return domain.RemoteReference{}, domain.Fail(domain.StageCreationFormUnrecognized, "cannot open the new repository page", err)
	}
	if err := check(domain.StageCreationFormUnrecognized, page, MarkerCreationForm); err != nil {
		return domain.RemoteReference{}, err
	}
	state = uc.advance(rec, state, domain.StateCreationFormLoaded)

	// 4. debug stops before anything is created
	if uc.cfg.Debug {
		uc.advance(rec, state, domain.StateDebugHalt)
		return domain.RemoteReference{}, domain.Fail(domain.StageDebugAbort, "debug mode, repository "+meta.Name+" not created", nil)
	}

	// 5. create
	page, err = uc.browser.SubmitForm(ctx, CreationFormNumber, map[string]string{
		FieldRepoName:        meta.Name,
		FieldRepoDescription: meta.Description,
		FieldRepoHomepage:    meta.HomepageURL,
		FieldRepoPublic:      "true",
		FieldCommit:          CommitCreate,
	})
	if err != nil {
		return domain.RemoteReference{}, domain.Fail(domain.StageRemoteURLMissing, "cannot submit the creation form", err)
	}
	state = uc.advance(rec, state, domain.StateRepoCreated)

	// 6. clone URL
	cloneURL, err := ucextract.CloneURL(page.HTML)
	if err != nil {
		return domain.RemoteReference{}, domain.Fail(domain.StageRemoteURLMissing, "no clone URL on "+pageName(page), err)
	}
	ref := domain.RemoteReference{Alias: uc.cfg.RemoteAlias, CloneURL: cloneURL}
	state = uc.advance(rec, state, domain.StateRemoteExtracted)

	// 7. wire and push
	if uc.cfg.PushDelay > 0 {
		uc.log.Debug("workflow.wait", slog.Duration("delay", uc.cfg.PushDelay))
		if err := uc.wait(ctx, uc.cfg.PushDelay); err != nil {
			return ref, domain.Fail(domain.StageRemoteWiringFailed, "interrupted before adding the remote", err)
		}
	}
	if err := uc.vcs.AddRemote(ctx, ref.Alias, ref.CloneURL); err != nil {
		return ref, domain.Fail(domain.StageRemoteWiringFailed, "cannot add remote "+ref.Alias, err)
	}
	if err := uc.vcs.Push(ctx, ref.Alias, uc.cfg.Branch); err != nil {
		return ref, domain.Fail(domain.StageRemoteWiringFailed, "cannot push "+uc.cfg.Branch+" to "+ref.Alias, err)
	}
	uc.advance(rec, state, domain.StatePushed)

	uc.log.Info("workflow.done",
		slog.String("remote", ref.Alias),
		slog.String("clone_url", ref.CloneURL),
	)
	return ref, nil
}

func (uc *CreateRepo) advance(rec *domain.RunRecord, from, to domain.State) domain.State {
	tr := domain.Transition{From: from, To: to, At: uc.now()}
	rec.Transitions = append(rec.Transitions, tr)
	uc.log.Info("workflow.transition",
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	if uc.observer != nil {
		uc.observer.OnTransition(tr)
	}
	return to
}

func (uc *CreateRepo) save(rec domain.RunRecord) {
	if uc.store == nil {
		return
	}
	id, err := uc.store.SaveRun(rec)
	if err != nil {
		uc.log.Warn("workflow.save_failed", slog.String("err", err.Error()))
		return
	}
	uc.log.Debug("workflow.saved", slog.String("id", id))
}

func check(stage domain.Stage, page domain.Page, marker string) error {
	res := ucassert.Contains(string(stage), page, marker)
	if !res.Passed {
		return domain.Fail(stage, res.Message, nil)
	}
	return nil
}

func pageName(page domain.Page) string {
	if page.URL == "" {
		return "the result page"
	}
	return page.URL
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
