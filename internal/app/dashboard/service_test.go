package dashboard

import (
	"context"
	"errors"
	"testing"

	memtokenstore "github.com/Mergington-High/activity-signup-client/internal/adapters/memory/tokenstore"
	"github.com/Mergington-High/activity-signup-client/internal/app/catalog"
	"github.com/Mergington-High/activity-signup-client/internal/app/registration"
	"github.com/Mergington-High/activity-signup-client/internal/app/session"
	"github.com/Mergington-High/activity-signup-client/internal/domain"
	"github.com/Mergington-High/activity-signup-client/internal/platform/metrics"
	activityapiport "github.com/Mergington-High/activity-signup-client/internal/ports/out/activityapi"
	displayport "github.com/Mergington-High/activity-signup-client/internal/ports/out/display"
	viewport "github.com/Mergington-High/activity-signup-client/internal/ports/out/view"

	"github.com/golang-jwt/jwt/v5"
)

// fakeAPI is a full activityapi.Client double with one seeded activity.
type fakeAPI struct {
	token       string
	loginErr    error
	createErr   error
	listErr     error
	catalog     domain.Catalog
	listCalls   int
	loginCalls  int
	createCalls int
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAPI) CreateUser(_ context.Context, _, _ string) error {
	f.createCalls++
	return f.createErr
}

func (f *fakeAPI) ListActivities(context.Context, string) (domain.Catalog, error) {
	f.listCalls++
	return f.catalog, f.listErr
}

func (f *fakeAPI) Signup(context.Context, string, domain.ActivityName, string) (string, error) {
	return "", nil
}

func (f *fakeAPI) Unregister(context.Context, string, domain.ActivityName, string) (string, error) {
	return "", nil
}

type fakeRenderer struct {
	mode    viewport.Mode
	all     []domain.ActivityView
	mine    []domain.MyEntry
	renders int
}

func (f *fakeRenderer) SetMode(m viewport.Mode)                  { f.mode = m }
func (f *fakeRenderer) RenderCatalog(all []domain.ActivityView) { f.all = all; f.renders++ }
func (f *fakeRenderer) RenderMine(mine []domain.MyEntry)        { f.mine = mine }

type recordedNote struct {
	text string
	kind displayport.Kind
}

type fakeNotifier struct {
	notes []recordedNote
}

func (f *fakeNotifier) Notify(text string, kind displayport.Kind) {
	f.notes = append(f.notes, recordedNote{text: text, kind: kind})
}

func mintToken(t *testing.T, sub string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return raw
}

type fixture struct {
	api      *fakeAPI
	sess     *session.Service
	renderer *fakeRenderer
	notifier *fakeNotifier
	svc      *Service
}

func newFixture(t *testing.T, api *fakeAPI) *fixture {
	t.Helper()
	sess := session.NewService(memtokenstore.NewStore())
	renderer := &fakeRenderer{}
	notifier := &fakeNotifier{}
	col := metrics.NewCollector()
	cat := catalog.NewService(api, sess, renderer, notifier, col)
	reg := registration.NewService(api, sess, cat, notifier, col)
	return &fixture{
		api:      api,
		sess:     sess,
		renderer: renderer,
		notifier: notifier,
		svc:      NewService(api, sess, cat, reg, notifier, renderer),
	}
}

func TestLogin_BringsUpDashboardAndSyncs(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		token: mintToken(t, "emma@mergington.edu"),
		catalog: domain.Catalog{{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants:    []domain.SubjectID{"emma@mergington.edu"},
		}},
	}
	f := newFixture(t, api)

	if err := f.svc.Login(context.Background(), "emma@mergington.edu", "pw"); err != nil {
		t.Fatalf("Login err=%v", err)
	}
	if f.renderer.mode != viewport.ModeDashboard {
		t.Fatalf("mode=%q", f.renderer.mode)
	}
	if api.listCalls != 1 || len(f.renderer.all) != 1 || !f.renderer.all[0].SignedUp {
		t.Fatalf("listCalls=%d all=%+v", api.listCalls, f.renderer.all)
	}
}

func TestLogin_FailureNotifiesWithServiceDetail(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{loginErr: &activityapiport.Error{Status: 401, Detail: "Incorrect username or password"}}
	f := newFixture(t, api)

	if err := f.svc.Login(context.Background(), "emma@mergington.edu", "bad"); err == nil {
		t.Fatalf("expected error")
	}
	if f.sess.IsAuthenticated() {
		t.Fatalf("session should stay unauthenticated")
	}
	if len(f.notifier.notes) != 1 || f.notifier.notes[0].text != "Incorrect username or password" {
		t.Fatalf("notes=%+v", f.notifier.notes)
	}
	if api.listCalls != 0 {
		t.Fatalf("no catalog sync after failed login")
	}
}

func TestLogin_MalformedTokenFromService(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{token: "not-a-jwt"}
	f := newFixture(t, api)

	if err := f.svc.Login(context.Background(), "emma@mergington.edu", "pw"); err == nil {
		t.Fatalf("expected error")
	}
	if f.sess.IsAuthenticated() {
		t.Fatalf("session should stay unauthenticated")
	}
	if len(f.notifier.notes) != 1 || f.notifier.notes[0].kind != displayport.KindError {
		t.Fatalf("notes=%+v", f.notifier.notes)
	}
}

func TestCreateAccount_SignsUpThenLogsIn(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{token: mintToken(t, "noah@mergington.edu")}
	f := newFixture(t, api)

	if err := f.svc.CreateAccount(context.Background(), "noah@mergington.edu", "pw"); err != nil {
		t.Fatalf("CreateAccount err=%v", err)
	}
	if api.createCalls != 1 || api.loginCalls != 1 {
		t.Fatalf("createCalls=%d loginCalls=%d", api.createCalls, api.loginCalls)
	}
	if !f.sess.IsAuthenticated() {
		t.Fatalf("expected authenticated after signup-then-login")
	}
	if len(f.notifier.notes) == 0 || f.notifier.notes[0].text != "Account created" {
		t.Fatalf("notes=%+v", f.notifier.notes)
	}
}

func TestCreateAccount_Rejected(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{createErr: &activityapiport.Error{Status: 400, Detail: "Email already registered"}}
	f := newFixture(t, api)

	if err := f.svc.CreateAccount(context.Background(), "dup@mergington.edu", "pw"); err == nil {
		t.Fatalf("expected error")
	}
	if api.loginCalls != 0 {
		t.Fatalf("must not attempt login after rejected signup")
	}
	if len(f.notifier.notes) != 1 || f.notifier.notes[0].text != "Email already registered" {
		t.Fatalf("notes=%+v", f.notifier.notes)
	}
}

func TestLogout_ReturnsToAuthAndNotifies(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{token: mintToken(t, "emma@mergington.edu")}
	f := newFixture(t, api)
	if err := f.svc.Login(context.Background(), "emma@mergington.edu", "pw"); err != nil {
		t.Fatalf("Login err=%v", err)
	}

	if err := f.svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err=%v", err)
	}
	if f.sess.IsAuthenticated() {
		t.Fatalf("expected unauthenticated")
	}
	if f.renderer.mode != viewport.ModeAuth {
		t.Fatalf("mode=%q", f.renderer.mode)
	}
	last := f.notifier.notes[len(f.notifier.notes)-1]
	if last.text != "Logged out" || last.kind != displayport.KindSuccess {
		t.Fatalf("last note=%+v", last)
	}
}

func TestBootstrap_RestoresPersistedSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memtokenstore.NewStore()
	if err := store.Save(ctx, mintToken(t, "emma@mergington.edu")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	api := &fakeAPI{catalog: domain.Catalog{{Name: "Chess Club", MaxParticipants: 12}}}
	sess := session.NewService(store)
	renderer := &fakeRenderer{}
	notifier := &fakeNotifier{}
	col := metrics.NewCollector()
	cat := catalog.NewService(api, sess, renderer, notifier, col)
	reg := registration.NewService(api, sess, cat, notifier, col)
	svc := NewService(api, sess, cat, reg, notifier, renderer)

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap err=%v", err)
	}
	if renderer.mode != viewport.ModeDashboard || api.listCalls != 1 {
		t.Fatalf("mode=%q listCalls=%d", renderer.mode, api.listCalls)
	}
}

func TestBootstrap_NoSessionShowsAuth(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	f := newFixture(t, api)

	if err := f.svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap err=%v", err)
	}
	if f.renderer.mode != viewport.ModeAuth || api.listCalls != 0 {
		t.Fatalf("mode=%q listCalls=%d", f.renderer.mode, api.listCalls)
	}
}

func TestToggle_DelegatesToRegistration(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{token: mintToken(t, "emma@mergington.edu")}
	f := newFixture(t, api)
	if err := f.svc.Login(context.Background(), "emma@mergington.edu", "pw"); err != nil {
		t.Fatalf("Login err=%v", err)
	}
	before := api.listCalls

	if err := f.svc.Toggle(context.Background(), "Chess Club", false); err != nil {
		t.Fatalf("Toggle err=%v", err)
	}
	if api.listCalls != before+1 {
		t.Fatalf("expected exactly one refresh after the transition")
	}

	var unauthErr error
	if err := f.svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err=%v", err)
	}
	unauthErr = f.svc.Toggle(context.Background(), "Chess Club", false)
	if !errors.Is(unauthErr, session.ErrNotAuthenticated) {
		t.Fatalf("err=%v, want ErrNotAuthenticated", unauthErr)
	}
}
