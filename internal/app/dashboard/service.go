package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mergington-High/activity-signup-client/internal/app/catalog"
	"github.com/Mergington-High/activity-signup-client/internal/app/registration"
	"github.com/Mergington-High/activity-signup-client/internal/app/session"
	"github.com/Mergington-High/activity-signup-client/internal/domain"
	"github.com/Mergington-High/activity-signup-client/internal/platform/token"
	activityapiport "github.com/Mergington-High/activity-signup-client/internal/ports/out/activityapi"
	displayport "github.com/Mergington-High/activity-signup-client/internal/ports/out/display"
	viewport "github.com/Mergington-High/activity-signup-client/internal/ports/out/view"
)

const (
	loginFailedMessage    = "Login failed. Check your username and password."
	signupFailedMessage   = "Could not create the account."
	loggedOutMessage      = "Logged out"
	accountCreatedMessage = "Account created"
)

// Notifier is satisfied by *notify.Channel.
type Notifier interface {
	Notify(text string, kind displayport.Kind)
}

// Service is the action dispatcher behind the presentation layer: the flows
// the original UI wired through DOM callbacks, expressed over the core
// services. Every failure is converted to a single user-visible notification
// at this boundary; returned errors are for logging only and never carry new
// user-facing behavior.
type Service struct {
	api      activityapiport.Client
	sess     *session.Service
	catalog  *catalog.Service
	reg      *registration.Service
	notifier Notifier
	renderer viewport.Renderer
}

func NewService(
	api activityapiport.Client,
	sess *session.Service,
	cat *catalog.Service,
	reg *registration.Service,
	notifier Notifier,
	renderer viewport.Renderer,
) *Service {
	return &Service{api: api, sess: sess, catalog: cat, reg: reg, notifier: notifier, renderer: renderer}
}

// Bootstrap restores a persisted session at startup and renders the matching
// mode. A failed restore simply starts the client logged out.
func (s *Service) Bootstrap(ctx context.Context) error {
	restoreErr := s.sess.Restore(ctx)

	if !s.sess.IsAuthenticated() {
		s.renderer.SetMode(viewport.ModeAuth)
		return restoreErr
	}

	s.renderer.SetMode(viewport.ModeDashboard)
	if err := s.catalog.Refresh(ctx); err != nil {
		return err
	}
	return restoreErr
}

// Login exchanges credentials for a token and brings up the dashboard.
func (s *Service) Login(ctx context.Context, username, password string) error {
	raw, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.notifier.Notify(failureText(err, loginFailedMessage), displayport.KindError)
		return fmt.Errorf("login: %w", err)
	}

	if err := s.sess.Login(ctx, raw); err != nil {
		if errors.Is(err, token.ErrMalformedToken) {
			s.notifier.Notify(loginFailedMessage, displayport.KindError)
			return fmt.Errorf("establish session: %w", err)
		}
		// Persistence failed but the in-memory session is live; the login
		// still succeeds for this run.
	}

	s.renderer.SetMode(viewport.ModeDashboard)
	return s.catalog.Refresh(ctx)
}

// CreateAccount registers a new account and, on success, logs in with the
// same credentials (accounts sign in with their registered email).
func (s *Service) CreateAccount(ctx context.Context, email, password string) error {
	if err := s.api.CreateUser(ctx, email, password); err != nil {
		s.notifier.Notify(failureText(err, signupFailedMessage), displayport.KindError)
		return fmt.Errorf("create account: %w", err)
	}
	s.notifier.Notify(accountCreatedMessage, displayport.KindSuccess)
	return s.Login(ctx, email, password)
}

// Logout tears the session down and returns to the auth forms.
func (s *Service) Logout(ctx context.Context) error {
	err := s.sess.Logout(ctx)
	s.renderer.SetMode(viewport.ModeAuth)
	s.notifier.Notify(loggedOutMessage, displayport.KindSuccess)
	return err
}

// Refresh re-synchronizes the catalog views.
func (s *Service) Refresh(ctx context.Context) error {
	return s.catalog.Refresh(ctx)
}

// Toggle applies the signup/unregister transition for one activity row.
func (s *Service) Toggle(ctx context.Context, name domain.ActivityName, currentlySignedUp bool) error {
	return s.reg.Apply(ctx, name, currentlySignedUp)
}

// failureText prefers the service-provided detail over the generic text.
func failureText(err error, fallback string) string {
	var se *activityapiport.Error
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return fallback
}
