package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mergington-High/activity-signup-client/internal/app/session"
	"github.com/Mergington-High/activity-signup-client/internal/domain"
	activityapiport "github.com/Mergington-High/activity-signup-client/internal/ports/out/activityapi"
	displayport "github.com/Mergington-High/activity-signup-client/internal/ports/out/display"
)

const (
	signedUpMessage     = "Signed up successfully"
	unregisteredMessage = "Unregistered successfully"
	failureMessage      = "Registration failed. Please try again."
)

// Notifier is satisfied by *notify.Channel.
type Notifier interface {
	Notify(text string, kind displayport.Kind)
}

// Refresher re-synchronizes the catalog views; satisfied by
// *catalog.Service.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Recorder counts registration outcomes; satisfied by *metrics.Collector.
type Recorder interface {
	RecordRegistration(action string, ok bool)
}

// Service performs signup/unregister transitions against the activity
// service.
type Service struct {
	api       activityapiport.Client
	sess      *session.Service
	refresher Refresher
	notifier  Notifier
	rec       Recorder
}

func NewService(api activityapiport.Client, sess *session.Service, refresher Refresher, notifier Notifier, rec Recorder) *Service {
	return &Service{api: api, sess: sess, refresher: refresher, notifier: notifier, rec: rec}
}

// Apply signs the current subject up for the named activity, or unregisters
// when currentlySignedUp is true. currentlySignedUp must come from the last
// successful sync; the client never second-guesses the server's duplicate or
// capacity checks.
//
// On success it notifies once and then triggers one full catalog refresh, so
// the UI's notion of membership is re-derived from the server rather than
// assumed from the request that was just sent. The mutating request is fully
// resolved before the refresh is issued. On failure it notifies once and
// leaves the catalog unsynced (stale but not corrupted).
func (s *Service) Apply(ctx context.Context, name domain.ActivityName, currentlySignedUp bool) error {
	tok, ok := s.sess.Token()
	if !ok {
		return session.ErrNotAuthenticated
	}
	email := string(s.sess.Subject())

	action := "signup"
	var msg string
	var err error
	if currentlySignedUp {
		action = "unregister"
		msg, err = s.api.Unregister(ctx, tok, name, email)
	} else {
		msg, err = s.api.Signup(ctx, tok, name, email)
	}

	if err != nil {
		s.rec.RecordRegistration(action, false)
		s.notifier.Notify(failureText(err), displayport.KindError)
		return fmt.Errorf("%s %q: %w", action, name, err)
	}

	s.rec.RecordRegistration(action, true)
	s.notifier.Notify(successText(msg, currentlySignedUp), displayport.KindSuccess)
	return s.refresher.Refresh(ctx)
}

// successText prefers the service-provided message over the generic text.
func successText(serviceMsg string, wasSignedUp bool) string {
	if serviceMsg != "" {
		return serviceMsg
	}
	if wasSignedUp {
		return unregisteredMessage
	}
	return signedUpMessage
}

// failureText prefers the service-provided detail over the generic text.
func failureText(err error) string {
	var se *activityapiport.Error
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return failureMessage
}
