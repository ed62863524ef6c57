package catalog

import (
	"context"
	"fmt"

	"github.com/Mergington-High/activity-signup-client/internal/app/session"
	"github.com/Mergington-High/activity-signup-client/internal/domain"
	activityapiport "github.com/Mergington-High/activity-signup-client/internal/ports/out/activityapi"
	displayport "github.com/Mergington-High/activity-signup-client/internal/ports/out/display"
	viewport "github.com/Mergington-High/activity-signup-client/internal/ports/out/view"
)

const (
	failedToLoadMessage = "Failed to load activities"
	emptyMineNote       = "You are not signed up for any activities yet"
)

// Notifier is satisfied by *notify.Channel.
type Notifier interface {
	Notify(text string, kind displayport.Kind)
}

// Recorder counts refresh outcomes; satisfied by *metrics.Collector.
type Recorder interface {
	RecordRefresh(ok bool)
}

// Service synchronizes the rendered views with the server's activity roster.
type Service struct {
	api      activityapiport.Client
	sess     *session.Service
	renderer viewport.Renderer
	notifier Notifier
	rec      Recorder
}

func NewService(api activityapiport.Client, sess *session.Service, renderer viewport.Renderer, notifier Notifier, rec Recorder) *Service {
	return &Service{api: api, sess: sess, renderer: renderer, notifier: notifier, rec: rec}
}

// Refresh fetches the full catalog and re-renders both derived views. The
// catalog is rebuilt from scratch every time; nothing is merged or cached.
// On failure it fires exactly one user-visible notification and leaves the
// previously rendered views untouched.
func (s *Service) Refresh(ctx context.Context) error {
	tok, ok := s.sess.Token()
	if !ok {
		return session.ErrNotAuthenticated
	}

	cat, err := s.api.ListActivities(ctx, tok)
	if err != nil {
		s.rec.RecordRefresh(false)
		s.notifier.Notify(failedToLoadMessage, displayport.KindError)
		return fmt.Errorf("list activities: %w", err)
	}

	all, mine := BuildViews(cat, s.sess.Subject())
	s.renderer.RenderCatalog(all)
	s.renderer.RenderMine(mine)
	s.rec.RecordRefresh(true)
	return nil
}

// BuildViews derives the two view models from a catalog snapshot, preserving
// server iteration order in both.
func BuildViews(cat domain.Catalog, subject domain.SubjectID) ([]domain.ActivityView, []domain.MyEntry) {
	all := make([]domain.ActivityView, 0, len(cat))
	mine := make([]domain.MyEntry, 0)
	for _, a := range cat {
		v := domain.ActivityView{
			Name:             a.Name,
			Description:      a.Description,
			Schedule:         a.Schedule,
			ParticipantCount: len(a.Participants),
			MaxParticipants:  a.MaxParticipants,
			SpotsLeft:        a.SpotsLeft(),
			SignedUp:         a.HasParticipant(subject),
		}
		all = append(all, v)
		if v.SignedUp {
			mine = append(mine, domain.MyEntry{Name: a.Name, Schedule: a.Schedule})
		}
	}
	if len(mine) == 0 {
		mine = append(mine, domain.MyEntry{Placeholder: true, Note: emptyMineNote})
	}
	return all, mine
}
