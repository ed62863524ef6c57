package webui

import (
	"sync"

	"github.com/Mergington-High/activity-signup-client/internal/domain"
	displayport "github.com/Mergington-High/activity-signup-client/internal/ports/out/display"
	viewport "github.com/Mergington-High/activity-signup-client/internal/ports/out/view"
)

// Notification is the currently visible status message, if any.
type Notification struct {
	Text string
	Kind displayport.Kind
}

// PageData is the snapshot the page template renders from. Subject is filled
// in by the page handler from the live session, not stored here.
type PageData struct {
	Mode         viewport.Mode
	Subject      domain.SubjectID
	Catalog      []domain.ActivityView
	Mine         []domain.MyEntry
	Notification *Notification
}

// State is the render sink: the core pushes fully computed view models into
// it and the HTTP handlers read consistent snapshots back out. It implements
// both view.Renderer and display.Sink and is safe for concurrent use.
type State struct {
	mu sync.RWMutex

	mode    viewport.Mode
	catalog []domain.ActivityView
	mine    []domain.MyEntry
	note    *Notification
}

func NewState() *State {
	return &State{mode: viewport.ModeAuth}
}

func (s *State) SetMode(mode viewport.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	if mode == viewport.ModeAuth {
		s.catalog = nil
		s.mine = nil
	}
}

func (s *State) RenderCatalog(all []domain.ActivityView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = append([]domain.ActivityView(nil), all...)
}

func (s *State) RenderMine(mine []domain.MyEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mine = append([]domain.MyEntry(nil), mine...)
}

func (s *State) Show(text string, kind displayport.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = &Notification{Text: text, Kind: kind}
}

func (s *State) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = nil
}

// Snapshot returns a consistent copy for rendering.
func (s *State) Snapshot() PageData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var note *Notification
	if s.note != nil {
		n := *s.note
		note = &n
	}
	return PageData{
		Mode:         s.mode,
		Catalog:      append([]domain.ActivityView(nil), s.catalog...),
		Mine:         append([]domain.MyEntry(nil), s.mine...),
		Notification: note,
	}
}
