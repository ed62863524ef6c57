package view

import "github.com/Mergington-High/activity-signup-client/internal/domain"

// Mode selects which top-level surface the presentation layer shows.
type Mode string

const (
	// ModeAuth shows the login and account-creation forms.
	ModeAuth Mode = "AUTH"
	// ModeDashboard shows the activity catalog and "my activities" views.
	ModeDashboard Mode = "DASHBOARD"
)

// Renderer is the presentation sink. The core pushes fully computed view
// models into it; implementations only draw what they are given and never
// derive state of their own.
type Renderer interface {
	SetMode(mode Mode)
	RenderCatalog(all []domain.ActivityView)
	RenderMine(mine []domain.MyEntry)
}
