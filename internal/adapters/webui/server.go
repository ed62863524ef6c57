package webui

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Mergington-High/activity-signup-client/internal/domain"
	viewport "github.com/Mergington-High/activity-signup-client/internal/ports/out/view"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Actions is satisfied by *dashboard.Service. Errors returned here are
// advisory: the user-visible outcome is already on the notification channel,
// so handlers only log them.
type Actions interface {
	Login(ctx context.Context, username, password string) error
	CreateAccount(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Toggle(ctx context.Context, name domain.ActivityName, currentlySignedUp bool) error
}

// Identity exposes the current session identity for page rendering; it is
// satisfied by *session.Service.
type Identity interface {
	Subject() domain.SubjectID
}

// Server serves the localhost dashboard. Every mutation is a form POST that
// redirects back to the page; the page itself renders whatever the core last
// pushed into State.
type Server struct {
	actions  Actions
	identity Identity
	state    *State
	page     *template.Template
}

// ServerOptions carries the optional endpoints.
type ServerOptions struct {
	// MetricsHandler, when set, is mounted at GET /metrics.
	MetricsHandler http.Handler
}

func NewServer(actions Actions, identity Identity, state *State) *Server {
	// pathescape keeps activity names with spaces routable (urlquery would
	// encode a space as "+", which survives path unescaping literally).
	funcs := template.FuncMap{"pathescape": func(s domain.ActivityName) string {
		return url.PathEscape(string(s))
	}}
	return &Server{
		actions:  actions,
		identity: identity,
		state:    state,
		page:     template.Must(template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")),
	}
}

// NewRouter constructs the dashboard HTTP router.
func NewRouter(s *Server, opts ServerOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Get("/", s.handlePage)
	r.Post("/login", s.handleLogin)
	r.Post("/signup", s.handleSignup)
	r.Post("/logout", s.handleLogout)
	r.Post("/refresh", s.handleRefresh)
	r.Post("/activities/{name}/toggle", s.handleToggle)

	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	pd := s.state.Snapshot()
	if pd.Mode == viewport.ModeDashboard {
		pd.Subject = s.identity.Subject()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.ExecuteTemplate(w, "page", pd); err != nil {
		log.Printf("render page: %v", err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if err := s.actions.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password")); err != nil {
		log.Printf("login: %v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if err := s.actions.CreateAccount(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password")); err != nil {
		log.Printf("create account: %v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.actions.Logout(r.Context()); err != nil {
		log.Printf("logout: %v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.actions.Refresh(r.Context()); err != nil {
		log.Printf("refresh: %v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		http.Error(w, "bad activity name", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	signedUp := r.PostForm.Get("signed_up") == "true"
	if err := s.actions.Toggle(r.Context(), domain.ActivityName(name), signedUp); err != nil {
		log.Printf("toggle %q: %v", name, err)
	}
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
