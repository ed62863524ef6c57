package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tiny dev-only activity service.
//
// This is NOT the production service. It exists to support local development
// of the web client against a real HTTP surface: form login issuing HS256
// bearer tokens, account creation, an order-stable activities object, and the
// signup/unregister transitions with the service's error details.

type activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

type server struct {
	secret []byte
	ttl    time.Duration

	mu         sync.Mutex
	users      map[string]string // email -> password
	activities []*activity       // seed order is the wire order
}

func main() {
	port := getenv("PORT", "8080")
	secret := []byte(getenv("TOKEN_SECRET", "dev-secret"))
	ttl := getenvDuration("TOKEN_TTL", 24*time.Hour)

	s := &server{
		secret:     secret,
		ttl:        ttl,
		users:      map[string]string{},
		activities: seedActivities(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /token", s.handleToken)
	mux.HandleFunc("POST /users/", s.handleCreateUser)
	mux.HandleFunc("GET /activities", s.handleListActivities)
	mux.HandleFunc("POST /activities/{name}/signup", s.handleSignup)
	mux.HandleFunc("DELETE /activities/{name}/unregister", s.handleUnregister)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("devactivities listening on :%s (ttl=%s)", port, ttl)
	log.Fatal(srv.ListenAndServe())
}

// Issue a bearer token:
//
//	POST /token  (form: username, password)
func (s *server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed form")
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	s.mu.Lock()
	stored, ok := s.users[username]
	s.mu.Unlock()
	if !ok || stored != password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to mint token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Create an account:
//
//	POST /users/  {"email": ..., "password": ...}
func (s *server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		writeDetail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.users[body.Email] = body.Password
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.subjectFromBearer(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Encode by hand so the seed order survives (a map would shuffle it).
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range s.activities {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(a.Name)
		buf.Write(key)
		buf.WriteByte(':')
		body, _ := json.Marshal(map[string]any{
			"description":      a.Description,
			"schedule":         a.Schedule,
			"max_participants": a.MaxParticipants,
			"participants":     a.Participants,
		})
		buf.Write(body)
	}
	buf.WriteByte('}')

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (s *server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.subjectFromBearer(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	email := registrationEmail(r)
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "email is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findActivity(r.PathValue("name"))
	if a == nil {
		writeDetail(w, http.StatusNotFound, "Activity not found")
		return
	}
	for _, p := range a.Participants {
		if p == email {
			writeDetail(w, http.StatusBadRequest, "Student is already signed up")
			return
		}
	}
	if len(a.Participants) >= a.MaxParticipants {
		writeDetail(w, http.StatusBadRequest, "Activity is full")
		return
	}
	a.Participants = append(a.Participants, email)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Signed up " + email + " for " + a.Name,
	})
}

func (s *server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.subjectFromBearer(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	email := registrationEmail(r)
	if email == "" {
		writeDetail(w, http.StatusBadRequest, "email is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findActivity(r.PathValue("name"))
	if a == nil {
		writeDetail(w, http.StatusNotFound, "Activity not found")
		return
	}
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "Unregistered " + email + " from " + a.Name,
			})
			return
		}
	}
	writeDetail(w, http.StatusBadRequest, "Student is not signed up for this activity")
}

// findActivity must be called with s.mu held.
func (s *server) findActivity(name string) *activity {
	for _, a := range s.activities {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (s *server) subjectFromBearer(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || raw == "" {
		return "", false
	}
	claims := jwt.MapClaims{}
	_, err := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})).ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// registrationEmail reads the JSON body, falling back to the legacy ?email=
// query parameter so older client builds keep working.
func registrationEmail(r *http.Request) string {
	var body struct {
		Email string `json:"email"`
	}
	raw, _ := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err == nil && body.Email != "" {
		return strings.TrimSpace(body.Email)
	}
	return strings.TrimSpace(r.URL.Query().Get("email"))
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func seedActivities() []*activity {
	return []*activity{
		{"Chess Club", "Learn strategies and compete in chess tournaments", "Fridays, 3:30 PM - 5:00 PM", 12, []string{"michael@mergington.edu", "daniel@mergington.edu"}},
		{"Programming Class", "Learn programming fundamentals and build software projects", "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20, []string{"emma@mergington.edu", "sophia@mergington.edu"}},
		{"Gym Class", "Physical education and sports activities", "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30, []string{"john@mergington.edu", "olivia@mergington.edu"}},
		{"Soccer Team", "Join the school soccer team and compete in matches", "Tuesdays and Thursdays, 4:00 PM - 5:30 PM", 22, []string{"liam@mergington.edu", "noah@mergington.edu"}},
		{"Basketball Team", "Practice and play basketball with the school team", "Wednesdays and Fridays, 3:30 PM - 5:00 PM", 15, []string{"ava@mergington.edu", "mia@mergington.edu"}},
		{"Art Club", "Explore your creativity through painting and drawing", "Thursdays, 3:30 PM - 5:00 PM", 15, []string{"amelia@mergington.edu", "harper@mergington.edu"}},
		{"Drama Club", "Act, direct, and produce plays and performances", "Mondays and Wednesdays, 4:00 PM - 5:30 PM", 20, []string{"ella@mergington.edu", "scarlett@mergington.edu"}},
		{"Math Club", "Solve challenging problems and participate in math competitions", "Tuesdays, 3:30 PM - 4:30 PM", 10, []string{"james@mergington.edu", "benjamin@mergington.edu"}},
		{"Debate Team", "Develop public speaking and argumentation skills", "Fridays, 4:00 PM - 5:30 PM", 12, []string{"charlotte@mergington.edu", "henry@mergington.edu"}},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", k, err)
	}
	return d
}
