package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kongenga/kongenga/internal/client/client"
	"github.com/kongenga/kongenga/internal/client/i18n"
	"github.com/kongenga/kongenga/internal/client/models"
	"github.com/kongenga/kongenga/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	password string
	user     models.User
}

// fakeBackend is an in-memory stand-in for the KONGENGA API.
type fakeBackend struct {
	srv *httptest.Server

	mu         sync.Mutex
	accounts   map[string]*fakeAccount // by email
	tokens     map[string]string       // token -> email
	jobs       map[string]bool
	seq        int
	failStatus int
	calls      map[string]int
}

func newFakeBackend(t *testing.T, jobs ...string) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		accounts: map[string]*fakeAccount{},
		tokens:   map[string]string{},
		jobs:     map[string]bool{},
		calls:    map[string]int{},
	}
	for _, j := range jobs {
		b.jobs[j] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", b.register)
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("GET /users/me", b.authed(b.me))
	mux.HandleFunc("PUT /users/me", b.authed(b.updateMe))
	mux.HandleFunc("POST /users/favorites/{jobId}", b.authed(b.toggle))
	mux.HandleFunc("GET /users/favorites", b.authed(b.favorites))
	mux.HandleFunc("PUT /users/progress", b.authed(b.progress))
	mux.HandleFunc("POST /users/me/avatar", b.authed(b.avatar))

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (b *fakeBackend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

func (b *fakeBackend) issue(email string) string {
	b.seq++
	tok := fmt.Sprintf("tok-%d", b.seq)
	b.tokens[tok] = email
	return tok
}

// seed creates an account directly.
func (b *fakeBackend) seed(email, password string, favorites ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.accounts[email] = &fakeAccount{password: password, user: models.User{
		ID: fmt.Sprintf("u-%d", b.seq), Name: "Seeded", Email: email, Role: models.RoleStudent,
		FavoriteJobs: append([]string{}, favorites...), Progress: models.DefaultProgress(),
	}}
}

func (b *fakeBackend) revokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]string{}
}

func (b *fakeBackend) setFailStatus(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
}

func (b *fakeBackend) account(email string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts[email].user
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["register"]++

	var req client.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, ok := b.accounts[req.Email]; ok {
		detail(w, http.StatusConflict, "Email already registered")
		return
	}
	b.seq++
	acc := &fakeAccount{password: req.Password, user: models.User{
		ID: fmt.Sprintf("u-%d", b.seq), Name: req.Name, Email: req.Email, Role: models.RoleStudent,
		University: req.University, PreferredLanguage: req.PreferredLanguage,
		FavoriteJobs: []string{}, Progress: models.DefaultProgress(),
	}}
	b.accounts[req.Email] = acc
	writeJSON(w, http.StatusOK, client.AuthResponse{AccessToken: b.issue(req.Email), TokenType: "bearer", User: &acc.user})
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["login"]++

	var req map[string]string
	_ = json.NewDecoder(r.Body).Decode(&req)
	acc, ok := b.accounts[req["email"]]
	if !ok || acc.password != req["password"] {
		detail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if req["userType"] == "manager" && acc.user.Role != models.RoleSiteManager {
		detail(w, http.StatusForbidden, "site manager access required")
		return
	}
	writeJSON(w, http.StatusOK, client.AuthResponse{AccessToken: b.issue(req["email"]), TokenType: "bearer", User: &acc.user})
}

func (b *fakeBackend) authed(next func(http.ResponseWriter, *http.Request, *fakeAccount)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.calls[r.Method+" "+r.URL.Path]++

		if b.failStatus != 0 {
			detail(w, b.failStatus, "Injected failure")
			return
		}
		email, ok := b.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
		if !ok {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next(w, r, b.accounts[email])
	}
}

func (b *fakeBackend) me(w http.ResponseWriter, _ *http.Request, acc *fakeAccount) {
	writeJSON(w, http.StatusOK, acc.user)
}

func (b *fakeBackend) updateMe(w http.ResponseWriter, r *http.Request, acc *fakeAccount) {
	var upd models.ProfileUpdate
	_ = json.NewDecoder(r.Body).Decode(&upd)
	if upd.Name != nil {
		acc.user.Name = *upd.Name
	}
	if upd.University != nil {
		acc.user.University = *upd.University
	}
	writeJSON(w, http.StatusOK, acc.user)
}

func (b *fakeBackend) toggle(w http.ResponseWriter, r *http.Request, acc *fakeAccount) {
	jobID := r.PathValue("jobId")
	if !b.jobs[jobID] {
		detail(w, http.StatusNotFound, "Job not found")
		return
	}
	action := ActionAdded
	for _, id := range acc.user.FavoriteJobs {
		if id == jobID {
			action = ActionRemoved
		}
	}
	if action == ActionAdded {
		acc.user.FavoriteJobs = append(acc.user.FavoriteJobs, jobID)
	} else {
		acc.user.FavoriteJobs = without(acc.user.FavoriteJobs, jobID)
	}
	writeJSON(w, http.StatusOK, client.ToggleResponse{Status: "success", Action: action, JobID: jobID})
}

func (b *fakeBackend) favorites(w http.ResponseWriter, _ *http.Request, acc *fakeAccount) {
	jobs := []*models.Job{}
	for _, id := range acc.user.FavoriteJobs {
		jobs = append(jobs, &models.Job{ID: id})
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": jobs})
}

func (b *fakeBackend) progress(w http.ResponseWriter, r *http.Request, acc *fakeAccount) {
	var partial map[string]int
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := acc.user.Progress.Merge(partial)
	if err != nil {
		detail(w, http.StatusBadRequest, err.Error())
		return
	}
	acc.user.Progress = p
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "progress": p})
}

func (b *fakeBackend) avatar(w http.ResponseWriter, _ *http.Request, acc *fakeAccount) {
	key := "avatars/" + acc.user.ID + "/20261015-a"
	writeJSON(w, http.StatusOK, client.AvatarUpload{UploadURL: b.srv.URL + "/upload/" + key, Key: key, ExpiresAt: time.Now().Add(time.Minute)})
}

type testStore struct {
	*SessionStore
	api *client.HTTPClient
}

func newTestStore(t *testing.T, b *fakeBackend) testStore {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "kongenga.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	api := client.NewHTTPClient(b.srv.URL, 2*time.Second)
	return testStore{SessionStore: NewSessionStore(api, db, i18n.Default(), logging.Nop(), "fr"), api: api}
}

// reopen builds a second store over the same database, as a restarted CLI
// would.
func (s testStore) reopen(b *fakeBackend) *SessionStore {
	api := client.NewHTTPClient(b.srv.URL, 2*time.Second)
	return NewSessionStore(api, s.db, i18n.Default(), logging.Nop(), "fr")
}

func (s testStore) stored(t *testing.T, key string) []byte {
	t.Helper()
	var v []byte
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return nil
	}
	return v
}
