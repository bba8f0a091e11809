package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifgold/sitecms/internal/copygen"
	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/models"
	"github.com/hanifgold/sitecms/internal/remote"
	"github.com/hanifgold/sitecms/internal/store"
)

type fakeRemote struct {
	remote.Notifier
	signInErr error
	lastEmail string
	lastPass  string
}

func (f *fakeRemote) Select(ctx context.Context, collection string, order *remote.Order) ([]remote.Row, error) {
	return nil, nil
}

func (f *fakeRemote) Insert(ctx context.Context, collection string, row remote.Row) (remote.Row, error) {
	return row, nil
}

func (f *fakeRemote) Update(ctx context.Context, collection string, changes remote.Row, matchID string) error {
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, collection string, matchID string) error {
	return nil
}

func (f *fakeRemote) GetSession(ctx context.Context) (*remote.Session, error) { return nil, nil }

func (f *fakeRemote) SignInWithPassword(ctx context.Context, email, password string) error {
	f.lastEmail, f.lastPass = email, password
	return f.signInErr
}

func (f *fakeRemote) SignUp(ctx context.Context, email, password string) error { return nil }
func (f *fakeRemote) SignOut(ctx context.Context) error                        { return nil }
func (f *fakeRemote) Close() error                                             { return nil }

type fakeGenerator struct {
	lastKind  copygen.Kind
	lastTopic string
	text      string
}

func (g *fakeGenerator) Generate(ctx context.Context, kind copygen.Kind, topic, extra string) string {
	g.lastKind = kind
	g.lastTopic = topic
	return g.text
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(&fakeRemote{}, logging.Discard())
	t.Cleanup(s.Close)
	return s
}

func TestCreateProjectFillsDefaults(t *testing.T) {
	s := newStore(t)
	admin := NewAdmin(s, nil)

	body := `{"title":"Penthouse Floors","category":"Residential","location":"Ikoyi","description":"d","imageUrl":"u"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(body))
	admin.CreateProject(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var p models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.Date)

	projects := s.Projects()
	require.NotEmpty(t, projects)
	assert.Equal(t, p.ID, projects[0].ID)
}

func TestCreateProjectRejectsBadJSON(t *testing.T) {
	admin := NewAdmin(newStore(t), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("{"))
	admin.CreateProject(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicPostsExcludeDrafts(t *testing.T) {
	s := newStore(t)
	s.AddBlogPost(models.BlogPost{ID: "d1", Title: "Draft", Status: models.PostDraft})

	rec := httptest.NewRecorder()
	NewContent(s).Posts(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	var posts []models.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	for _, p := range posts {
		assert.Equal(t, models.PostPublished, p.Status)
	}
}

func TestAdminPostsIncludeDrafts(t *testing.T) {
	s := newStore(t)
	s.AddBlogPost(models.BlogPost{ID: "d1", Title: "Draft", Status: models.PostDraft})

	rec := httptest.NewRecorder()
	NewAdmin(s, nil).Posts(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

	var posts []models.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	found := false
	for _, p := range posts {
		if p.ID == "d1" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUpdatePostUsesPathID(t *testing.T) {
	s := newStore(t)
	s.AddBlogPost(models.BlogPost{ID: "p1", Title: "Old", Status: models.PostDraft})
	admin := NewAdmin(s, nil)

	r := chi.NewRouter()
	r.Put("/posts/{id}", admin.UpdatePost)

	body := `{"id":"ignored","title":"New","status":"published"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/posts/p1", strings.NewReader(body))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	for _, p := range s.BlogPosts() {
		if p.ID == "p1" {
			assert.Equal(t, "New", p.Title)
			return
		}
	}
	t.Fatal("post p1 not found after update")
}

func TestGenerateWithoutBackend(t *testing.T) {
	admin := NewAdmin(newStore(t), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"kind":"service","topic":"Marble"}`))
	admin.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, copygen.MsgFailed, out["text"])
}

func TestGenerateDelegates(t *testing.T) {
	gen := &fakeGenerator{text: "Exquisite marble floors."}
	admin := NewAdmin(newStore(t), gen)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"kind":"project","topic":"Banana Island Villa"}`))
	admin.Generate(rec, req)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Exquisite marble floors.", out["text"])
	assert.Equal(t, copygen.KindProject, gen.lastKind)
	assert.Equal(t, "Banana Island Villa", gen.lastTopic)
}

func TestLoginTrimsAndReportsFailure(t *testing.T) {
	rc := &fakeRemote{signInErr: errors.New("invalid login credentials")}
	s := store.New(rc, logging.Discard())
	t.Cleanup(s.Close)
	auth := NewAuth(s)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"  admin@hanifgold.com  ","password":" secret "}`))
	auth.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var out authResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Success)
	assert.Equal(t, "invalid login credentials", out.Error)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, "admin@hanifgold.com", rc.lastEmail)
	assert.Equal(t, "secret", rc.lastPass)
}

func TestLogoutAlwaysNoContent(t *testing.T) {
	auth := NewAuth(newStore(t))

	rec := httptest.NewRecorder()
	auth.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionStatus(t *testing.T) {
	s := newStore(t)
	auth := NewAuth(s)

	rec := httptest.NewRecorder()
	auth.Session(rec, httptest.NewRequest(http.MethodGet, "/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		State         string `json:"state"`
		Authenticated bool   `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Authenticated)
}
