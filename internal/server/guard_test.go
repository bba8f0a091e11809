package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/remote"
	"github.com/hanifgold/sitecms/internal/store"
)

// fakeRemote is an empty remote backend; tests drive auth state through
// the embedded notifier.
type fakeRemote struct {
	remote.Notifier
	session *remote.Session
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

func (f *fakeRemote) GetSession(ctx context.Context) (*remote.Session, error) {
	return f.session, nil
}

func (f *fakeRemote) SignInWithPassword(ctx context.Context, email, password string) error {
	return nil
}

func (f *fakeRemote) SignUp(ctx context.Context, email, password string) error { return nil }
func (f *fakeRemote) SignOut(ctx context.Context) error                        { return nil }
func (f *fakeRemote) Close() error                                             { return nil }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthWhileResolving(t *testing.T) {
	s := store.New(&fakeRemote{}, logging.Discard())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	RequireAuth(s)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRequireAuthRedirectsWhenSignedOut(t *testing.T) {
	s := store.New(&fakeRemote{}, logging.Discard())
	s.Start(context.Background())
	defer s.Close()

	require.Eventually(t, func() bool { return !s.AuthLoading() },
		time.Second, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	RequireAuth(s)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get("Location"))
}

func TestRequireAuthPassesWhenSignedIn(t *testing.T) {
	rc := &fakeRemote{}
	s := store.New(rc, logging.Discard())
	s.Start(context.Background())
	defer s.Close()

	require.Eventually(t, func() bool { return !s.AuthLoading() },
		time.Second, 5*time.Millisecond)

	rc.Emit(remote.EventSignedIn, &remote.Session{UserID: "u1", Email: "a@b.c"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	RequireAuth(s)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutesPublicVsGuarded(t *testing.T) {
	rc := &fakeRemote{}
	s := store.New(rc, logging.Discard())
	s.Start(context.Background())
	defer s.Close()

	require.Eventually(t, func() bool { return !s.AuthLoading() },
		time.Second, 5*time.Millisecond)

	srv := New(":0", s, nil, logging.Discard())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.URL + "/api/content/projects")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(ts.URL + "/api/admin/posts")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	rc.Emit(remote.EventSignedIn, &remote.Session{UserID: "u1"})

	resp, err = client.Get(ts.URL + "/api/admin/posts")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
