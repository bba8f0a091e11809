package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/remote"
)

func TestAuthStateBeforeStart(t *testing.T) {
	s := New(newFakeRemote(), logging.Discard())
	assert.Equal(t, AuthUninitialized, s.AuthState())
	assert.True(t, s.AuthLoading())
	assert.False(t, s.IsAuthenticated())
}

func TestResolutionWithoutSession(t *testing.T) {
	s := New(newFakeRemote(), logging.Discard())
	s.Start(context.Background())
	defer s.Close()

	waitResolved(t, s)
	assert.Equal(t, AuthUnauthenticated, s.AuthState())
	assert.Nil(t, s.Session())
}

func TestResolutionWithExistingSession(t *testing.T) {
	rc := newFakeRemote()
	rc.session = &remote.Session{UserID: "u1", Email: "admin@hanifgold.com"}
	rc.rows[remote.CollectionJournal] = []remote.Row{
		{"id": "j1", "user_id": "u1", "title": "Site visit", "content": "notes", "created_at": "2026-02-01T10:00:00Z"},
	}

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	s.Close()

	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.Session())
	assert.Equal(t, "u1", s.Session().UserID)

	entries := s.JournalEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "j1", entries[0].ID)
	assert.Equal(t, "u1", entries[0].UserID)
}

func TestSignInNotificationLoadsJournal(t *testing.T) {
	rc := newFakeRemote()
	rc.rows[remote.CollectionJournal] = []remote.Row{
		{"id": "j1", "user_id": "u1", "title": "Note", "content": "c", "created_at": "2026-02-01T10:00:00Z"},
	}

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	waitResolved(t, s)
	assert.False(t, s.IsAuthenticated())

	rc.Emit(remote.EventSignedIn, &remote.Session{UserID: "u1"})
	assert.True(t, s.IsAuthenticated())

	s.Close()
	assert.Len(t, s.JournalEntries(), 1)
}

func TestSignOutClearsJournalSynchronously(t *testing.T) {
	rc := newFakeRemote()
	rc.rows[remote.CollectionJournal] = []remote.Row{
		{"id": "j1", "user_id": "u1", "title": "Note", "content": "c", "created_at": "2026-02-01T10:00:00Z"},
	}
	rc.session = &remote.Session{UserID: "u1"}

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	defer s.Close()
	require.Eventually(t, func() bool { return len(s.JournalEntries()) == 1 },
		time.Second, 5*time.Millisecond)

	rc.Emit(remote.EventSignedOut, nil)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.JournalEntries())
	assert.Nil(t, s.Session())
}

func TestLoginFailureReturnsRemoteMessage(t *testing.T) {
	rc := newFakeRemote()
	rc.signInErr = errors.New("invalid login credentials")

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	defer s.Close()
	waitResolved(t, s)

	err := s.Login(context.Background(), "admin@hanifgold.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid login credentials", err.Error())
	assert.False(t, s.IsAuthenticated())
}

func TestSignupFailureReturnsRemoteMessage(t *testing.T) {
	rc := newFakeRemote()
	rc.signUpErr = errors.New("user already registered")

	s := New(rc, logging.Discard())
	err := s.Signup(context.Background(), "admin@hanifgold.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "user already registered", err.Error())
	s.Close()
}

func TestLogoutClearsLocallyWhenRemoteFails(t *testing.T) {
	rc := newFakeRemote()
	rc.session = &remote.Session{UserID: "u1"}
	rc.signOutErr = errors.New("network down")

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	s.Close()
	require.True(t, s.IsAuthenticated())

	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Session())
	assert.Empty(t, s.JournalEntries())
}

func TestAddJournalEntryOwnerComesFromSession(t *testing.T) {
	rc := newFakeRemote()
	rc.session = &remote.Session{UserID: "u1"}

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	s.Close()
	require.True(t, s.IsAuthenticated())

	s.AddJournalEntry(context.Background(), "Measurements", "3x4m master bath")

	inserts := rc.insertsFor(remote.CollectionJournal)
	require.Len(t, inserts, 1)
	assert.Equal(t, "u1", inserts[0].row["user_id"])

	entries := s.JournalEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Measurements", entries[0].Title)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEmpty(t, entries[0].CreatedAt)
}

func TestAddJournalEntryWithoutSessionIsNoop(t *testing.T) {
	rc := newFakeRemote()
	s := New(rc, logging.Discard())
	s.Start(context.Background())
	waitResolved(t, s)

	s.AddJournalEntry(context.Background(), "orphan", "no owner")
	s.Close()

	assert.Empty(t, rc.insertsFor(remote.CollectionJournal))
	assert.Empty(t, s.JournalEntries())
}

func TestAddJournalEntryInsertFailureKeepsLocalUnchanged(t *testing.T) {
	rc := newFakeRemote()
	rc.session = &remote.Session{UserID: "u1"}

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	s.Close()

	rc.insertErr = errors.New("gateway timeout")
	s.AddJournalEntry(context.Background(), "lost", "never lands")

	assert.Empty(t, s.JournalEntries())
}

func TestUpdateJournalEntryStripsServerFields(t *testing.T) {
	rc := newFakeRemote()
	rc.session = &remote.Session{UserID: "u1"}
	rc.rows[remote.CollectionJournal] = []remote.Row{
		{"id": "j1", "user_id": "u1", "title": "Old", "content": "c", "created_at": "2026-02-01T10:00:00Z"},
	}

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	s.Close()

	entry := s.JournalEntries()[0]
	entry.Title = "New"
	s.UpdateJournalEntry(entry)

	assert.Equal(t, "New", s.JournalEntries()[0].Title)

	s.Close()
	updates := rc.updatesFor(remote.CollectionJournal)
	require.Len(t, updates, 1)
	assert.Equal(t, "j1", updates[0].matchID)
	assert.NotContains(t, updates[0].changes, "id")
	assert.NotContains(t, updates[0].changes, "user_id")
	assert.NotContains(t, updates[0].changes, "created_at")
	assert.NotEmpty(t, updates[0].changes["updated_at"])
	assert.Equal(t, "New", updates[0].changes["title"])
}

func TestDeleteJournalEntry(t *testing.T) {
	rc := newFakeRemote()
	rc.session = &remote.Session{UserID: "u1"}
	rc.rows[remote.CollectionJournal] = []remote.Row{
		{"id": "j1", "user_id": "u1", "title": "Note", "content": "c", "created_at": "2026-02-01T10:00:00Z"},
	}

	s := New(rc, logging.Discard())
	s.Start(context.Background())
	s.Close()
	require.Len(t, s.JournalEntries(), 1)

	s.DeleteJournalEntry("j1")
	assert.Empty(t, s.JournalEntries())

	s.Close()
	deletes := rc.deletesFor(remote.CollectionJournal)
	require.Len(t, deletes, 1)
	assert.Equal(t, "j1", deletes[0].matchID)
}

func TestNotifierUnsubscribe(t *testing.T) {
	var n remote.Notifier
	calls := 0
	unsub := n.OnAuthChange(func(event remote.AuthEvent, sess *remote.Session) { calls++ })

	n.Emit(remote.EventSignedIn, &remote.Session{UserID: "u1"})
	assert.Equal(t, 1, calls)

	unsub()
	n.Emit(remote.EventSignedOut, nil)
	assert.Equal(t, 1, calls)
}
