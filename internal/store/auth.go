package store

import (
	"context"
	"time"

	"github.com/hanifgold/sitecms/internal/models"
	"github.com/hanifgold/sitecms/internal/remote"
)

// AuthState is the session state machine. Transitions are driven only by
// session-change notifications (plus the one-time initial resolution, which
// feeds the same path); Login and Signup never transition state themselves,
// they only report call-level success or failure.
type AuthState int

const (
	// AuthUninitialized means Start has not been called.
	AuthUninitialized AuthState = iota
	// AuthLoading means session resolution is in flight; no access
	// decision can be made yet.
	AuthLoading
	// AuthAuthenticated means a session is present.
	AuthAuthenticated
	// AuthUnauthenticated means resolution completed with no session.
	AuthUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthLoading:
		return "loading"
	case AuthAuthenticated:
		return "authenticated"
	case AuthUnauthenticated:
		return "unauthenticated"
	default:
		return "uninitialized"
	}
}

// AuthState returns the current session state.
func (s *Store) AuthState() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authState
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() bool {
	return s.AuthState() == AuthAuthenticated
}

// AuthLoading reports whether session resolution is still in flight.
func (s *Store) AuthLoading() bool {
	st := s.AuthState()
	return st == AuthUninitialized || st == AuthLoading
}

// Session returns a copy of the current session, or nil when signed out.
func (s *Store) Session() *remote.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// resolveSession performs the one-time explicit resolution at startup. Auth
// initialization completes regardless of outcome; a notification applied
// before or after simply wins by arriving last.
func (s *Store) resolveSession(ctx context.Context) {
	sess, err := s.remote.GetSession(ctx)
	if err != nil {
		s.log.Warn(ctx, "session resolution failed", "error", err)
		sess = nil
	}
	s.applySession(sess)
}

// applySession is the single transition point of the session state machine.
// Clearing the journal on sign-out happens synchronously with the session
// clearing; the journal fetch on sign-in runs in the background.
func (s *Store) applySession(sess *remote.Session) {
	s.mu.Lock()
	hadSession := s.session != nil
	s.session = sess
	if sess != nil {
		s.authState = AuthAuthenticated
	} else {
		s.authState = AuthUnauthenticated
		s.journal = nil
	}
	s.mu.Unlock()

	if sess != nil && !hadSession {
		s.background(func() { s.loadJournal(context.Background()) })
	}
}

func (s *Store) loadJournal(ctx context.Context) {
	rows, err := s.remote.Select(ctx, remote.CollectionJournal, &remote.Order{Column: "created_at", Descending: true})
	if err != nil {
		s.log.Warn(ctx, "journal fetch failed", "error", err)
		return
	}
	list, err := decodeRows[models.JournalEntry](rows)
	if err != nil {
		s.log.Error(ctx, "decoding journal entries", "error", err)
		return
	}
	s.mu.Lock()
	// A sign-out racing the fetch wins: never install private data
	// without a session.
	if s.session != nil {
		s.journal = list
	}
	s.mu.Unlock()
}

// Login delegates credential verification to the remote service. The
// returned error carries the remote's message; nil means the call succeeded.
// Local auth state flips only via the session-change subscription.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := s.remote.SignInWithPassword(ctx, email, password); err != nil {
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		return err
	}
	return nil
}

// Signup delegates account creation with the same failure contract as Login.
// Whether the new account is immediately signed in is the remote's policy.
func (s *Store) Signup(ctx context.Context, email, password string) error {
	if err := s.remote.SignUp(ctx, email, password); err != nil {
		s.log.Warn(ctx, "signup failed", "email", email, "error", err)
		return err
	}
	return nil
}

// Logout requests remote session termination and then unconditionally clears
// the local session, authenticated state, and journal collection. A failing
// remote call never blocks local sign-out.
func (s *Store) Logout(ctx context.Context) {
	if err := s.remote.SignOut(ctx); err != nil {
		s.log.Warn(ctx, "remote sign-out failed, clearing local session anyway", "error", err)
	}
	s.applySession(nil)
}

// --- journal operations (session-scoped).

// AddJournalEntry creates a journal entry for the current session's user.
// Unlike every other mutation this one is not optimistic: the entry is
// prepended locally only after the remote insert succeeds and returns the
// stored row. Without a session the call is a no-op; failures are logged and
// local state stays unchanged.
func (s *Store) AddJournalEntry(ctx context.Context, title, content string) {
	sess := s.Session()
	if sess == nil {
		return
	}

	row := remote.Row{
		"title":   title,
		"content": content,
		// The owner always comes from the session, never from the caller.
		"user_id": sess.UserID,
	}
	stored, err := s.remote.Insert(ctx, remote.CollectionJournal, row)
	if err != nil {
		s.log.Error(ctx, "journal insert failed", "error", err)
		return
	}
	entry, err := decodeRow[models.JournalEntry](stored)
	if err != nil {
		s.log.Error(ctx, "decoding stored journal entry", "error", err)
		return
	}

	s.mu.Lock()
	if s.session != nil {
		s.journal = append([]models.JournalEntry{entry}, s.journal...)
	}
	s.mu.Unlock()
}

// UpdateJournalEntry replaces the entry with e.ID in place (optimistic). The
// outgoing change set drops id, owner, and creation timestamp, and stamps a
// fresh updated_at.
func (s *Store) UpdateJournalEntry(e models.JournalEntry) {
	s.mu.Lock()
	for i := range s.journal {
		if s.journal[i].ID == e.ID {
			s.journal[i] = e
			break
		}
	}
	s.mu.Unlock()

	row := encodeRowWithoutID(e)
	delete(row, "user_id")
	delete(row, "created_at")
	row["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	s.persist("journal_entries update", func(ctx context.Context) error {
		return s.remote.Update(ctx, remote.CollectionJournal, row, e.ID)
	})
}

// DeleteJournalEntry removes the entry with the given id (optimistic).
func (s *Store) DeleteJournalEntry(id string) {
	s.mu.Lock()
	s.journal = removeByID(s.journal, id, func(e models.JournalEntry) string { return e.ID })
	s.mu.Unlock()
	s.persist("journal_entries delete", func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.CollectionJournal, id)
	})
}
