// Package remote defines the contract of the remote data service: per-entity
// collections reachable through a uniform select/insert/update/delete surface,
// plus a session-based authentication subsystem with change notifications.
//
// All rows crossing this boundary are wire-cased (snake_case keys). Callers
// convert to and from the in-memory representation with the casing package.
package remote

import (
	"context"
	"time"
)

// Row is a single wire-cased record.
type Row = map[string]any

// Collection names in the durable store.
const (
	CollectionProjects     = "projects"
	CollectionServices     = "services"
	CollectionTestimonials = "testimonials"
	CollectionBlogPosts    = "blog_posts"
	CollectionSiteConfig   = "site_config"
	CollectionJournal      = "journal_entries"
)

// Order requests server-side ordering of a Select.
type Order struct {
	Column     string
	Descending bool
}

// AuthEvent classifies a session-change notification.
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// Session is the opaque proof of authentication. Its presence or absence is
// the sole authorization signal; UserID is the owner identifier stamped on
// private entities.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
	ExpiresAt   time.Time
}

// AuthChangeFunc receives session-change notifications. A nil session means
// signed out.
type AuthChangeFunc func(event AuthEvent, session *Session)

// Client is the full remote data service contract. Implementations must be
// safe for concurrent use.
type Client interface {
	// Select returns all rows of a collection, optionally ordered
	// server-side. order may be nil.
	Select(ctx context.Context, collection string, order *Order) ([]Row, error)

	// Insert stores a new row and returns the stored representation,
	// including any fields the service derived itself (id, timestamps).
	Insert(ctx context.Context, collection string, row Row) (Row, error)

	// Update applies changes to the row whose id equals matchID.
	Update(ctx context.Context, collection string, changes Row, matchID string) error

	// Delete removes the row whose id equals matchID. Deleting a missing
	// row is not an error.
	Delete(ctx context.Context, collection string, matchID string) error

	// GetSession returns the current session, or nil when signed out.
	GetSession(ctx context.Context) (*Session, error)

	// OnAuthChange registers fn for session-change notifications and
	// returns an unsubscribe function.
	OnAuthChange(fn AuthChangeFunc) (unsubscribe func())

	// SignInWithPassword verifies credentials. The returned error carries
	// the service's human-readable message. Local auth state changes only
	// through the OnAuthChange notification, never through this call.
	SignInWithPassword(ctx context.Context, email, password string) error

	// SignUp creates an account. Whether it also signs the caller in is
	// the service's own policy.
	SignUp(ctx context.Context, email, password string) error

	// SignOut terminates the remote session. Implementations clear their
	// local session and emit EventSignedOut even when the remote call
	// fails.
	SignOut(ctx context.Context) error

	// Close releases client resources.
	Close() error
}
