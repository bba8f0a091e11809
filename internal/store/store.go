// Package store holds the authoritative in-memory view of all content
// collections and the site configuration, mirrors them from the remote data
// service, and applies admin mutations optimistically: local state changes
// first, the remote write follows in the background and is never rolled back.
// It also owns the session state machine (see auth.go).
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/models"
	"github.com/hanifgold/sitecms/internal/remote"
)

// Store is the content store. Construct with New, call Start once, and Close
// on shutdown. All methods are safe for concurrent use; accessors return
// copies that callers may keep or modify freely.
type Store struct {
	remote       remote.Client
	log          logging.Logger
	writeTimeout time.Duration

	mu           sync.RWMutex
	projects     []models.Project
	services     []models.Service
	testimonials []models.Testimonial
	posts        []models.BlogPost
	journal      []models.JournalEntry
	config       models.SiteConfig

	authState AuthState
	session   *remote.Session

	unsubscribe func()
	wg          sync.WaitGroup
}

// New creates a Store seeded with the bundled default content.
func New(rc remote.Client, log logging.Logger) *Store {
	return &Store{
		remote:       rc,
		log:          log,
		writeTimeout: 10 * time.Second,
		projects:     models.DefaultProjects(),
		services:     models.DefaultServices(),
		testimonials: models.DefaultTestimonials(),
		posts:        models.DefaultBlogPosts(),
		config:       models.DefaultConfig(),
		authState:    AuthUninitialized,
	}
}

// SetWriteTimeout overrides the deadline applied to background remote
// writes. Call before Start.
func (s *Store) SetWriteTimeout(d time.Duration) {
	if d > 0 {
		s.writeTimeout = d
	}
}

// Start runs the initialization protocol: the five collection fetches run
// concurrently with no defined completion order, the session-change
// subscription is registered before the explicit session resolution so no
// notification is missed, and auth leaves the loading state exactly once,
// whichever of resolution or first notification lands first.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	if s.authState == AuthUninitialized {
		s.authState = AuthLoading
	}
	s.mu.Unlock()

	s.background(func() { s.loadProjects(ctx) })
	s.background(func() { s.loadServices(ctx) })
	s.background(func() { s.loadTestimonials(ctx) })
	s.background(func() { s.loadPosts(ctx) })
	s.background(func() { s.loadConfig(ctx) })

	s.unsubscribe = s.remote.OnAuthChange(func(event remote.AuthEvent, sess *remote.Session) {
		s.log.Debug(ctx, "auth change", "event", string(event))
		s.applySession(sess)
	})

	s.background(func() { s.resolveSession(ctx) })
}

// Close unsubscribes from session changes and waits for in-flight background
// work (initial fetches and pending remote writes) to finish.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.wg.Wait()
}

func (s *Store) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// persist runs a remote write in the background with its own deadline.
// Failures are logged and never surfaced or rolled back; a page reload that
// re-fetches from the remote is the only way divergence becomes visible.
func (s *Store) persist(op string, fn func(ctx context.Context) error) {
	s.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Error(ctx, "remote write failed", "op", op, "error", err)
		}
	})
}

// --- initial fetches: a non-empty result wholesale-replaces the bundled
// defaults, an empty or failed fetch leaves them in place.

func (s *Store) loadProjects(ctx context.Context) {
	rows, err := s.remote.Select(ctx, remote.CollectionProjects, &remote.Order{Column: "date", Descending: true})
	if err != nil || len(rows) == 0 {
		s.logFetch(ctx, remote.CollectionProjects, err)
		return
	}
	list, err := decodeRows[models.Project](rows)
	if err != nil {
		s.log.Error(ctx, "decoding projects", "error", err)
		return
	}
	s.mu.Lock()
	s.projects = list
	s.mu.Unlock()
}

func (s *Store) loadServices(ctx context.Context) {
	rows, err := s.remote.Select(ctx, remote.CollectionServices, nil)
	if err != nil || len(rows) == 0 {
		s.logFetch(ctx, remote.CollectionServices, err)
		return
	}
	list, err := decodeRows[models.Service](rows)
	if err != nil {
		s.log.Error(ctx, "decoding services", "error", err)
		return
	}
	s.mu.Lock()
	s.services = list
	s.mu.Unlock()
}

func (s *Store) loadTestimonials(ctx context.Context) {
	rows, err := s.remote.Select(ctx, remote.CollectionTestimonials, nil)
	if err != nil || len(rows) == 0 {
		s.logFetch(ctx, remote.CollectionTestimonials, err)
		return
	}
	list, err := decodeRows[models.Testimonial](rows)
	if err != nil {
		s.log.Error(ctx, "decoding testimonials", "error", err)
		return
	}
	s.mu.Lock()
	s.testimonials = list
	s.mu.Unlock()
}

func (s *Store) loadPosts(ctx context.Context) {
	rows, err := s.remote.Select(ctx, remote.CollectionBlogPosts, &remote.Order{Column: "date", Descending: true})
	if err != nil || len(rows) == 0 {
		s.logFetch(ctx, remote.CollectionBlogPosts, err)
		return
	}
	list, err := decodeRows[models.BlogPost](rows)
	if err != nil {
		s.log.Error(ctx, "decoding blog posts", "error", err)
		return
	}
	s.mu.Lock()
	s.posts = list
	s.mu.Unlock()
}

func (s *Store) loadConfig(ctx context.Context) {
	rows, err := s.remote.Select(ctx, remote.CollectionSiteConfig, nil)
	if err != nil || len(rows) == 0 {
		s.logFetch(ctx, remote.CollectionSiteConfig, err)
		return
	}
	cfg, err := decodeRow[models.SiteConfig](rows[0])
	if err != nil {
		s.log.Error(ctx, "decoding site config", "error", err)
		return
	}
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

// logFetch records an initial-load miss. The caller cannot distinguish
// "remote has none" from "remote unreachable"; either way defaults stay.
func (s *Store) logFetch(ctx context.Context, collection string, err error) {
	if err != nil {
		s.log.Warn(ctx, "initial fetch failed, keeping bundled defaults", "collection", collection, "error", err)
	}
}

// --- read accessors.

// Projects returns a copy of the project collection.
func (s *Store) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project(nil), s.projects...)
}

// Services returns a copy of the service collection.
func (s *Store) Services() []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Service(nil), s.services...)
}

// Testimonials returns a copy of the testimonial collection.
func (s *Store) Testimonials() []models.Testimonial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Testimonial(nil), s.testimonials...)
}

// BlogPosts returns a copy of the blog post collection, drafts included.
func (s *Store) BlogPosts() []models.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BlogPost(nil), s.posts...)
}

// JournalEntries returns a copy of the journal collection. Empty unless a
// session is present.
func (s *Store) JournalEntries() []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.JournalEntry(nil), s.journal...)
}

// Config returns the current site configuration.
func (s *Store) Config() models.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// --- optimistic mutations. Creates prepend without re-sorting; updates
// replace in place keyed by id; deletes remove by id and are idempotent.

// AddProject prepends p locally and inserts it remotely.
func (s *Store) AddProject(p models.Project) {
	s.mu.Lock()
	s.projects = append([]models.Project{p}, s.projects...)
	s.mu.Unlock()
	s.persist("projects insert", func(ctx context.Context) error {
		_, err := s.remote.Insert(ctx, remote.CollectionProjects, encodeRow(p))
		return err
	})
}

// UpdateProject replaces the project with p.ID in place and updates it
// remotely, sending all fields except the id.
func (s *Store) UpdateProject(p models.Project) {
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			break
		}
	}
	s.mu.Unlock()
	s.persist("projects update", func(ctx context.Context) error {
		return s.remote.Update(ctx, remote.CollectionProjects, encodeRowWithoutID(p), p.ID)
	})
}

// DeleteProject removes the project with the given id.
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	s.projects = removeByID(s.projects, id, func(p models.Project) string { return p.ID })
	s.mu.Unlock()
	s.persist("projects delete", func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.CollectionProjects, id)
	})
}

// AddService prepends sv locally and inserts it remotely.
func (s *Store) AddService(sv models.Service) {
	s.mu.Lock()
	s.services = append([]models.Service{sv}, s.services...)
	s.mu.Unlock()
	s.persist("services insert", func(ctx context.Context) error {
		_, err := s.remote.Insert(ctx, remote.CollectionServices, encodeRow(sv))
		return err
	})
}

// UpdateService replaces the service with sv.ID in place and updates it
// remotely.
func (s *Store) UpdateService(sv models.Service) {
	s.mu.Lock()
	for i := range s.services {
		if s.services[i].ID == sv.ID {
			s.services[i] = sv
			break
		}
	}
	s.mu.Unlock()
	s.persist("services update", func(ctx context.Context) error {
		return s.remote.Update(ctx, remote.CollectionServices, encodeRowWithoutID(sv), sv.ID)
	})
}

// DeleteService removes the service with the given id.
func (s *Store) DeleteService(id string) {
	s.mu.Lock()
	s.services = removeByID(s.services, id, func(sv models.Service) string { return sv.ID })
	s.mu.Unlock()
	s.persist("services delete", func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.CollectionServices, id)
	})
}

// AddTestimonial prepends t locally and inserts it remotely. Testimonials
// have no update operation.
func (s *Store) AddTestimonial(t models.Testimonial) {
	s.mu.Lock()
	s.testimonials = append([]models.Testimonial{t}, s.testimonials...)
	s.mu.Unlock()
	s.persist("testimonials insert", func(ctx context.Context) error {
		_, err := s.remote.Insert(ctx, remote.CollectionTestimonials, encodeRow(t))
		return err
	})
}

// DeleteTestimonial removes the testimonial with the given id.
func (s *Store) DeleteTestimonial(id string) {
	s.mu.Lock()
	s.testimonials = removeByID(s.testimonials, id, func(t models.Testimonial) string { return t.ID })
	s.mu.Unlock()
	s.persist("testimonials delete", func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.CollectionTestimonials, id)
	})
}

// AddBlogPost prepends p locally and inserts it remotely.
func (s *Store) AddBlogPost(p models.BlogPost) {
	s.mu.Lock()
	s.posts = append([]models.BlogPost{p}, s.posts...)
	s.mu.Unlock()
	s.persist("blog_posts insert", func(ctx context.Context) error {
		_, err := s.remote.Insert(ctx, remote.CollectionBlogPosts, encodeRow(p))
		return err
	})
}

// UpdateBlogPost replaces the post with p.ID in place and updates it remotely.
func (s *Store) UpdateBlogPost(p models.BlogPost) {
	s.mu.Lock()
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = p
			break
		}
	}
	s.mu.Unlock()
	s.persist("blog_posts update", func(ctx context.Context) error {
		return s.remote.Update(ctx, remote.CollectionBlogPosts, encodeRowWithoutID(p), p.ID)
	})
}

// DeleteBlogPost removes the post with the given id.
func (s *Store) DeleteBlogPost(id string) {
	s.mu.Lock()
	s.posts = removeByID(s.posts, id, func(p models.BlogPost) string { return p.ID })
	s.mu.Unlock()
	s.persist("blog_posts delete", func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.CollectionBlogPosts, id)
	})
}

// UpdateConfig replaces the configuration singleton locally, then checks
// whether a config row exists remotely and updates it by its row key, or
// inserts one. The existence check is a separate read before the write, so
// two near-simultaneous saves against an empty table can both insert; the
// race is preserved for parity with the remote service's contract.
func (s *Store) UpdateConfig(cfg models.SiteConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	s.persist("site_config upsert", func(ctx context.Context) error {
		rows, err := s.remote.Select(ctx, remote.CollectionSiteConfig, nil)
		if err != nil {
			return err
		}
		row := encodeRow(cfg)
		if len(rows) > 0 {
			return s.remote.Update(ctx, remote.CollectionSiteConfig, row, fmt.Sprint(rows[0]["id"]))
		}
		_, err = s.remote.Insert(ctx, remote.CollectionSiteConfig, row)
		return err
	})
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := list[:0]
	for _, item := range list {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
