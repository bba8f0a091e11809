// Package server wires the HTTP API together and runs it until shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hanifgold/sitecms/internal/copygen"
	"github.com/hanifgold/sitecms/internal/handler"
	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/store"
)

type Server struct {
	addr   string
	router chi.Router
	log    logging.Logger
}

// New builds the router. gen may be nil when copy generation is not
// configured.
func New(addr string, s *store.Store, gen copygen.Generator, log logging.Logger) *Server {
	srv := &Server{
		addr:   addr,
		router: chi.NewRouter(),
		log:    log,
	}
	srv.routes(s, gen)
	return srv
}

func (s *Server) routes(st *store.Store, gen copygen.Generator) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestLogger(s.log))

	content := handler.NewContent(st)
	auth := handler.NewAuth(st)
	admin := handler.NewAdmin(st, gen)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/content", func(r chi.Router) {
			r.Get("/projects", content.Projects)
			r.Get("/services", content.Services)
			r.Get("/testimonials", content.Testimonials)
			r.Get("/posts", content.Posts)
			r.Get("/config", content.Config)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/signup", auth.Signup)
			r.Post("/logout", auth.Logout)
			r.Get("/session", auth.Session)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAuth(st))

			r.Post("/projects", admin.CreateProject)
			r.Put("/projects/{id}", admin.UpdateProject)
			r.Delete("/projects/{id}", admin.DeleteProject)

			r.Post("/services", admin.CreateService)
			r.Put("/services/{id}", admin.UpdateService)
			r.Delete("/services/{id}", admin.DeleteService)

			r.Post("/testimonials", admin.CreateTestimonial)
			r.Delete("/testimonials/{id}", admin.DeleteTestimonial)

			r.Get("/posts", admin.Posts)
			r.Post("/posts", admin.CreatePost)
			r.Put("/posts/{id}", admin.UpdatePost)
			r.Delete("/posts/{id}", admin.DeletePost)

			r.Put("/config", admin.UpdateConfig)

			r.Get("/journal", admin.Journal)
			r.Post("/journal", admin.CreateJournalEntry)
			r.Put("/journal/{id}", admin.UpdateJournalEntry)
			r.Delete("/journal/{id}", admin.DeleteJournalEntry)

			r.Post("/generate", admin.Generate)
		})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives,
// then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "server starting", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
