package handler

import (
	"net/http"

	"github.com/hanifgold/sitecms/internal/models"
	"github.com/hanifgold/sitecms/internal/store"
)

// Content serves the public, read-only site content.
type Content struct {
	store *store.Store
}

func NewContent(s *store.Store) *Content {
	return &Content{store: s}
}

func (h *Content) Projects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Projects())
}

func (h *Content) Services(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Services())
}

func (h *Content) Testimonials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Testimonials())
}

// Posts returns published posts only. Drafts are visible through the admin
// surface, never here.
func (h *Content) Posts(w http.ResponseWriter, r *http.Request) {
	published := []models.BlogPost{}
	for _, p := range h.store.BlogPosts() {
		if p.Status == models.PostPublished {
			published = append(published, p)
		}
	}
	writeJSON(w, http.StatusOK, published)
}

func (h *Content) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Config())
}
