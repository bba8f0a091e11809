package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hanifgold/sitecms/internal/copygen"
	"github.com/hanifgold/sitecms/internal/models"
	"github.com/hanifgold/sitecms/internal/store"
)

// Admin serves the authenticated management surface: full CRUD over the
// content collections, the private journal, site configuration and copy
// generation. Content mutations are optimistic; responses reflect local
// state, not remote confirmation.
type Admin struct {
	store *store.Store
	gen   copygen.Generator
}

// NewAdmin creates the admin handler. gen may be nil when no generation
// backend is configured.
func NewAdmin(s *store.Store, gen copygen.Generator) *Admin {
	return &Admin{store: s, gen: gen}
}

// today is the default date stamped on new dated entities.
func today() string {
	return time.Now().Format("2006-01-02")
}

func (h *Admin) CreateProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if !decodeBody(w, r, &p) {
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date == "" {
		p.Date = today()
	}
	h.store.AddProject(p)
	writeJSON(w, http.StatusCreated, p)
}

func (h *Admin) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")
	h.store.UpdateProject(p)
	writeJSON(w, http.StatusOK, p)
}

func (h *Admin) DeleteProject(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteProject(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Admin) CreateService(w http.ResponseWriter, r *http.Request) {
	var sv models.Service
	if !decodeBody(w, r, &sv) {
		return
	}
	if sv.ID == "" {
		sv.ID = uuid.NewString()
	}
	if sv.Features == nil {
		sv.Features = []string{}
	}
	h.store.AddService(sv)
	writeJSON(w, http.StatusCreated, sv)
}

func (h *Admin) UpdateService(w http.ResponseWriter, r *http.Request) {
	var sv models.Service
	if !decodeBody(w, r, &sv) {
		return
	}
	sv.ID = chi.URLParam(r, "id")
	h.store.UpdateService(sv)
	writeJSON(w, http.StatusOK, sv)
}

func (h *Admin) DeleteService(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteService(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Admin) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var t models.Testimonial
	if !decodeBody(w, r, &t) {
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	h.store.AddTestimonial(t)
	writeJSON(w, http.StatusCreated, t)
}

func (h *Admin) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteTestimonial(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Posts returns every post including drafts.
func (h *Admin) Posts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.BlogPosts())
}

func (h *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var p models.BlogPost
	if !decodeBody(w, r, &p) {
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date == "" {
		p.Date = today()
	}
	if p.Status == "" {
		p.Status = models.PostDraft
	}
	h.store.AddBlogPost(p)
	writeJSON(w, http.StatusCreated, p)
}

func (h *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var p models.BlogPost
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")
	h.store.UpdateBlogPost(p)
	writeJSON(w, http.StatusOK, p)
}

func (h *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteBlogPost(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Admin) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.SiteConfig
	if !decodeBody(w, r, &cfg) {
		return
	}
	h.store.UpdateConfig(cfg)
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Admin) Journal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.JournalEntries())
}

// CreateJournalEntry waits on the remote write, so the new entry may not
// yet be visible in a listing issued before this call returns. The owner
// comes from the active session regardless of the request body.
func (h *Admin) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	h.store.AddJournalEntry(r.Context(), in.Title, in.Content)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Admin) UpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var e models.JournalEntry
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = chi.URLParam(r, "id")
	h.store.UpdateJournalEntry(e)
	writeJSON(w, http.StatusOK, e)
}

func (h *Admin) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteJournalEntry(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Generate produces marketing copy. A missing generation backend degrades
// to the same fixed message as a failed request.
func (h *Admin) Generate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Kind  string `json:"kind"`
		Topic string `json:"topic"`
		Extra string `json:"extra"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	text := copygen.MsgFailed
	if h.gen != nil {
		text = h.gen.Generate(r.Context(), copygen.Kind(in.Kind), in.Topic, in.Extra)
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
