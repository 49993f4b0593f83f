package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/auth"
	"github.com/chronicleberg/chronicle-be/internal/services"
)

// BlogHandler handles HTTP requests for the publishing pipeline.
type BlogHandler struct {
	service services.BlogServiceProvider
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service services.BlogServiceProvider) *BlogHandler {
	return &BlogHandler{service: service}
}

// blogInput reads the multipart form shared by create and update.
func blogInput(r *http.Request) (services.BlogInput, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return services.BlogInput{}, apierror.Validation("Invalid multipart form")
	}

	published, _ := strconv.ParseBool(r.FormValue("published"))
	in := services.BlogInput{
		Title:              r.FormValue("title"),
		Intro:              r.FormValue("intro"),
		Category:           r.FormValue("category"),
		Published:          published,
		ParaOneTitle:       r.FormValue("paraOneTitle"),
		ParaOneDescription: r.FormValue("paraOneDescription"),
		ParaTwoTitle:       r.FormValue("paraTwoTitle"),
		ParaTwoDescription: r.FormValue("paraTwoDescription"),
	}

	var err error
	if in.MainImage, err = formUpload(r, "mainImage"); err != nil {
		return services.BlogInput{}, apierror.Validation("Invalid mainImage upload")
	}
	if in.ParaOneImage, err = formUpload(r, "paraOneImage"); err != nil {
		return services.BlogInput{}, apierror.Validation("Invalid paraOneImage upload")
	}
	if in.ParaTwoImage, err = formUpload(r, "paraTwoImage"); err != nil {
		return services.BlogInput{}, apierror.Validation("Invalid paraTwoImage upload")
	}

	return in, nil
}

// Create handles blog creation.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, apierror.Auth("User not authenticated"))
		return
	}

	in, err := blogInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.service.Create(r.Context(), principal, in)
	if err != nil {
		log.Warn().Err(err).Str("user_id", principal.ID).Msg("Failed to create blog")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Blog uploaded!",
		"blog":    blog,
	})
}

// Update handles selective image replacement and wholesale text replacement.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, apierror.Auth("User not authenticated"))
		return
	}
	id := chi.URLParam(r, "id")

	in, err := blogInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.service.Update(r.Context(), principal, id, in)
	if err != nil {
		log.Warn().Err(err).Str("blog_id", id).Msg("Failed to update blog")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Blog updated!",
		"blog":    blog,
	})
}

// Delete removes a blog document.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, apierror.Auth("User not authenticated"))
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		log.Warn().Err(err).Str("blog_id", id).Msg("Failed to delete blog")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Blog deleted!",
	})
}

// GetAll lists published blogs.
func (h *BlogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.GetPublished(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list blogs")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"blogs":   blogs,
	})
}

// Get retrieves a single blog.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blog, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"blog":    blog,
	})
}

// GetMine lists the caller's blogs, drafts included.
func (h *BlogHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, apierror.Auth("User not authenticated"))
		return
	}

	blogs, err := h.service.GetByAuthor(r.Context(), principal.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", principal.ID).Msg("Failed to list user blogs")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"blogs":   blogs,
	})
}
