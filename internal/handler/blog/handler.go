package blog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogifyhq/blogify/internal/middleware"
	blogservice "github.com/blogifyhq/blogify/internal/service/blog"
	"github.com/blogifyhq/blogify/internal/service/storage"
	"github.com/blogifyhq/blogify/pkg/utils"
)

// Handler serves blog CRUD and comments.
type Handler struct {
	blogs *blogservice.Service
}

func New(blogs *blogservice.Service) *Handler {
	return &Handler{blogs: blogs}
}

// RegisterRoutes mounts the blog endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{blogID}", h.handleGet)
	r.Delete("/{blogID}", h.handleDelete)
	r.Post("/{blogID}/comments", h.handleAddComment)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error loading blog posts")
		return
	}
	utils.RespondJSON(w, http.StatusOK, blogs)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "sign in to publish")
		return
	}

	if err := r.ParseMultipartForm(storage.MaxUploadBytes + 1<<20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var cover *storage.Upload
	if file, header, err := r.FormFile("coverImage"); err == nil {
		defer file.Close()
		cover = &storage.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	}

	created, err := h.blogs.Create(r.Context(), identity.UserID,
		r.FormValue("title"), r.FormValue("body"), cover)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrInvalidInput), errors.Is(err, storage.ErrNotAnImage):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Error creating blog post")
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	b, comments, err := h.blogs.Get(r.Context(), chi.URLParam(r, "blogID"))
	if err != nil {
		if errors.Is(err, blogservice.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching blog post")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"blog":     b,
		"comments": comments,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "sign in to delete")
		return
	}

	err := h.blogs.Delete(r.Context(), chi.URLParam(r, "blogID"), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, "Blog post not found")
		case errors.Is(err, blogservice.ErrForbidden):
			utils.RespondError(w, http.StatusForbidden, "You are not authorized to delete this blog post")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Error deleting blog post")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "sign in to comment")
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.blogs.AddComment(r.Context(),
		chi.URLParam(r, "blogID"), identity.UserID, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, "Blog post not found")
		case errors.Is(err, blogservice.ErrInvalidInput):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Error creating comment")
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, created)
}
