package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogifyhq/blogify/internal/middleware"
	"github.com/blogifyhq/blogify/internal/service/storage"
	userservice "github.com/blogifyhq/blogify/internal/service/user"
	"github.com/blogifyhq/blogify/pkg/utils"
)

// Handler serves account signup, signin, and logout.
type Handler struct {
	users *userservice.Service
}

func New(users *userservice.Service) *Handler {
	return &Handler{users: users}
}

// RegisterRoutes mounts the account endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/signin", h.handleSignin)
	r.Post("/logout", h.handleLogout)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(storage.MaxUploadBytes + 1<<20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var image *storage.Upload
	if file, header, err := r.FormFile("profileImage"); err == nil {
		defer file.Close()
		image = &storage.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	}

	created, err := h.users.Signup(r.Context(),
		r.FormValue("fullName"),
		r.FormValue("email"),
		r.FormValue("password"),
		image,
	)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrInvalidSignup):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, userservice.ErrDuplicateEmail):
			utils.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, storage.ErrNotAnImage):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Error creating account. Please try again.")
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.users.Signin(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, userservice.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "signin failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "signed in"})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}
