package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/auth"
	"github.com/chronicleberg/chronicle-be/internal/services"
)

// UserHandler handles HTTP requests for registration and authentication.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles new user registration (multipart form with avatar file).
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, apierror.Validation("Invalid multipart form"))
		return
	}

	avatar, err := formUpload(r, "avatar")
	if err != nil {
		writeError(w, apierror.Validation("Invalid avatar upload"))
		return
	}

	in := services.RegisterInput{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Phone:           r.FormValue("phone"),
		Education:       r.FormValue("education"),
		Role:            r.FormValue("role"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
		Avatar:          avatar,
	}

	user, token, err := h.service.Register(r.Context(), in)
	if err != nil {
		log.Warn().Err(err).Str("email", in.Email).Msg("Failed to register user")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// Login handles credential verification and token minting.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("Invalid request body"))
		return
	}

	user, token, err := h.service.Login(r.Context(), payload.Email, payload.Password, payload.Role)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User logged in successfully",
		"user":    user,
		"token":   token,
	})
}

// Logout confirms logout. Tokens are stateless; expiry is the only
// server-side invalidation.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User logged out",
	})
}

// GetMe returns the authenticated principal.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, apierror.Auth("User not authenticated"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    principal,
	})
}

// GetAuthors lists users holding the Author role.
func (h *UserHandler) GetAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.GetAuthors(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list authors")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"authors": authors,
	})
}
