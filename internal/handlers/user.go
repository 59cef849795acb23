package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"social-chat-backend/internal/services"
)

const maxProfilePicSize = 10 << 20 // 10 MiB

// UserHandler handles registration and login
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /api/v1/users. The body is a multipart form with
// name, email, password and an optional profilePic file.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProfilePicSize); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	params := services.RegisterParams{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if file, _, err := r.FormFile("profilePic"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxProfilePicSize))
		if err != nil {
			respondError(w, "Failed to read profile picture", http.StatusBadRequest)
			return
		}
		params.ProfilePic = data
	}

	user, token, err := h.users.Register(r.Context(), params)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User created")

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

// LoginBody is the request body for login
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
