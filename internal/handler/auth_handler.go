package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go-auth-api/internal/middleware"
	"go-auth-api/internal/model"
	"go-auth-api/internal/service"
	"go-auth-api/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("Invalid JSON", http.StatusBadRequest))
		return
	}

	user, err := h.service.Signup(r.Context(), payload.Username, payload.Password, payload.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SignupResponse{
		Message:  "User created successfully",
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("Invalid JSON", http.StatusBadRequest))
		return
	}

	result, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		Message:  "Login successful",
		ID:       result.User.ID,
		Username: result.User.Username,
		Email:    result.User.Email,
		Token:    result.Token,
	})
}

// Protected is the token-gated resource; RequireAuth has already verified
// the token by the time this runs.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("Hello User %s, this is a protected route!", claims.UserID),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
