package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-auth-api/internal/model"
	"go-auth-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the single mapping from domain errors to wire responses.
// Routing every failure through here keeps equivalent failures
// byte-identical on the wire (credential failures especially).
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
	case errors.Is(err, model.ErrInvalidEmail):
		status = http.StatusBadRequest
		message = "Invalid email address"
	case errors.Is(err, model.ErrUsernameTaken):
		status = http.StatusBadRequest
		message = "Username already exists"
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusBadRequest
		message = "Email already in use"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Authorization header missing or invalid"
	case errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenSignatureInvalid),
		errors.Is(err, model.ErrTokenMalformed):
		status = http.StatusUnauthorized
		message = "Invalid or expired token"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	default:
		// Store failures and anything unclassified stay generic on the
		// wire; the detail goes to the logs only.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.ErrorResponse{Error: message})
}
