package account

import (
	"encoding/json"
	"net/http"

	"github.com/artikahq/authkit/pkg/session"
	"github.com/artikahq/authkit/pkg/validator"
)

type sessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user,omitempty"`
	ExpiresAt     int64        `json:"expiresAt,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func userFromClaims(claims session.Claims) *sessionUser {
	return &sessionUser{
		ID:        claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

func writeValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:  "validation_failed",
		Fields: fields,
	})
}
