package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/klokku/pennywise/internal/validation"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

const dateLayout = "2006-01-02"

// WriteJSON encodes body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// ParseDate accepts either a calendar date (YYYY-MM-DD, interpreted in loc) or an RFC3339 instant.
// An empty string yields the zero time.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// WriteCommandError maps validation failures to 400 and anything else to 500.
func WriteCommandError(w http.ResponseWriter, message string, err error) {
	if validation.Is(err) {
		WriteError(w, http.StatusBadRequest, message, err.Error())
		return
	}
	log.Errorf("%s: %v", message, err)
	WriteError(w, http.StatusInternalServerError, message, "")
}
