// Package respond writes JSON responses and decodes JSON requests for the
// HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
)

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error      string `json:"error"`
	Type       string `json:"type"`
	StatusCode int    `json:"status_code"`
	Path       string `json:"path"`
	Timestamp  string `json:"timestamp"`
	MissingIDs []uint `json:"missing_ids,omitempty"`
}

// now is replaced in tests.
var now = time.Now

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Error writes err with the status of its kind. Unclassified errors are
// reported as internal errors.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.As(err)
	body := ErrorBody{
		Error:      appErr.Error(),
		Type:       string(appErr.Kind),
		StatusCode: appErr.Status(),
		Timestamp:  now().UTC().Format(time.RFC3339),
	}
	if r != nil {
		body.Path = r.URL.Path
	}
	if appErr.Kind == apperr.KindBadRequest {
		body.MissingIDs = appErr.IDs
	}
	JSON(w, body.StatusCode, body)
}

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("request body is empty")
		}
		return apperr.BadRequest("invalid JSON body: %s", err.Error())
	}
	return nil
}

// PathID parses a positive numeric path value.
func PathID(r *http.Request, name string) (uint, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// QueryID parses a required positive numeric query value.
func QueryID(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.BadRequest("missing %s", name)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// QueryInt parses a required integer query value.
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.BadRequest("missing %s", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest("invalid %s %q", name, raw)
	}
	return n, nil
}

// Message is the body of responses that carry no entity.
func Message(format string, args ...any) map[string]string {
	return map[string]string{"message": fmt.Sprintf(format, args...)}
}
