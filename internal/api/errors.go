package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/store"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message string, code errcode.Code) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: message, Code: string(code)})
}

// writeErr maps err to its code and status. Store sentinels become
// not_found and bad_request; anything unclassified is a generation_error.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", errcode.NotFound)
		return
	case errors.Is(err, store.ErrSlugTaken):
		writeError(w, http.StatusBadRequest, err.Error(), errcode.BadRequest)
		return
	}
	code := errcode.CodeOf(err)
	msg := errcode.MessageOf(err)
	if _, ok := errcode.As(err); !ok {
		msg = "internal error"
	}
	writeError(w, errcode.HTTPStatus(code), msg, code)
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, writing a bad_request
// response on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", errcode.BadRequest)
		return false
	}
	return true
}
