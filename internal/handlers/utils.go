package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"ftp-m3u/internal/database"
	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/search"

	"github.com/gorilla/mux"
)

// maxBodyBytes bounds JSON request bodies. Search results posted back for
// playlist generation are the largest payload.
const maxBodyBytes = 8 << 20

// writeJSON encodes v as JSON and writes it to the response writer.
// Encoding errors are logged since the status line is already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONStatusCode writes v as JSON with the given status code.
func writeJSONStatusCode(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, v)
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONStatusCode(w, statusCode, map[string]string{"error": message})
}

// writeJSONSuccess writes {"success": true}.
func writeJSONSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]bool{"success": true})
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case search.IsValidationError(err), errors.Is(err, database.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case ftpclient.IsConnectionError(err):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with the mapped status. Internal errors are logged
// and replaced by fallback so details do not leak to clients.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logging.Error("%s: %v", fallback, err)
		writeJSONError(w, fallback, status)
		return
	}
	writeJSONError(w, err.Error(), status)
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", database.ErrInvalidInput)
	}
	return nil
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", database.ErrInvalidInput)
	}
	return id, nil
}
