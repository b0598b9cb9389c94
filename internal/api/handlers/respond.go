package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/markdave123-py/docreader/internal/core/reader"
)

// Codes for failures that do not come from the reader.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeNotFound      = "NOT_FOUND"
	CodeTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeInternalError = "INTERNAL_ERROR"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: msg}})
}

// writeReaderError maps a reader failure to its HTTP status and writes it.
func writeReaderError(w http.ResponseWriter, err error) {
	code := reader.CodeOf(err)
	status := StatusFor(err)
	if code == "" {
		slog.Error("unclassified failure", "error", err)
		writeError(w, status, CodeInternalError, err.Error())
		return
	}
	writeError(w, status, string(code), err.Error())
}

// StatusFor returns the HTTP status for err. The outermost classified code
// decides: unsupported formats are 415, bad paths 400, any other
// classified failure 422 and everything else 500.
func StatusFor(err error) int {
	var re *reader.Error
	if !errors.As(err, &re) {
		return http.StatusInternalServerError
	}
	switch {
	case strings.HasPrefix(string(re.Code), "UNSUPPORTED_"):
		return http.StatusUnsupportedMediaType
	case re.Code == reader.CodeInvalidFilePath, re.Code == reader.CodeValidation:
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
