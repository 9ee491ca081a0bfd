// Package api provides HTTP API handlers for the sign recognition service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/signbridge/internal/app"
	"github.com/ayusman/signbridge/internal/detector"
	"github.com/ayusman/signbridge/internal/frame"
)

// SignResponse is the success body of a recognized frame.
type SignResponse struct {
	Text       string `json:"text"`
	Success    bool   `json:"success"`
	HandsCount int    `json:"hands_count"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// Respond maps a recognition outcome to an HTTP status and response body.
//
// Malformed or undecodable input is a 400; detector and unexpected
// failures are a 500.
func Respond(result *app.Result, err error) (int, any) {
	if err == nil {
		return http.StatusOK, SignResponse{
			Text:       result.Text,
			Success:    true,
			HandsCount: result.Hands,
		}
	}

	var ferr *frame.Error
	switch {
	case errors.As(err, &ferr):
		return http.StatusBadRequest, ErrorResponse{Error: ferr.Error()}
	case errors.Is(err, detector.ErrDetection):
		msg := err.Error()
		if !strings.HasPrefix(msg, detector.ErrDetection.Error()) {
			msg = detector.ErrDetection.Error() + ": " + msg
		}
		return http.StatusInternalServerError, ErrorResponse{Error: msg}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Server error: " + err.Error()}
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
