package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/ayusman/signbridge/internal/app"
	"github.com/ayusman/signbridge/internal/store"
)

// MaxBodyBytes caps the size of an uploaded frame request.
const MaxBodyBytes = 16 << 20

// SignHandler handles POST /sign-to-text.
type SignHandler struct {
	app *app.App
}

// NewSignHandler creates a new SignHandler backed by the given App.
func NewSignHandler(a *app.App) *SignHandler {
	return &SignHandler{app: a}
}

// ServeHTTP decodes the uploaded frame and answers with the recognized gesture text.
func (h *SignHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No data received")
		return
	}

	result, err := h.app.Process(body, store.SourceHTTP)
	if err != nil {
		log.Printf("sign-to-text failed: %v", err)
	}

	status, response := Respond(result, err)
	writeJSON(w, status, response)
}
