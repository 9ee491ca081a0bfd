package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/signbridge/internal/store"
)

// History listing bounds.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// HistoryHandler serves GET /api/history from the detection journal.
type HistoryHandler struct {
	store *store.Store
}

// NewHistoryHandler creates a new HistoryHandler with the given store.
func NewHistoryHandler(s *store.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

type detectionResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	HandsCount int    `json:"hands_count"`
	Source     string `json:"source"`
	CreatedAt  string `json:"created_at"`
}

type listDetectionsResponse struct {
	Detections []detectionResponse `json:"detections"`
	Success    bool                `json:"success"`
}

// ServeHTTP lists recent detections, newest first.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxHistoryLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	detections, err := h.store.Detections().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list detections")
		return
	}

	response := listDetectionsResponse{
		Detections: make([]detectionResponse, 0, len(detections)),
		Success:    true,
	}
	for _, d := range detections {
		response.Detections = append(response.Detections, detectionResponse{
			ID:         d.ID,
			Text:       d.Text,
			HandsCount: d.HandsCount,
			Source:     d.Source,
			CreatedAt:  d.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
