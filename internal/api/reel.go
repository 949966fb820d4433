package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"mentor-chat/internal/chat"
	"mentor-chat/internal/models"
)

// ReelHandler handles daily content HTTP requests
type ReelHandler struct {
	service *chat.Service
	logger  *zap.Logger
}

// NewReelHandler creates a new reel handler
func NewReelHandler(service *chat.Service, logger *zap.Logger) *ReelHandler {
	return &ReelHandler{service: service, logger: logger}
}

// ReelResponse represents a daily content item in API responses
type ReelResponse struct {
	ID       string `json:"id"`
	Day      string `json:"day"`
	MentorID string `json:"mentor_id"`
	Text     string `json:"text"`
	Seen     bool   `json:"seen"`
}

func reelResponses(reels []models.Reel) []ReelResponse {
	response := make([]ReelResponse, len(reels))
	for i, reel := range reels {
		response[i] = ReelResponse{
			ID:       reel.ID,
			Day:      reel.Day,
			MentorID: reel.MentorID,
			Text:     reel.Text,
			Seen:     reel.Seen,
		}
	}
	return response
}

// List handles GET /api/reels
func (h *ReelHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, reelResponses(h.service.Reels(time.Now())))
}

// Refresh handles POST /api/reels/refresh, called when the app regains
// foreground focus.
func (h *ReelHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, reelResponses(h.service.RefreshReels(time.Now())))
}

// MarkRead handles POST /api/reels/{day}/{mentor_id}/read
func (h *ReelHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	day := r.PathValue("day")
	mentorID := r.PathValue("mentor_id")

	h.service.MarkReelRead(day, mentorID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
