package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"mentor-chat/internal/chat"
)

// MentorHandler handles mentor-related HTTP requests
type MentorHandler struct {
	service *chat.Service
	logger  *zap.Logger
}

// NewMentorHandler creates a new mentor handler
func NewMentorHandler(service *chat.Service, logger *zap.Logger) *MentorHandler {
	return &MentorHandler{service: service, logger: logger}
}

// MentorResponse represents a mentor in API responses
type MentorResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Accent     string `json:"accent"`
	Philosophy string `json:"philosophy"`
	CreatedAt  string `json:"created_at"`
}

// List handles GET /api/mentors
func (h *MentorHandler) List(w http.ResponseWriter, r *http.Request) {
	mentors := h.service.Mentors()

	response := make([]MentorResponse, len(mentors))
	for i, mentor := range mentors {
		response[i] = MentorResponse{
			ID:         mentor.ID,
			Name:       mentor.Name,
			Role:       mentor.Role,
			Status:     mentor.Status,
			Accent:     mentor.Accent,
			Philosophy: mentor.Philosophy,
			CreatedAt:  mentor.CreatedAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// State handles GET /api/state
func (h *MentorHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.CurrentState())
}
