package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"mentor-chat/internal/chat"
	"mentor-chat/internal/models"
)

// ThreadHandler handles thread and message HTTP requests
type ThreadHandler struct {
	service *chat.Service
	logger  *zap.Logger
}

// NewThreadHandler creates a new thread handler
func NewThreadHandler(service *chat.Service, logger *zap.Logger) *ThreadHandler {
	return &ThreadHandler{service: service, logger: logger}
}

// ThreadResponse represents a thread in API responses
type ThreadResponse struct {
	MentorID         string `json:"mentor_id"`
	Pinned           bool   `json:"pinned"`
	Unread           int    `json:"unread"`
	Preview          string `json:"preview"`
	RushScore        int    `json:"rush_score"`
	RichScore        int    `json:"rich_score"`
	UserMessageCount int    `json:"user_message_count"`
	RichActionCount  int    `json:"rich_action_count"`
	LastActivity     string `json:"last_activity"`
}

func threadResponse(thread models.Thread) ThreadResponse {
	return ThreadResponse{
		MentorID:         thread.MentorID,
		Pinned:           thread.Pinned,
		Unread:           thread.Unread,
		Preview:          thread.Preview,
		RushScore:        thread.RushScore,
		RichScore:        thread.RichScore,
		UserMessageCount: thread.UserMessageCount,
		RichActionCount:  thread.RichActionCount,
		LastActivity:     thread.LastActivity.Format(time.RFC3339),
	}
}

// List handles GET /api/threads
func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	threads := h.service.Threads()

	response := make([]ThreadResponse, len(threads))
	for i, thread := range threads {
		response[i] = threadResponse(thread)
	}

	writeJSON(w, http.StatusOK, response)
}

// Get handles GET /api/threads/{mentor_id}
func (h *ThreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	mentorID := r.PathValue("mentor_id")

	thread, ok := h.service.Thread(mentorID)
	if !ok {
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	}

	writeJSON(w, http.StatusOK, threadResponse(thread))
}

// Open handles POST /api/threads/{mentor_id}/open. Opening an unknown
// thread is a silent no-op, mirroring the UI contract.
func (h *ThreadHandler) Open(w http.ResponseWriter, r *http.Request) {
	mentorID := r.PathValue("mentor_id")
	h.service.OpenThread(mentorID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID        string               `json:"id"`
	MentorID  string               `json:"mentor_id"`
	Direction string               `json:"direction"`
	Text      string               `json:"text"`
	Tag       string               `json:"tag,omitempty"`
	Actions   []models.QuickAction `json:"actions,omitempty"`
	CreatedAt string               `json:"created_at"`
}

func messageResponse(msg models.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		MentorID:  msg.MentorID,
		Direction: string(msg.Direction),
		Text:      msg.Text,
		Tag:       msg.Tag,
		Actions:   msg.Actions,
		CreatedAt: msg.CreatedAt.Format(time.RFC3339),
	}
}

// GetMessages handles GET /api/threads/{mentor_id}/messages
func (h *ThreadHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	mentorID := r.PathValue("mentor_id")

	if _, ok := h.service.Thread(mentorID); !ok {
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	}

	messages := h.service.Messages(mentorID)
	response := make([]MessageResponse, len(messages))
	for i, msg := range messages {
		response[i] = messageResponse(msg)
	}

	writeJSON(w, http.StatusOK, response)
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessageResponse represents a completed send
type SendMessageResponse struct {
	UserMessage   MessageResponse `json:"user_message"`
	Reply         MessageResponse `json:"reply"`
	Thread        ThreadResponse  `json:"thread"`
	Focus         string          `json:"focus"`
	Theme         string          `json:"theme"`
	PeakRichScore int             `json:"peak_rich_score"`
}

// SendMessage handles POST /api/threads/{mentor_id}/messages
func (h *ThreadHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	mentorID := r.PathValue("mentor_id")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result, err := h.service.SendMessage(r.Context(), mentorID, req.Text)
	switch {
	case errors.Is(err, chat.ErrUnknownThread):
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	case errors.Is(err, chat.ErrSendInFlight):
		writeError(w, http.StatusConflict, "A reply is already on its way")
		return
	case errors.Is(err, chat.ErrSessionLimit):
		writeError(w, http.StatusTooManyRequests, "You've used this session up. Come back tomorrow.")
		return
	case err != nil:
		h.logger.Error("send message failed",
			zap.String("mentor_id", mentorID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	writeJSON(w, http.StatusOK, SendMessageResponse{
		UserMessage:   messageResponse(result.UserMessage),
		Reply:         messageResponse(result.Reply),
		Thread:        threadResponse(result.Thread),
		Focus:         string(result.Focus),
		Theme:         string(result.Theme),
		PeakRichScore: result.PeakRichScore,
	})
}
