package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mentor-chat/internal/content"
	"mentor-chat/internal/logic"
	"mentor-chat/internal/models"
)

const (
	// DefaultTimeout bounds a single bridge request; on expiry the in-flight
	// request is cancelled and the canned fallback is used.
	DefaultTimeout = 15 * time.Second

	// HistoryLimit is how many recent messages accompany each request.
	HistoryLimit = 6
)

// Client talks to the hosted reply bridge. It never surfaces a failure:
// every failure path degrades to a canned per-mentor reply with locally
// computed focus and score delta.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
	library    *content.Library
	logger     *zap.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets a custom request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new bridge client
func NewClient(url string, library *content.Library, logger *zap.Logger, opts ...ClientOption) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		library:    library,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HistoryEntry is one role-mapped message in the bridge request.
type HistoryEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// chatRequest is the bridge wire request.
type chatRequest struct {
	Mentor  string         `json:"mentor"`
	Message string         `json:"message"`
	History []HistoryEntry `json:"history"`
}

// chatResponse is the bridge wire response. Focus and score delta are
// optional; absent values are computed locally.
type chatResponse struct {
	Reply      string  `json:"reply"`
	Focus      *string `json:"focus,omitempty"`
	ScoreDelta *int    `json:"scoreDelta,omitempty"`
}

// Reply is the gateway result. Degraded marks content produced by the local
// fallback rather than the bridge; callers treat both the same.
type Reply struct {
	Text       string
	Focus      logic.FocusArea
	ScoreDelta int
	Degraded   bool
}

// APIError represents a non-success status from the bridge
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bridge error (status %d): %s", e.StatusCode, e.Message)
}

// HistoryFromMessages maps thread messages to bridge history entries,
// keeping only the most recent HistoryLimit: user messages as "user",
// mentor messages as "assistant".
func HistoryFromMessages(messages []models.Message) []HistoryEntry {
	start := 0
	if len(messages) > HistoryLimit {
		start = len(messages) - HistoryLimit
	}

	history := make([]HistoryEntry, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		role := "assistant"
		if msg.Direction == models.DirectionOut {
			role = "user"
		}
		history = append(history, HistoryEntry{Role: role, Text: msg.Text})
	}
	return history
}

// Chat requests a reply for a mentor. It always returns a usable Reply:
// timeouts, network errors, non-2xx statuses and malformed bodies all
// degrade to the canned fallback for that mentor.
func (c *Client) Chat(ctx context.Context, mentorID, message string, history []HistoryEntry) Reply {
	resp, err := c.send(ctx, mentorID, message, history)
	if err != nil {
		c.logger.Warn("bridge request failed, using fallback",
			zap.String("mentor_id", mentorID),
			zap.Error(err))
		return c.fallback(mentorID, message, len(history))
	}

	if resp.Reply == "" {
		c.logger.Warn("bridge returned empty reply, using fallback",
			zap.String("mentor_id", mentorID))
		return c.fallback(mentorID, message, len(history))
	}

	reply := Reply{Text: resp.Reply}

	// Trust the bridge's focus and delta when reported, compute locally
	// when absent or unrecognized.
	if resp.Focus != nil && logic.ValidFocus(*resp.Focus) {
		reply.Focus = logic.FocusArea(*resp.Focus)
	} else {
		reply.Focus = logic.ClassifyFocus(message)
	}
	if resp.ScoreDelta != nil {
		reply.ScoreDelta = *resp.ScoreDelta
	} else {
		reply.ScoreDelta = logic.CalculateDelta(message)
	}

	return reply
}

// send performs the single POST to the bridge.
func (c *Client) send(ctx context.Context, mentorID, message string, history []HistoryEntry) (*chatResponse, error) {
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}

	body, err := json.Marshal(chatRequest{
		Mentor:  mentorID,
		Message: message,
		History: history,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.handleError(resp)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// fallback builds the degraded reply: canned text by mentor identity, focus
// and delta from the local models.
func (c *Client) fallback(mentorID, message string, seed int) Reply {
	return Reply{
		Text:       c.library.Fallback(mentorID, seed+len(message)),
		Focus:      logic.ClassifyFocus(message),
		ScoreDelta: logic.CalculateDelta(message),
		Degraded:   true,
	}
}

// handleError processes error responses from the bridge
func (c *Client) handleError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	// Truncate for logging if too long
	logBody := bodyStr
	if len(logBody) > 500 {
		logBody = logBody[:500] + "..."
	}
	c.logger.Warn("bridge returned error status",
		zap.Int("status", resp.StatusCode),
		zap.String("body", logBody))

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    bodyStr,
	}
}
