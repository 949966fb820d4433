package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"mentor-chat/internal/chat"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Router holds the HTTP multiplexer and dependencies
type Router struct {
	mux           *http.ServeMux
	mentorHandler *MentorHandler
	threadHandler *ThreadHandler
	reelHandler   *ReelHandler
	staticDir     string
	logger        *zap.Logger
}

// NewRouter creates a new router with all routes configured
func NewRouter(service *chat.Service, staticDir string, logger *zap.Logger) *Router {
	r := &Router{
		mux:           http.NewServeMux(),
		mentorHandler: NewMentorHandler(service, logger),
		threadHandler: NewThreadHandler(service, logger),
		reelHandler:   NewReelHandler(service, logger),
		staticDir:     staticDir,
		logger:        logger,
	}
	r.setupRoutes()
	return r
}

// setupRoutes configures all HTTP routes
func (r *Router) setupRoutes() {
	// Health check
	r.mux.HandleFunc("GET /health", HealthHandler)

	// Mentor routes
	r.mux.HandleFunc("GET /api/mentors", r.mentorHandler.List)
	r.mux.HandleFunc("GET /api/state", r.mentorHandler.State)

	// Thread routes
	r.mux.HandleFunc("GET /api/threads", r.threadHandler.List)
	r.mux.HandleFunc("GET /api/threads/{mentor_id}", r.threadHandler.Get)
	r.mux.HandleFunc("POST /api/threads/{mentor_id}/open", r.threadHandler.Open)
	r.mux.HandleFunc("GET /api/threads/{mentor_id}/messages", r.threadHandler.GetMessages)
	r.mux.HandleFunc("POST /api/threads/{mentor_id}/messages", r.threadHandler.SendMessage)

	// Reel routes
	r.mux.HandleFunc("GET /api/reels", r.reelHandler.List)
	r.mux.HandleFunc("POST /api/reels/refresh", r.reelHandler.Refresh)
	r.mux.HandleFunc("POST /api/reels/{day}/{mentor_id}/read", r.reelHandler.MarkRead)

	// Static file serving (for frontend)
	if r.staticDir != "" {
		r.mux.HandleFunc("GET /", r.serveStatic)
	}
}

// serveStatic serves static files from the static directory, falling back
// to index.html for SPA routes.
func (r *Router) serveStatic(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if strings.Contains(path, "..") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	fullPath := filepath.Join(r.staticDir, filepath.Clean(path))
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		fullPath = filepath.Join(r.staticDir, "index.html")
	}

	http.ServeFile(w, req, fullPath)
}

// ServeHTTP implements http.Handler with request logging
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	rw := newResponseWriter(w)

	r.mux.ServeHTTP(rw, req)

	r.logger.Debug("request handled",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", rw.statusCode),
		zap.Duration("duration", time.Since(start)))
}

// HealthHandler handles GET /health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error payload
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
