package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentor-chat/internal/content"
	"mentor-chat/internal/db"
	"mentor-chat/internal/gateway"
	"mentor-chat/internal/logic"
	"mentor-chat/internal/models"
)

// DefaultSessionLimit caps user-sent messages per thread. A soft usage cap,
// not a security boundary; there is no reset operation.
const DefaultSessionLimit = 12

const previewLimit = 80

var (
	// ErrSessionLimit rejects a send once the thread's user-message count
	// reached the session limit. No state is mutated.
	ErrSessionLimit = errors.New("session message limit reached for this mentor")

	// ErrSendInFlight rejects a send while a bridge call for the same thread
	// is still outstanding.
	ErrSendInFlight = errors.New("a reply for this thread is still pending")

	// ErrUnknownThread marks a send addressed to a mentor that was never
	// seeded.
	ErrUnknownThread = errors.New("unknown mentor thread")
)

// Service owns the in-memory mirror of threads, messages, reels and
// preferences, loaded from the store at startup and persisted after each
// mutation. It is the application context the handlers operate on; there is
// no package-level state.
type Service struct {
	store        *db.DB
	bridge       *gateway.Client
	library      *content.Library
	logger       *zap.Logger
	sessionLimit int

	mu       sync.Mutex
	mentors  []models.Mentor
	threads  map[string]*models.Thread
	messages map[string][]models.Message
	inflight map[string]bool

	reelDay string
	reels   []models.Reel

	peakRichScore int
	theme         logic.ThemeTier
	onboarded     bool
}

// NewService creates the chat service. Call LoadState before serving.
func NewService(store *db.DB, bridge *gateway.Client, library *content.Library, sessionLimit int, logger *zap.Logger) *Service {
	if sessionLimit <= 0 {
		sessionLimit = DefaultSessionLimit
	}
	return &Service{
		store:        store,
		bridge:       bridge,
		library:      library,
		logger:       logger,
		sessionLimit: sessionLimit,
		threads:      make(map[string]*models.Thread),
		messages:     make(map[string][]models.Message),
		inflight:     make(map[string]bool),
		theme:        logic.TierRush,
	}
}

// LoadState loads mentors, threads, messages and preferences into memory.
// A failure here is fatal to startup; the caller should not serve without
// loaded state.
func (s *Service) LoadState() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mentors, err := s.store.GetAllMentors()
	if err != nil {
		return fmt.Errorf("failed to load mentors: %w", err)
	}
	s.mentors = mentors

	threads, err := s.store.GetAllThreads()
	if err != nil {
		return fmt.Errorf("failed to load threads: %w", err)
	}
	s.threads = make(map[string]*models.Thread, len(threads))
	s.messages = make(map[string][]models.Message, len(threads))
	for i := range threads {
		thread := threads[i]
		s.threads[thread.MentorID] = &thread

		msgs, err := s.store.GetMessages(thread.MentorID)
		if err != nil {
			return fmt.Errorf("failed to load messages for %q: %w", thread.MentorID, err)
		}
		s.messages[thread.MentorID] = msgs
	}

	peak, err := s.store.GetPreferenceOr(models.PrefPeakRichScore, "0")
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if v, err := strconv.Atoi(peak); err == nil {
		s.peakRichScore = v
	}
	s.theme = logic.TierForScore(s.peakRichScore)

	onboarded, err := s.store.GetPreferenceOr(models.PrefOnboarded, "false")
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	s.onboarded = onboarded == "true"

	s.logger.Info("state loaded",
		zap.Int("mentors", len(s.mentors)),
		zap.Int("threads", len(s.threads)),
		zap.Int("peak_rich_score", s.peakRichScore))
	return nil
}

// Mentors returns the seeded mentor list.
func (s *Service) Mentors() []models.Mentor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Mentor, len(s.mentors))
	copy(out, s.mentors)
	return out
}

// Threads returns thread snapshots, pinned first, most recent activity next.
func (s *Service) Threads() []models.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Thread, 0, len(s.threads))
	for _, thread := range s.threads {
		out = append(out, *thread)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	return out
}

// Thread returns a snapshot of one thread.
func (s *Service) Thread(mentorID string) (models.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[mentorID]
	if !ok {
		return models.Thread{}, false
	}
	return *thread, true
}

// Messages returns the ordered messages of a thread.
func (s *Service) Messages(mentorID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[mentorID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

// OpenThread resets a thread's unread count. Opening an unknown thread
// silently does nothing.
func (s *Service) OpenThread(mentorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[mentorID]
	if !ok || thread.Unread == 0 {
		return
	}

	thread.Unread = 0
	s.persistThread(thread)
}

// SendResult is what a completed send returns to the UI.
type SendResult struct {
	UserMessage   models.Message  `json:"user_message"`
	Reply         models.Message  `json:"reply"`
	Thread        models.Thread   `json:"thread"`
	Focus         logic.FocusArea `json:"focus"`
	Theme         logic.ThemeTier `json:"theme"`
	PeakRichScore int             `json:"peak_rich_score"`
	Degraded      bool            `json:"degraded"`
}

// SendMessage runs the full pipeline: session gate, persist the user
// message, bridge call (with fallback), persist the reply, score update,
// preference high-water mark and theme. At most one send per thread may be
// in flight.
func (s *Service) SendMessage(ctx context.Context, mentorID, text string) (*SendResult, error) {
	s.mu.Lock()

	thread, ok := s.threads[mentorID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrUnknownThread
	}
	if s.inflight[mentorID] {
		s.mu.Unlock()
		return nil, ErrSendInFlight
	}
	if thread.UserMessageCount >= s.sessionLimit {
		s.mu.Unlock()
		return nil, ErrSessionLimit
	}

	now := time.Now()
	userMsg := models.Message{
		ID:        uuid.NewString(),
		MentorID:  mentorID,
		Direction: models.DirectionOut,
		Text:      text,
		CreatedAt: now,
	}

	s.messages[mentorID] = append(s.messages[mentorID], userMsg)
	thread.UserMessageCount++
	thread.LastActivity = now
	thread.Preview = truncatePreview(text)

	s.persistMessage(&userMsg)
	s.persistThread(thread)

	if !s.onboarded {
		s.onboarded = true
		s.persistPreference(models.PrefOnboarded, "true")
	}

	// Copy the history before releasing the lock; the bridge call must not
	// hold up reads on other threads.
	history := gateway.HistoryFromMessages(s.messages[mentorID])
	s.inflight[mentorID] = true
	s.mu.Unlock()

	reply := s.bridge.Chat(ctx, mentorID, text, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, mentorID)

	replyMsg := models.Message{
		ID:        uuid.NewString(),
		MentorID:  mentorID,
		Direction: models.DirectionIn,
		Text:      reply.Text,
		Tag:       s.mentorName(mentorID),
		CreatedAt: time.Now(),
	}

	s.messages[mentorID] = append(s.messages[mentorID], replyMsg)
	thread.LastActivity = replyMsg.CreatedAt
	thread.Preview = truncatePreview(reply.Text)

	if reply.ScoreDelta != 0 {
		logic.ApplyDelta(thread, reply.ScoreDelta)
		if thread.RichScore > s.peakRichScore {
			s.peakRichScore = thread.RichScore
			s.persistPreference(models.PrefPeakRichScore, strconv.Itoa(s.peakRichScore))

			if tier := logic.TierForScore(s.peakRichScore); tier != s.theme {
				s.theme = tier
				s.persistPreference(models.PrefTheme, string(tier))
				s.logger.Info("theme tier changed",
					zap.String("tier", string(tier)),
					zap.Int("peak_rich_score", s.peakRichScore))
			}
		}
	}

	s.persistMessage(&replyMsg)
	s.persistThread(thread)

	return &SendResult{
		UserMessage:   userMsg,
		Reply:         replyMsg,
		Thread:        *thread,
		Focus:         reply.Focus,
		Theme:         s.theme,
		PeakRichScore: s.peakRichScore,
		Degraded:      reply.Degraded,
	}, nil
}

// State reports the global preference-driven state for the UI shell.
type State struct {
	Theme         logic.ThemeTier `json:"theme"`
	PeakRichScore int             `json:"peak_rich_score"`
	Onboarded     bool            `json:"onboarded"`
}

// CurrentState returns the theme tier, peak score and onboarding flag.
func (s *Service) CurrentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Theme:         s.theme,
		PeakRichScore: s.peakRichScore,
		Onboarded:     s.onboarded,
	}
}

// Reels returns today's reels with read flags, recomputing the set whenever
// the calendar day changed since the last refresh. The recompute fully
// replaces the previous in-memory set; only read markers persist.
func (s *Service) Reels(now time.Time) []models.Reel {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := logic.DayKey(now)
	if s.reelDay != day {
		s.refreshReelsLocked(now)
	}

	out := make([]models.Reel, len(s.reels))
	copy(out, s.reels)
	return out
}

// RefreshReels forces a recompute, used when the app regains focus.
func (s *Service) RefreshReels(now time.Time) []models.Reel {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshReelsLocked(now)
	out := make([]models.Reel, len(s.reels))
	copy(out, s.reels)
	return out
}

func (s *Service) refreshReelsLocked(now time.Time) {
	day := logic.DayKey(now)
	reels := logic.DailyReels(s.library, now)

	markers, err := s.store.GetReadMarkersForDay(day)
	if err != nil {
		// Reels still show, just all unread
		s.logger.Error("failed to load read markers", zap.String("day", day), zap.Error(err))
	}
	seen := make(map[string]bool, len(markers))
	for _, m := range markers {
		seen[m.MentorID] = m.Seen
	}

	for i := range reels {
		reels[i].Seen = seen[reels[i].MentorID]
	}

	s.reelDay = day
	s.reels = reels
}

// MarkReelRead flags one day/mentor reel as seen. Unknown reels are a no-op.
func (s *Service) MarkReelRead(day, mentorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.threads[mentorID]; !ok {
		return
	}

	marker := models.ReadMarker{Day: day, MentorID: mentorID, Seen: true}
	if err := s.store.PutReadMarker(&marker); err != nil {
		s.logger.Error("failed to persist read marker",
			zap.String("day", day),
			zap.String("mentor_id", mentorID),
			zap.Error(err))
	}

	if s.reelDay == day {
		for i := range s.reels {
			if s.reels[i].MentorID == mentorID {
				s.reels[i].Seen = true
			}
		}
	}
}

// SessionLimit returns the configured per-thread send cap.
func (s *Service) SessionLimit() int {
	return s.sessionLimit
}

func (s *Service) mentorName(mentorID string) string {
	for _, m := range s.mentors {
		if m.ID == mentorID {
			return m.Name
		}
	}
	return ""
}

// persistThread writes a thread best-effort: mid-session storage failures
// are logged and the in-memory state stays authoritative.
func (s *Service) persistThread(thread *models.Thread) {
	if err := s.store.PutThread(thread); err != nil {
		s.logger.Error("failed to persist thread",
			zap.String("mentor_id", thread.MentorID),
			zap.Error(err))
	}
}

func (s *Service) persistMessage(msg *models.Message) {
	if err := s.store.PutMessage(msg); err != nil {
		s.logger.Error("failed to persist message",
			zap.String("message_id", msg.ID),
			zap.String("mentor_id", msg.MentorID),
			zap.Error(err))
	}
}

func (s *Service) persistPreference(name, value string) {
	if err := s.store.PutPreference(&models.Preference{Name: name, Value: value}); err != nil {
		s.logger.Error("failed to persist preference",
			zap.String("name", name),
			zap.Error(err))
	}
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit-1]) + "…"
}
