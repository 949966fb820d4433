package models

import "time"

// Mentor is a fixed coaching persona. Mentors are seeded once and never
// change afterwards.
type Mentor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Accent     string    `json:"accent"`
	Philosophy string    `json:"philosophy"`
	CreatedAt  time.Time `json:"created_at"`
}

// Direction defines who sent a message.
type Direction string

const (
	DirectionIn  Direction = "in"  // from the mentor
	DirectionOut Direction = "out" // from the user
)

// QuickAction is a suggested quick-reply attached to a mentor message.
type QuickAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Message is a single chat message belonging to one thread. Messages are
// immutable once created and ordered by CreatedAt within a thread.
type Message struct {
	ID        string        `json:"id"`
	MentorID  string        `json:"mentor_id"`
	Direction Direction     `json:"direction"`
	Text      string        `json:"text"`
	Tag       string        `json:"tag,omitempty"`
	Actions   []QuickAction `json:"actions,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Thread is the per-mentor conversation state, one per mentor.
// RushScore and RichScore are complementary gauges: rush = 100 - rich
// after every update.
type Thread struct {
	MentorID         string    `json:"mentor_id"`
	Pinned           bool      `json:"pinned"`
	Unread           int       `json:"unread"`
	Preview          string    `json:"preview"`
	RushScore        int       `json:"rush_score"`
	RichScore        int       `json:"rich_score"`
	UserMessageCount int       `json:"user_message_count"`
	RichActionCount  int       `json:"rich_action_count"`
	LastActivity     time.Time `json:"last_activity"`
	CreatedAt        time.Time `json:"created_at"`
}

// Preference is a single named scalar setting, persisted individually.
type Preference struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Preference names used by the application.
const (
	PrefTheme         = "theme"
	PrefPeakRichScore = "peak_rich_score"
	PrefOnboarded     = "onboarded"
)

// ReadMarker records that the reel for a given day and mentor was seen.
type ReadMarker struct {
	Day      string `json:"day"`
	MentorID string `json:"mentor_id"`
	Seen     bool   `json:"seen"`
}

// Reel is a daily promotional content item. Reels are recomputed from the
// content library each refresh and never persisted; only their read markers
// are.
type Reel struct {
	ID       string `json:"id"` // "{day}:{mentorId}"
	Day      string `json:"day"`
	MentorID string `json:"mentor_id"`
	Text     string `json:"text"`
	Seen     bool   `json:"seen"`
}
