package content

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed library.yaml
var defaultLibrary []byte

// QuickReply is a suggested action attached to an opening message.
type QuickReply struct {
	Label  string `yaml:"label"`
	Action string `yaml:"action"`
}

// Opening is a scripted first message a mentor sends on seed.
type Opening struct {
	Text    string       `yaml:"text"`
	Actions []QuickReply `yaml:"actions"`
}

// MentorEntry is one persona in the content library: the static profile plus
// its scripted openings, canned fallback replies and reel library.
type MentorEntry struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Role       string    `yaml:"role"`
	Status     string    `yaml:"status"`
	Accent     string    `yaml:"accent"`
	Philosophy string    `yaml:"philosophy"`
	Pinned     bool      `yaml:"pinned"`
	Openings   []Opening `yaml:"openings"`
	Fallbacks  []string  `yaml:"fallbacks"`
	Reels      []string  `yaml:"reels"`
	// ReelDays restricts which weekdays this mentor's reel appears on.
	// Empty means every day. Content policy, kept as data on purpose.
	ReelDays []string `yaml:"reel_days"`
}

// Library holds the full static content set for the application.
type Library struct {
	Mentors         []MentorEntry `yaml:"mentors"`
	GenericFallback string        `yaml:"generic_fallback"`

	byID map[string]*MentorEntry
}

// Default parses the embedded content library.
func Default() (*Library, error) {
	return parse(defaultLibrary)
}

// LoadFile parses a content library from a settings file, for overriding the
// embedded one without rebuilding.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse content library: %w", err)
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}

	lib.byID = make(map[string]*MentorEntry, len(lib.Mentors))
	for i := range lib.Mentors {
		lib.byID[lib.Mentors[i].ID] = &lib.Mentors[i]
	}
	return &lib, nil
}

func (l *Library) validate() error {
	if len(l.Mentors) == 0 {
		return fmt.Errorf("content library has no mentors")
	}
	if l.GenericFallback == "" {
		return fmt.Errorf("content library has no generic fallback reply")
	}

	seen := make(map[string]bool)
	for _, m := range l.Mentors {
		if m.ID == "" || m.Name == "" {
			return fmt.Errorf("content library mentor missing id or name")
		}
		if seen[m.ID] {
			return fmt.Errorf("content library has duplicate mentor id %q", m.ID)
		}
		seen[m.ID] = true
		if len(m.Fallbacks) == 0 {
			return fmt.Errorf("mentor %q has no fallback replies", m.ID)
		}
		if len(m.Reels) == 0 {
			return fmt.Errorf("mentor %q has no reel library", m.ID)
		}
		for _, day := range m.ReelDays {
			if _, ok := parseWeekday(day); !ok {
				return fmt.Errorf("mentor %q has invalid reel day %q", m.ID, day)
			}
		}
	}
	return nil
}

// Entry returns the library entry for a mentor id, or nil when unknown.
func (l *Library) Entry(id string) *MentorEntry {
	return l.byID[id]
}

// Fallback returns the canned reply for a mentor. The pick rotates on the
// caller-supplied seed so repeated failures don't echo one line; unknown
// mentors get the generic fallback.
func (l *Library) Fallback(mentorID string, seed int) string {
	entry := l.byID[mentorID]
	if entry == nil || len(entry.Fallbacks) == 0 {
		return l.GenericFallback
	}
	if seed < 0 {
		seed = -seed
	}
	return entry.Fallbacks[seed%len(entry.Fallbacks)]
}

// ReelDaysFor returns the weekday restriction for a mentor. An empty slice
// means the mentor's reel appears every day.
func (l *Library) ReelDaysFor(mentorID string) []time.Weekday {
	entry := l.byID[mentorID]
	if entry == nil {
		return nil
	}
	days := make([]time.Weekday, 0, len(entry.ReelDays))
	for _, name := range entry.ReelDays {
		if day, ok := parseWeekday(name); ok {
			days = append(days, day)
		}
	}
	return days
}

func parseWeekday(name string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if day.String() == name {
			return day, true
		}
	}
	return time.Sunday, false
}
