package logic

import (
	"regexp"
	"strings"

	"mentor-chat/internal/models"
)

// Score deltas applied per matching pattern. Both can apply to one message;
// the effects are additive.
const (
	stressDelta = -3
	actionDelta = 5
)

// stressPattern matches survival-mode language: complaints, exhaustion,
// feeling trapped by the grind.
var stressPattern = regexp.MustCompile(`hate|stuck|tired|exhaust|overwhelm|stress|drain|trapped|hopeless|burn(ed|t) out|can'?t (do|take|handle)`)

// actionPattern matches systems-mode language: building, automating,
// delegating, putting assets to work.
var actionPattern = regexp.MustCompile(`build|built|system|automat|delegat|invest|launch|hired|process|pipeline|passive|asset`)

// CalculateDelta scores a user message: -3 for stress language, +5 for
// system-building language, additive when both match, 0 otherwise.
// Deterministic and pure.
func CalculateDelta(text string) int {
	lowered := strings.ToLower(text)

	delta := 0
	if stressPattern.MatchString(lowered) {
		delta += stressDelta
	}
	if actionPattern.MatchString(lowered) {
		delta += actionDelta
	}
	return delta
}

// ClampScore keeps a gauge inside [0,100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ApplyDelta adjusts a thread's rich score by delta, re-derives the rush
// score so rich + rush == 100, and increments the rich-action counter when
// the adjusted rich score sits above 50. A zero delta leaves the thread
// untouched.
func ApplyDelta(thread *models.Thread, delta int) {
	if delta == 0 {
		return
	}

	thread.RichScore = ClampScore(thread.RichScore + delta)
	thread.RushScore = 100 - thread.RichScore
	if thread.RichScore > 50 {
		thread.RichActionCount++
	}
}

// ThemeTier is the visual theme tier driven by the global peak rich score.
type ThemeTier string

const (
	TierRush  ThemeTier = "rush"  // lowest
	TierGrind ThemeTier = "grind" // peak >= 25
	TierFlow  ThemeTier = "flow"  // peak >= 50
	TierPeak  ThemeTier = "peak"  // peak >= 80
)

// TierForScore maps the peak rich score to a theme tier.
func TierForScore(peak int) ThemeTier {
	switch {
	case peak >= 80:
		return TierPeak
	case peak >= 50:
		return TierFlow
	case peak >= 25:
		return TierGrind
	default:
		return TierRush
	}
}
