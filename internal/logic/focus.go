package logic

import (
	"regexp"
	"strings"
)

// FocusArea is the topical category a stretch of conversation is about.
type FocusArea string

const (
	FocusDebts         FocusArea = "debts"
	FocusBusiness      FocusArea = "business"
	FocusJobs          FocusArea = "jobs"
	FocusTimeAudit     FocusArea = "time-audit"
	FocusNecessityTest FocusArea = "necessity-test"
	FocusGeneral       FocusArea = "general"
)

// focusRule pairs a category with its keyword pattern. Rules are evaluated
// in order and the first match wins, so a message touching both debts and
// business always classifies as debts.
type focusRule struct {
	area    FocusArea
	pattern *regexp.Regexp
}

var focusRules = []focusRule{
	{FocusDebts, regexp.MustCompile(`debt|loan|credit|owe|interest|collector|mortgage`)},
	{FocusBusiness, regexp.MustCompile(`business|startup|company|client|product|sell|customer|revenue`)},
	{FocusJobs, regexp.MustCompile(`job|salary|boss|career|work|promotion|resume|fired`)},
	{FocusTimeAudit, regexp.MustCompile(`time|hour|schedule|busy|calendar|procrastinat`)},
	{FocusNecessityTest, regexp.MustCompile(`need|necessit|essential|expense|spend|subscription|afford`)},
}

// ClassifyFocus maps message text to a focus area using ordered keyword
// matching. Empty or unmatched input is FocusGeneral.
func ClassifyFocus(text string) FocusArea {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return FocusGeneral
	}

	for _, rule := range focusRules {
		if rule.pattern.MatchString(lowered) {
			return rule.area
		}
	}
	return FocusGeneral
}

// ValidFocus reports whether a string is one of the known focus areas.
// Used to vet focus values reported by the remote bridge.
func ValidFocus(s string) bool {
	switch FocusArea(s) {
	case FocusDebts, FocusBusiness, FocusJobs, FocusTimeAudit, FocusNecessityTest, FocusGeneral:
		return true
	}
	return false
}
