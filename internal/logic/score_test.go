package logic

import (
	"testing"

	"mentor-chat/internal/models"
)

func TestCalculateDelta(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"stress language", "I hate this repetitive work", -3},
		{"action language", "I finally automated my invoicing", 5},
		{"both patterns", "stressed but building a system", 2},
		{"neither pattern", "hello there", 0},
		{"empty input", "", 0},
		{"case insensitive", "SO TIRED of all this", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateDelta(tt.text); got != tt.want {
				t.Errorf("CalculateDelta(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCalculateDelta_Deterministic(t *testing.T) {
	text := "stuck in a job I hate but investing on the side"
	first := CalculateDelta(text)
	for range 10 {
		if got := CalculateDelta(text); got != first {
			t.Fatalf("expected stable delta %d, got %d", first, got)
		}
	}
}

func TestApplyDelta(t *testing.T) {
	thread := &models.Thread{RichScore: 30, RushScore: 70}

	ApplyDelta(thread, -3)
	if thread.RichScore != 27 || thread.RushScore != 73 {
		t.Errorf("expected 27/73, got %d/%d", thread.RichScore, thread.RushScore)
	}
	if thread.RichActionCount != 0 {
		t.Errorf("expected no rich action below 50, got %d", thread.RichActionCount)
	}

	ApplyDelta(thread, 5)
	if thread.RichScore != 32 || thread.RushScore != 68 {
		t.Errorf("expected 32/68, got %d/%d", thread.RichScore, thread.RushScore)
	}
}

func TestApplyDelta_ZeroLeavesThreadUntouched(t *testing.T) {
	thread := &models.Thread{RichScore: 30, RushScore: 70, RichActionCount: 2}
	ApplyDelta(thread, 0)
	if thread.RichScore != 30 || thread.RushScore != 70 || thread.RichActionCount != 2 {
		t.Error("expected zero delta to be a no-op")
	}
}

func TestApplyDelta_ClampsAtBounds(t *testing.T) {
	thread := &models.Thread{RichScore: 98, RushScore: 2}
	for range 10 {
		ApplyDelta(thread, 5)
	}
	if thread.RichScore != 100 || thread.RushScore != 0 {
		t.Errorf("expected clamp at 100/0, got %d/%d", thread.RichScore, thread.RushScore)
	}

	thread = &models.Thread{RichScore: 4, RushScore: 96}
	for range 10 {
		ApplyDelta(thread, -3)
	}
	if thread.RichScore != 0 || thread.RushScore != 100 {
		t.Errorf("expected clamp at 0/100, got %d/%d", thread.RichScore, thread.RushScore)
	}
}

func TestApplyDelta_CountsRichActions(t *testing.T) {
	thread := &models.Thread{RichScore: 48, RushScore: 52}

	ApplyDelta(thread, 5) // 53, above 50
	if thread.RichActionCount != 1 {
		t.Errorf("expected 1 rich action, got %d", thread.RichActionCount)
	}

	ApplyDelta(thread, -3) // 50, not above
	if thread.RichActionCount != 1 {
		t.Errorf("expected rich action count to stay at 1, got %d", thread.RichActionCount)
	}

	ApplyDelta(thread, 5) // 55
	if thread.RichActionCount != 2 {
		t.Errorf("expected 2 rich actions, got %d", thread.RichActionCount)
	}
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		peak int
		want ThemeTier
	}{
		{0, TierRush},
		{24, TierRush},
		{25, TierGrind},
		{49, TierGrind},
		{50, TierFlow},
		{79, TierFlow},
		{80, TierPeak},
		{100, TierPeak},
	}

	for _, tt := range tests {
		if got := TierForScore(tt.peak); got != tt.want {
			t.Errorf("TierForScore(%d) = %q, want %q", tt.peak, got, tt.want)
		}
	}
}
