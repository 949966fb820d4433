package logic

import (
	"time"

	"mentor-chat/internal/content"
	"mentor-chat/internal/models"
)

// DayKey is the calendar-day key reels are selected and marked read under.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// dayNumber reduces a day key to a number by keeping its digits, so
// "2026-08-28" indexes as 20260828. Deterministic per calendar day.
func dayNumber(dayKey string) int {
	n := 0
	for _, r := range dayKey {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// DailyReels selects one reel per mentor for the given day: the day number
// modulo the mentor's reel-library length. Mentors with a weekday
// restriction only appear on their configured days. Pure function of
// (day, library); calling it twice for the same day yields the same set.
func DailyReels(lib *content.Library, day time.Time) []models.Reel {
	key := DayKey(day)
	num := dayNumber(key)
	weekday := day.Weekday()

	var reels []models.Reel
	for _, entry := range lib.Mentors {
		if !reelVisible(lib.ReelDaysFor(entry.ID), weekday) {
			continue
		}
		if len(entry.Reels) == 0 {
			continue
		}
		reels = append(reels, models.Reel{
			ID:       key + ":" + entry.ID,
			Day:      key,
			MentorID: entry.ID,
			Text:     entry.Reels[num%len(entry.Reels)],
		})
	}
	return reels
}

func reelVisible(days []time.Weekday, weekday time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
