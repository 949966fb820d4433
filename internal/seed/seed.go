package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentor-chat/internal/content"
	"mentor-chat/internal/db"
	"mentor-chat/internal/models"
)

// Seed values for fresh threads.
const (
	initialUnread    = 1
	initialRushScore = 70
	initialRichScore = 30
	maxOpenings      = 2
)

// Run populates the store on first launch: mentor records, one thread per
// mentor and the scripted opening messages. A non-empty mentor collection
// means seeding already happened and Run is a no-op.
func Run(store *db.DB, lib *content.Library, logger *zap.Logger) error {
	count, err := store.CountMentors()
	if err != nil {
		return fmt.Errorf("failed to check mentor collection: %w", err)
	}
	if count > 0 {
		logger.Debug("store already seeded", zap.Int("mentors", count))
		return nil
	}

	logger.Info("seeding store", zap.Int("mentors", len(lib.Mentors)))

	now := time.Now()
	base := now.Add(-time.Duration(len(lib.Mentors)) * time.Second)

	for i, entry := range lib.Mentors {
		mentor := models.Mentor{
			ID:         entry.ID,
			Name:       entry.Name,
			Role:       entry.Role,
			Status:     entry.Status,
			Accent:     entry.Accent,
			Philosophy: entry.Philosophy,
			// Staggered so listing preserves library order
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.PutMentor(&mentor); err != nil {
			return fmt.Errorf("failed to seed mentor %q: %w", entry.ID, err)
		}

		// Randomized recent activity so the fresh thread list doesn't look
		// like it was stamped out in one instant.
		lastActivity := now.Add(-time.Duration(rand.Intn(6*3600)) * time.Second)

		openings := entry.Openings
		if len(openings) > maxOpenings {
			openings = openings[:maxOpenings]
		}

		preview := ""
		if len(openings) > 0 {
			preview = openings[len(openings)-1].Text
		}

		// Thread first: messages reference it
		thread := models.Thread{
			MentorID:     entry.ID,
			Pinned:       entry.Pinned,
			Unread:       initialUnread,
			Preview:      preview,
			RushScore:    initialRushScore,
			RichScore:    initialRichScore,
			LastActivity: lastActivity,
			CreatedAt:    now,
		}
		if err := store.PutThread(&thread); err != nil {
			return fmt.Errorf("failed to seed thread for %q: %w", entry.ID, err)
		}

		for j, opening := range openings {
			msg := models.Message{
				ID:        uuid.NewString(),
				MentorID:  entry.ID,
				Direction: models.DirectionIn,
				Text:      opening.Text,
				Tag:       entry.Name,
				Actions:   quickActions(opening.Actions),
				CreatedAt: lastActivity.Add(-time.Duration(len(openings)-j) * 3 * time.Minute),
			}
			if err := store.PutMessage(&msg); err != nil {
				return fmt.Errorf("failed to seed opening for %q: %w", entry.ID, err)
			}
		}
	}

	logger.Info("store seeded")
	return nil
}

func quickActions(replies []content.QuickReply) []models.QuickAction {
	if len(replies) == 0 {
		return nil
	}
	actions := make([]models.QuickAction, len(replies))
	for i, r := range replies {
		actions[i] = models.QuickAction{Label: r.Label, Action: r.Action}
	}
	return actions
}
