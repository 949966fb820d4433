package db

import (
	"time"

	"mentor-chat/internal/models"
)

// clampScore keeps a gauge inside [0,100].
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// PutThread upserts a thread record keyed by mentor ID. Scores are clamped
// to [0,100] and rush is re-derived from rich so the complementary invariant
// holds for every persisted row.
func (d *DB) PutThread(thread *models.Thread) error {
	return d.WithLock(func() error {
		if thread.CreatedAt.IsZero() {
			thread.CreatedAt = time.Now()
		}
		thread.RichScore = clampScore(thread.RichScore)
		thread.RushScore = 100 - thread.RichScore

		_, err := d.db.Exec(
			`INSERT INTO threads (mentor_id, pinned, unread, preview, rush_score, rich_score,
				user_message_count, rich_action_count, last_activity, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(mentor_id) DO UPDATE SET
				pinned = excluded.pinned,
				unread = excluded.unread,
				preview = excluded.preview,
				rush_score = excluded.rush_score,
				rich_score = excluded.rich_score,
				user_message_count = excluded.user_message_count,
				rich_action_count = excluded.rich_action_count,
				last_activity = excluded.last_activity`,
			thread.MentorID, thread.Pinned, thread.Unread, thread.Preview,
			thread.RushScore, thread.RichScore,
			thread.UserMessageCount, thread.RichActionCount,
			thread.LastActivity, thread.CreatedAt,
		)
		return err
	})
}

// GetThread retrieves the thread for a mentor
func (d *DB) GetThread(mentorID string) (*models.Thread, error) {
	return WithLockResult(d, func() (*models.Thread, error) {
		row := d.db.QueryRow(
			`SELECT mentor_id, pinned, unread, preview, rush_score, rich_score,
				user_message_count, rich_action_count, last_activity, created_at
			 FROM threads WHERE mentor_id = ?`,
			mentorID,
		)

		var thread models.Thread
		err := row.Scan(&thread.MentorID, &thread.Pinned, &thread.Unread, &thread.Preview,
			&thread.RushScore, &thread.RichScore,
			&thread.UserMessageCount, &thread.RichActionCount,
			&thread.LastActivity, &thread.CreatedAt)
		if err != nil {
			return nil, err
		}

		return &thread, nil
	})
}

// GetAllThreads retrieves all threads, pinned first, most recent activity next
func (d *DB) GetAllThreads() ([]models.Thread, error) {
	return WithLockResult(d, func() ([]models.Thread, error) {
		rows, err := d.db.Query(
			`SELECT mentor_id, pinned, unread, preview, rush_score, rich_score,
				user_message_count, rich_action_count, last_activity, created_at
			 FROM threads ORDER BY pinned DESC, last_activity DESC`,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var threads []models.Thread
		for rows.Next() {
			var thread models.Thread
			if err := rows.Scan(&thread.MentorID, &thread.Pinned, &thread.Unread, &thread.Preview,
				&thread.RushScore, &thread.RichScore,
				&thread.UserMessageCount, &thread.RichActionCount,
				&thread.LastActivity, &thread.CreatedAt); err != nil {
				return nil, err
			}
			threads = append(threads, thread)
		}

		return threads, rows.Err()
	})
}
