package db

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"mentor-chat/internal/models"
)

// encodeActions serializes quick actions for storage. An empty list is
// stored as the empty string so the column stays readable.
func encodeActions(actions []models.QuickAction) (string, error) {
	if len(actions) == 0 {
		return "", nil
	}
	data, err := json.Marshal(actions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *DB) decodeActions(raw string) []models.QuickAction {
	if raw == "" {
		return nil
	}
	var actions []models.QuickAction
	if err := json.Unmarshal([]byte(raw), &actions); err != nil {
		// A corrupt actions blob only loses the quick replies, not the message
		d.logger.Warn("failed to decode message actions", zap.Error(err))
		return nil
	}
	return actions
}

// PutMessage upserts a message keyed by its ID
func (d *DB) PutMessage(msg *models.Message) error {
	return d.WithLock(func() error {
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = time.Now()
		}
		actions, err := encodeActions(msg.Actions)
		if err != nil {
			return err
		}
		_, err = d.db.Exec(
			`INSERT INTO messages (id, mentor_id, direction, text, tag, actions, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				text = excluded.text,
				tag = excluded.tag,
				actions = excluded.actions`,
			msg.ID, msg.MentorID, string(msg.Direction), msg.Text, msg.Tag, actions, msg.CreatedAt,
		)
		return err
	})
}

// GetMessage retrieves a message by ID
func (d *DB) GetMessage(id string) (*models.Message, error) {
	return WithLockResult(d, func() (*models.Message, error) {
		row := d.db.QueryRow(
			`SELECT id, mentor_id, direction, text, tag, actions, created_at FROM messages WHERE id = ?`,
			id,
		)
		return d.scanMessageRow(row.Scan)
	})
}

// GetMessages retrieves all messages for a thread, ordered by timestamp ascending
func (d *DB) GetMessages(mentorID string) ([]models.Message, error) {
	return WithLockResult(d, func() ([]models.Message, error) {
		rows, err := d.db.Query(
			`SELECT id, mentor_id, direction, text, tag, actions, created_at
			 FROM messages WHERE mentor_id = ? ORDER BY created_at ASC, id ASC`,
			mentorID,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var messages []models.Message
		for rows.Next() {
			msg, err := d.scanMessageRow(rows.Scan)
			if err != nil {
				return nil, err
			}
			messages = append(messages, *msg)
		}

		return messages, rows.Err()
	})
}

func (d *DB) scanMessageRow(scan func(dest ...any) error) (*models.Message, error) {
	var msg models.Message
	var direction, actions string
	if err := scan(&msg.ID, &msg.MentorID, &direction, &msg.Text, &msg.Tag, &actions, &msg.CreatedAt); err != nil {
		return nil, err
	}
	msg.Direction = models.Direction(direction)
	msg.Actions = d.decodeActions(actions)
	return &msg, nil
}
