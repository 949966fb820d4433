package db

import (
	"time"

	"mentor-chat/internal/models"
)

// PutMentor upserts a mentor record keyed by its identifier
func (d *DB) PutMentor(mentor *models.Mentor) error {
	return d.WithLock(func() error {
		if mentor.CreatedAt.IsZero() {
			mentor.CreatedAt = time.Now()
		}
		_, err := d.db.Exec(
			`INSERT INTO mentors (id, name, role, status, accent, philosophy, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				role = excluded.role,
				status = excluded.status,
				accent = excluded.accent,
				philosophy = excluded.philosophy`,
			mentor.ID, mentor.Name, mentor.Role, mentor.Status, mentor.Accent, mentor.Philosophy, mentor.CreatedAt,
		)
		return err
	})
}

// GetMentor retrieves a mentor by ID
func (d *DB) GetMentor(id string) (*models.Mentor, error) {
	return WithLockResult(d, func() (*models.Mentor, error) {
		row := d.db.QueryRow(
			`SELECT id, name, role, status, accent, philosophy, created_at FROM mentors WHERE id = ?`,
			id,
		)

		var mentor models.Mentor
		err := row.Scan(&mentor.ID, &mentor.Name, &mentor.Role, &mentor.Status, &mentor.Accent, &mentor.Philosophy, &mentor.CreatedAt)
		if err != nil {
			return nil, err
		}

		return &mentor, nil
	})
}

// GetAllMentors retrieves all mentors in seed order
func (d *DB) GetAllMentors() ([]models.Mentor, error) {
	return WithLockResult(d, func() ([]models.Mentor, error) {
		rows, err := d.db.Query(
			`SELECT id, name, role, status, accent, philosophy, created_at FROM mentors ORDER BY created_at, id`,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var mentors []models.Mentor
		for rows.Next() {
			var mentor models.Mentor
			if err := rows.Scan(&mentor.ID, &mentor.Name, &mentor.Role, &mentor.Status, &mentor.Accent, &mentor.Philosophy, &mentor.CreatedAt); err != nil {
				return nil, err
			}
			mentors = append(mentors, mentor)
		}

		return mentors, rows.Err()
	})
}

// CountMentors returns the number of seeded mentors. The seed initializer
// uses this to decide whether this is a first run.
func (d *DB) CountMentors() (int, error) {
	return WithLockResult(d, func() (int, error) {
		var count int
		err := d.db.QueryRow(`SELECT COUNT(*) FROM mentors`).Scan(&count)
		return count, err
	})
}
