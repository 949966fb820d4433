package db

import (
	"database/sql"

	"mentor-chat/internal/models"
)

// PutReadMarker upserts a seen flag for one day/mentor reel
func (d *DB) PutReadMarker(marker *models.ReadMarker) error {
	return d.WithLock(func() error {
		_, err := d.db.Exec(
			`INSERT INTO read_markers (day, mentor_id, seen) VALUES (?, ?, ?)
			 ON CONFLICT(day, mentor_id) DO UPDATE SET seen = excluded.seen`,
			marker.Day, marker.MentorID, marker.Seen,
		)
		return err
	})
}

// GetReadMarker reports whether the reel for a day/mentor was seen.
// Absence of a marker means unseen.
func (d *DB) GetReadMarker(day, mentorID string) (bool, error) {
	return WithLockResult(d, func() (bool, error) {
		row := d.db.QueryRow(
			`SELECT seen FROM read_markers WHERE day = ? AND mentor_id = ?`,
			day, mentorID,
		)

		var seen bool
		err := row.Scan(&seen)
		if err == sql.ErrNoRows {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return seen, nil
	})
}

// GetReadMarkersForDay retrieves all markers recorded for a calendar day
func (d *DB) GetReadMarkersForDay(day string) ([]models.ReadMarker, error) {
	return WithLockResult(d, func() ([]models.ReadMarker, error) {
		rows, err := d.db.Query(
			`SELECT day, mentor_id, seen FROM read_markers WHERE day = ? ORDER BY mentor_id`,
			day,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var markers []models.ReadMarker
		for rows.Next() {
			var marker models.ReadMarker
			if err := rows.Scan(&marker.Day, &marker.MentorID, &marker.Seen); err != nil {
				return nil, err
			}
			markers = append(markers, marker)
		}

		return markers, rows.Err()
	})
}
