package db

import (
	"database/sql"

	"mentor-chat/internal/models"
)

// PutPreference upserts a single named setting
func (d *DB) PutPreference(pref *models.Preference) error {
	return d.WithLock(func() error {
		_, err := d.db.Exec(
			`INSERT INTO preferences (name, value) VALUES (?, ?)
			 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
			pref.Name, pref.Value,
		)
		return err
	})
}

// GetPreference retrieves a setting by name
func (d *DB) GetPreference(name string) (*models.Preference, error) {
	return WithLockResult(d, func() (*models.Preference, error) {
		row := d.db.QueryRow(`SELECT name, value FROM preferences WHERE name = ?`, name)

		var pref models.Preference
		if err := row.Scan(&pref.Name, &pref.Value); err != nil {
			return nil, err
		}
		return &pref, nil
	})
}

// GetPreferenceOr retrieves a setting by name, returning a default when the
// setting has not been written yet.
func (d *DB) GetPreferenceOr(name, fallback string) (string, error) {
	pref, err := d.GetPreference(name)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return pref.Value, nil
}

// GetAllPreferences retrieves every stored setting
func (d *DB) GetAllPreferences() ([]models.Preference, error) {
	return WithLockResult(d, func() ([]models.Preference, error) {
		rows, err := d.db.Query(`SELECT name, value FROM preferences ORDER BY name`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var prefs []models.Preference
		for rows.Next() {
			var pref models.Preference
			if err := rows.Scan(&pref.Name, &pref.Value); err != nil {
				return nil, err
			}
			prefs = append(prefs, pref)
		}

		return prefs, rows.Err()
	})
}
