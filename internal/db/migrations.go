package db

// Migrate runs all database migrations
func (d *DB) Migrate() error {
	return d.WithLock(func() error {
		// Create mentors table
		_, err := d.db.Exec(`
			CREATE TABLE IF NOT EXISTS mentors (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				role TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT '',
				accent TEXT NOT NULL DEFAULT '',
				philosophy TEXT NOT NULL DEFAULT '',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}

		// Create threads table, one row per mentor
		_, err = d.db.Exec(`
			CREATE TABLE IF NOT EXISTS threads (
				mentor_id TEXT PRIMARY KEY,
				pinned INTEGER NOT NULL DEFAULT 0,
				unread INTEGER NOT NULL DEFAULT 0,
				preview TEXT NOT NULL DEFAULT '',
				rush_score INTEGER NOT NULL DEFAULT 70,
				rich_score INTEGER NOT NULL DEFAULT 30,
				user_message_count INTEGER NOT NULL DEFAULT 0,
				rich_action_count INTEGER NOT NULL DEFAULT 0,
				last_activity DATETIME NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (mentor_id) REFERENCES mentors(id) ON DELETE CASCADE
			)
		`)
		if err != nil {
			return err
		}

		// Create messages table
		_, err = d.db.Exec(`
			CREATE TABLE IF NOT EXISTS messages (
				id TEXT PRIMARY KEY,
				mentor_id TEXT NOT NULL,
				direction TEXT NOT NULL CHECK(direction IN ('in', 'out')),
				text TEXT NOT NULL,
				tag TEXT NOT NULL DEFAULT '',
				actions TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL,
				FOREIGN KEY (mentor_id) REFERENCES threads(mentor_id) ON DELETE CASCADE
			)
		`)
		if err != nil {
			return err
		}

		// Create preferences table
		_, err = d.db.Exec(`
			CREATE TABLE IF NOT EXISTS preferences (
				name TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)
		`)
		if err != nil {
			return err
		}

		// Create read_markers table
		_, err = d.db.Exec(`
			CREATE TABLE IF NOT EXISTS read_markers (
				day TEXT NOT NULL,
				mentor_id TEXT NOT NULL,
				seen INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (day, mentor_id)
			)
		`)
		if err != nil {
			return err
		}

		// Create indexes for better query performance
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_messages_mentor ON messages(mentor_id)",
			"CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(mentor_id, created_at)",
			"CREATE INDEX IF NOT EXISTS idx_read_markers_day ON read_markers(day)",
		}

		for _, idx := range indexes {
			if _, err := d.db.Exec(idx); err != nil {
				return err
			}
		}

		return nil
	})
}
