package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Detections table - one row per answered frame
		`CREATE TABLE IF NOT EXISTS detections (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			hands_count INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT 'http',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_detections_created_at ON detections(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
