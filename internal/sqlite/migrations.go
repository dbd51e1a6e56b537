package sqlite

func (s *Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id VARCHAR NOT NULL PRIMARY KEY,
		title VARCHAR NOT NULL,
		starts_at INTEGER NOT NULL,
		ends_at INTEGER NOT NULL,
		all_day BOOLEAN NOT NULL DEFAULT FALSE,
		location VARCHAR NOT NULL DEFAULT "",
		color BLOB NULL DEFAULT NULL,
		notes TEXT NOT NULL DEFAULT ""
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events (starts_at)`,
}
