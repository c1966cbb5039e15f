package backend

// migration is a single versioned schema change.
type migration struct {
	version int
	sql     string
}

// migrations are applied in order; each runs at most once, tracked by the
// schema_version table.
var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS users (
				id            TEXT PRIMARY KEY,
				username      TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				salt          TEXT NOT NULL,
				created_at    TIMESTAMP NOT NULL
			);

			CREATE TABLE IF NOT EXISTS todo_documents (
				user_id    TEXT PRIMARY KEY
					REFERENCES users(id) ON DELETE CASCADE,
				doc        TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);

			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
}
