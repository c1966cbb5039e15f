package backend

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/smartdoit/smarttodo/internal/model"
)

// SQLiteClient implements Client against a local SQLite database, playing
// the role the remote service holds in production: it owns accounts and the
// per-user todo document.
type SQLiteClient struct {
	db *sqlx.DB

	mu      sync.Mutex
	current *User
	authCh  chan *User
	closed  bool
}

// NewSQLiteClient opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Pragmas are per-connection, and an in-memory database exists per
	// connection. A single connection keeps both consistent.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	c := &SQLiteClient{
		db:     db,
		authCh: make(chan *User, 8),
	}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection and the auth stream.
func (c *SQLiteClient) Close() error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.authCh)
	}
	c.mu.Unlock()
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *SQLiteClient) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Register creates a new account. The username is stored trimmed and
// case-insensitively unique.
func (c *SQLiteClient) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return &AuthError{Message: "username and password are required"}
	}

	var count int
	err := c.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM users WHERE username = ? COLLATE NOCASE", username)
	if err != nil {
		return fmt.Errorf("checking username %q: %w", username, err)
	}
	if count > 0 {
		return &AuthError{Message: "username is already taken"}
	}

	salt, err := newSalt()
	if err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, salt, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), username, hashPassword(password, salt), salt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating user %q: %w", username, err)
	}
	return nil
}

// Login verifies credentials and, on success, emits the signed-in user on
// the auth stream.
func (c *SQLiteClient) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)

	var row struct {
		ID           string `db:"id"`
		Username     string `db:"username"`
		PasswordHash string `db:"password_hash"`
		Salt         string `db:"salt"`
	}
	err := c.db.GetContext(ctx, &row,
		"SELECT id, username, password_hash, salt FROM users WHERE username = ? COLLATE NOCASE",
		username)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, &AuthError{Message: "invalid username or password"}
	}
	if err != nil {
		return Session{}, fmt.Errorf("looking up user %q: %w", username, err)
	}

	got := hashPassword(password, row.Salt)
	if subtle.ConstantTimeCompare([]byte(got), []byte(row.PasswordHash)) != 1 {
		return Session{}, &AuthError{Message: "invalid username or password"}
	}

	user := User{ID: row.ID, Username: row.Username}
	c.setCurrent(&user)
	return Session{User: user}, nil
}

// Logout clears the current user and emits nil on the auth stream.
func (c *SQLiteClient) Logout(ctx context.Context) error {
	c.setCurrent(nil)
	return nil
}

// AuthChanges returns the sign-in/sign-out stream.
func (c *SQLiteClient) AuthChanges() <-chan *User {
	return c.authCh
}

// LoadTodos returns the user's stored collection. A user with no saved
// document gets an empty collection, not an error.
func (c *SQLiteClient) LoadTodos(ctx context.Context, userID string) ([]model.TodoItem, error) {
	var doc string
	err := c.db.GetContext(ctx, &doc,
		"SELECT doc FROM todo_documents WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.TodoItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading todos for user %s: %w", userID, err)
	}

	var items []model.TodoItem
	if err := json.Unmarshal([]byte(doc), &items); err != nil {
		return nil, fmt.Errorf("decoding todo document for user %s: %w", userID, err)
	}
	return items, nil
}

// SaveTodos replaces the user's stored collection with items.
func (c *SQLiteClient) SaveTodos(ctx context.Context, userID string, items []model.TodoItem) error {
	if items == nil {
		items = []model.TodoItem{}
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding todo document for user %s: %w", userID, err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO todo_documents (user_id, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		userID, string(doc), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving todos for user %s: %w", userID, err)
	}
	return nil
}

// Status reports a diagnostic snapshot: a ping plus the current user.
func (c *SQLiteClient) Status(ctx context.Context) ServerStatus {
	st := ServerStatus{ServerType: "sqlite"}

	if err := c.db.PingContext(ctx); err != nil {
		st.Err = err
		return st
	}
	st.Connected = true

	c.mu.Lock()
	st.CurrentUser = c.current
	c.mu.Unlock()
	return st
}

// setCurrent records the signed-in user and pushes the transition onto the
// auth stream without blocking.
func (c *SQLiteClient) setCurrent(user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = user
	if c.closed {
		return
	}
	select {
	case c.authCh <- user:
	default:
		// Drop if the listener is behind; the next transition supersedes.
	}
}

// newSalt returns a hex-encoded 16-byte random salt.
func newSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashPassword computes the stored form of a password.
func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
