package characters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
	"github.com/KirkDiggler/essence-sheet/internal/repositories/characters/migrations"
)

const (
	migrationTable = "schema_migrations"
	timeFormat     = time.RFC3339Nano
)

// SQLiteRepository keeps characters in a single local database file.
// Rows are read back in first-insert order; upserts keep their position.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// any pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, sheeterr.InvalidArgument("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, sheeterr.Unavailable(err, "open sqlite db")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, sheeterr.Unavailable(err, "ping sqlite db")
	}

	// A single connection serialises writers and keeps WAL readers consistent.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, sheeterr.Unavailable(err, "run migrations")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database
func (s *SQLiteRepository) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// GetAll returns every character in insertion order
func (s *SQLiteRepository) GetAll(ctx context.Context) ([]*character.Character, error) {
	return s.query(ctx, "SELECT id, payload FROM characters ORDER BY seq")
}

// FindByName returns characters whose name matches, ignoring case
func (s *SQLiteRepository) FindByName(ctx context.Context, name string) ([]*character.Character, error) {
	return s.query(ctx, "SELECT id, payload FROM characters WHERE name = ? COLLATE NOCASE ORDER BY seq", strings.TrimSpace(name))
}

func (s *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*character.Character, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sheeterr.Unavailable(err, "query characters")
	}
	defer rows.Close()

	var result []*character.Character
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, sheeterr.Unavailable(err, "scan character row")
		}

		var char character.Character
		if err := json.Unmarshal([]byte(payload), &char); err != nil {
			return nil, sheeterr.WrapWithCode(err, sheeterr.CodeDataCorruption, "failed to unmarshal character").
				WithMeta("character_id", id)
		}
		result = append(result, char.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, sheeterr.Unavailable(err, "iterate character rows")
	}
	if result == nil {
		result = []*character.Character{}
	}
	return result, nil
}

// Put upserts a character
func (s *SQLiteRepository) Put(ctx context.Context, char *character.Character) error {
	if char == nil {
		return sheeterr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return sheeterr.InvalidArgument("character ID is required")
	}

	payload, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO characters (id, name, payload, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    payload = excluded.payload,
    updated_at = excluded.updated_at`,
		char.ID,
		char.Name,
		string(payload),
		char.CreatedAt.UTC().Format(timeFormat),
		char.UpdatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return sheeterr.Unavailable(err, "failed to put character").WithMeta("character_id", char.ID)
	}
	return nil
}

// Delete removes a character; unknown ids are a no-op
func (s *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return sheeterr.InvalidArgument("character ID is required")
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM characters WHERE id = ?", id); err != nil {
		return sheeterr.Unavailable(err, "failed to delete character").WithMeta("character_id", id)
	}
	return nil
}

// GetCurrentID returns the persisted selection, "" when none
func (s *SQLiteRepository) GetCurrentID(ctx context.Context) (string, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", CurrentCharacterKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", sheeterr.Unavailable(err, "failed to get current character id")
	}
	return value.String, nil
}

// SetCurrentID persists the selection; "" clears it
func (s *SQLiteRepository) SetCurrentID(ctx context.Context, id string) error {
	var err error
	if id == "" {
		_, err = s.db.ExecContext(ctx, "DELETE FROM metadata WHERE key = ?", CurrentCharacterKey)
	} else {
		_, err = s.db.ExecContext(ctx, `
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, CurrentCharacterKey, id)
	}
	if err != nil {
		return sheeterr.Unavailable(err, "failed to set current character id").WithMeta("character_id", id)
	}
	return nil
}

// applyMigrations runs each embedded *.sql file at most once, in name order
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`, migrationTable)); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var found int
		err := db.QueryRow("SELECT 1 FROM "+migrationTable+" WHERE name = ?", file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upMigration(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
			file,
			time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// upMigration returns the section between the Up and Down markers
func upMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	start := strings.Index(content, up)
	if start == -1 {
		return content
	}
	body := content[start+len(up):]
	if end := strings.Index(body, down); end != -1 {
		body = body[:end]
	}
	return body
}
