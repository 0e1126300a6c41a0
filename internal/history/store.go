package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite"

	"creditmarker/internal/comparison"
	"creditmarker/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrAmbiguousID is returned when an ID prefix matches several results.
var ErrAmbiguousID = errors.New("history: ambiguous id prefix")

// Fixed-width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	lockRetryDelay = 50 * time.Millisecond
	lockTimeout    = 10 * time.Second
)

// Entry is the listing view of a stored result.
type Entry struct {
	ID             string    `json:"id"`
	BaseTitle      string    `json:"base_title"`
	CompTitle      string    `json:"comparison_title"`
	Seconds        int       `json:"seconds"`
	MatchedSeconds int       `json:"matched_seconds"`
	Blocks         int       `json:"blocks"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store manages comparison history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database in the configured
// state directory and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("history: config is nil")
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the history database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure state directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	lockPath := filepath.Join(filepath.Dir(dbPath), "history.lock")
	store := &Store{db: db, path: dbPath, lock: flock.New(lockPath)}
	if err := store.withWriteLock(context.Background(), store.applyMigrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores result, replacing any earlier result with the same ID.
func (s *Store) Save(ctx context.Context, result *comparison.Result) error {
	if result == nil {
		return errors.New("history: result is nil")
	}
	if strings.TrimSpace(result.ID) == "" {
		return errors.New("history: result has no id")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return s.withWriteLock(ctx, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO comparisons (
                id, base_title, base_digest, comp_title, comp_digest, params_key,
                seconds, matched_seconds, block_count, result_json, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.ID,
			result.Base.Title,
			result.Base.Digest,
			result.Comparison.Title,
			result.Comparison.Digest,
			result.ParamsKey(),
			result.Seconds(),
			result.MatchedSeconds,
			len(result.Blocks),
			string(payload),
			result.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
		return nil
	})
}

// Get returns the result whose ID equals id or uniquely starts with it.
// A missing result yields nil without error.
func (s *Store) Get(ctx context.Context, id string) (*comparison.Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT result_json FROM comparisons WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id = ? DESC LIMIT 2`,
		id, len(id), id, id)
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	defer rows.Close()

	var payloads []string
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		payloads = append(payloads, payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	switch len(payloads) {
	case 0:
		return nil, nil
	case 1:
		return decodeResult(payloads[0])
	}
	// Two rows: an exact match sorts first, otherwise the prefix is ambiguous.
	first, err := decodeResult(payloads[0])
	if err != nil {
		return nil, err
	}
	if first.ID == id {
		return first, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
}

// FindByDigests returns the newest result for the episode pair compared with
// the settings identified by paramsKey, or nil when none is stored.
func (s *Store) FindByDigests(ctx context.Context, baseDigest, compDigest, paramsKey string) (*comparison.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT result_json FROM comparisons
         WHERE base_digest = ? AND comp_digest = ? AND params_key = ?
         ORDER BY created_at DESC LIMIT 1`,
		baseDigest, compDigest, paramsKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by digests: %w", err)
	}
	return decodeResult(payload)
}

// List returns stored results, newest first. A limit <= 0 lists everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, base_title, comp_title, seconds, matched_seconds, block_count, created_at
        FROM comparisons ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.BaseTitle, &e.CompTitle, &e.Seconds, &e.MatchedSeconds, &e.Blocks, &created); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return entries, nil
}

// Delete removes the result with the exact id and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.withWriteLock(ctx, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM comparisons WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete result: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		removed = n > 0
		return nil
	})
	return removed, err
}

func (s *Store) withWriteLock(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	ok, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("acquire history lock: %s is held by another process", s.lock.Path())
	}
	defer func() {
		_ = s.lock.Unlock()
	}()
	return fn(ctx)
}

func decodeResult(payload string) (*comparison.Result, error) {
	var result comparison.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &result, nil
}
