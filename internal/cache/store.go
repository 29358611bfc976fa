// Package cache persists parsed mod files, READMEs, and directory
// listings between runs, keyed by repository-relative path. Entries
// carry the source file's mtime so a run can skip re-parsing anything
// untouched since the previous pass.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Version is the highest cache schema generation this build understands.
const Version = 1

// Kind separates the cached record families sharing one database.
type Kind string

const (
	KindMod    Kind = "mod"
	KindReadme Kind = "readme"
	KindInfo   Kind = "info"
	KindAuthor Kind = "author"
)

// Store manages cache persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database and applies
// migrations. A database written by a newer build is refused rather
// than misread.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.checkVersion(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the cache database location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) checkVersion(ctx context.Context) error {
	var version int
	row := s.db.QueryRowContext(ctx, `SELECT version FROM cache_meta LIMIT 1`)
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_, err = s.db.ExecContext(ctx, `INSERT INTO cache_meta (version) VALUES (?)`, Version)
			if err != nil {
				return fmt.Errorf("record cache version: %w", err)
			}
			return nil
		}
		return fmt.Errorf("read cache version: %w", err)
	}
	if version > Version {
		return fmt.Errorf("%s is a version %d cache, only supported up to version %d",
			s.path, version, Version)
	}
	return nil
}

// Get unmarshals the entry for relPath into v. The returned mtime is
// the source file's modification time recorded at save.
func (s *Store) Get(ctx context.Context, kind Kind, relPath string, v any) (mtime int64, ok bool, err error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT mtime, data FROM cache_entries WHERE kind = ? AND rel_path = ?`,
		string(kind), relPath,
	)
	var data []byte
	if err := row.Scan(&mtime, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get cache entry: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return 0, false, fmt.Errorf("unmarshal cache entry %s/%s: %w", kind, relPath, err)
	}
	return mtime, true, nil
}

// Put marshals v and stores it under relPath, replacing any previous
// entry of the same kind.
func (s *Store) Put(ctx context.Context, kind Kind, relPath string, mtime int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache entry %s/%s: %w", kind, relPath, err)
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO cache_entries (kind, rel_path, mtime, data)
         VALUES (?, ?, ?, ?)
         ON CONFLICT (kind, rel_path) DO UPDATE SET mtime = excluded.mtime, data = excluded.data`,
		string(kind), relPath, mtime, data,
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for relPath. Deleting an absent entry is
// not an error.
func (s *Store) Delete(ctx context.Context, kind Kind, relPath string) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM cache_entries WHERE kind = ? AND rel_path = ?`,
		string(kind), relPath,
	)
	if err != nil {
		return false, fmt.Errorf("delete cache entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// RelPaths returns every stored path of the given kind.
func (s *Store) RelPaths(ctx context.Context, kind Kind) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT rel_path FROM cache_entries WHERE kind = ? ORDER BY rel_path`,
		string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// PruneExcept removes all entries of a kind whose path is not in keep,
// returning the number removed. Used after a walk to drop records for
// files deleted from the repository.
func (s *Store) PruneExcept(ctx context.Context, kind Kind, keep map[string]bool) (int64, error) {
	paths, err := s.RelPaths(ctx, kind)
	if err != nil {
		return 0, err
	}
	var removed int64
	for _, path := range paths {
		if keep[path] {
			continue
		}
		ok, err := s.Delete(ctx, kind, path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// Stats returns a count of entries grouped by kind.
func (s *Store) Stats(ctx context.Context) (map[Kind]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(1) FROM cache_entries GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("cache stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats[Kind(kind)] = count
	}
	return stats, rows.Err()
}
