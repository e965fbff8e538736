package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists values in a single kv_store table.
type SQLiteStore struct {
	db     *sql.DB
	prefix string
}

// NewSQLiteStore opens (and migrates) the database at path. ":memory:" is
// accepted for tests.
func NewSQLiteStore(path, prefix string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, wrapDriverError(ErrTypeConnection, "failed to open database", err)
	}

	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db, prefix: prefix}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	return s.withTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS kv_store (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`); err != nil {
			return wrapDriverError(ErrTypeQuery, "failed to create kv_store", err)
		}
		return nil
	})
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", s.prefix+key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapDriverError(ErrTypeQuery, "failed to read "+key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.prefix+key, value, time.Now().UTC())
	if err != nil {
		return wrapDriverError(ErrTypeQuery, "failed to write "+key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv_store WHERE key = ?", s.prefix+key); err != nil {
		return wrapDriverError(ErrTypeQuery, "failed to remove "+key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// withTransaction commits when fn succeeds and rolls back otherwise.
func (s *SQLiteStore) withTransaction(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrapDriverError(ErrTypeConnection, "failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapDriverError(ErrTypeQuery, "failed to commit transaction", err)
	}
	return nil
}
