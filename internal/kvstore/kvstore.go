// Package kvstore implements a durable string key-value store on SQLite.
package kvstore

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Store implements a SQLite-backed key-value store.
type Store struct {
	db *sql.DB
}

// Open a store at the given path, creating it if needed.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	// Create kv table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating kv table")
	}

	return &Store{
		db: db,
	}, nil
}

// Set a key to the given value, overwriting any previous value.
func (s *Store) Set(key, value string) error {
	// Use REPLACE INTO to handle both insert and update cases
	_, err := s.db.Exec(`
		REPLACE INTO kv (key, value)
		VALUES (?, ?)
	`, key, value)
	if err != nil {
		return errors.Wrap(err, "writing key to database")
	}
	return nil
}

// Get a key's value. The boolean reports whether the key was present.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value
		FROM kv
		WHERE key = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "querying key")
	}
	return value, true, nil
}

// Delete a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return errors.Wrap(err, "deleting key")
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
