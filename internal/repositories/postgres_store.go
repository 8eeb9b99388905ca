package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLExecutor is satisfied by *sql.DB and *sql.Tx, so the same store code
// runs inside or outside a transaction.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// postgresStore keeps every collection as a jsonb row of the collections table.
type postgresStore struct {
	db     *sql.DB
	exec   SQLExecutor
	inTx   bool
	locked map[string]bool
}

// NewPostgresStore creates a CollectionStore backed by db.
func NewPostgresStore(db *sql.DB) CollectionStore {
	return &postgresStore{db: db, exec: db}
}

// lockKey serialises writers of a collection for the rest of the transaction.
// Row locks are not enough because the row may not exist yet.
func (s *postgresStore) lockKey(key string) error {
	if !s.inTx || s.locked[key] {
		return nil
	}
	if _, err := s.exec.Exec(`SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("%w: locking collection %s: %v", ErrDatabaseError, key, err)
	}
	s.locked[key] = true
	return nil
}

func (s *postgresStore) Read(key string, dest interface{}) (bool, error) {
	if err := s.lockKey(key); err != nil {
		return false, err
	}
	var raw []byte
	err := s.exec.QueryRow(`SELECT value FROM collections WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: reading collection %s: %v", ErrDatabaseError, key, err)
	}
	return decodeCollection(key, raw, dest)
}

func (s *postgresStore) Write(key string, value interface{}) error {
	if err := s.lockKey(key); err != nil {
		return err
	}
	raw, err := encodeCollection(key, value)
	if err != nil {
		return err
	}
	query := `INSERT INTO collections (key, value, updated_at)
	          VALUES ($1, $2::jsonb, $3)
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.exec.Exec(query, key, string(raw), time.Now()); err != nil {
		return fmt.Errorf("%w: writing collection %s: %v", ErrDatabaseError, key, err)
	}
	return nil
}

func (s *postgresStore) Atomically(fn func(tx CollectionStore) error) error {
	if s.inTx {
		return fn(s)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	txStore := &postgresStore{db: s.db, exec: tx, inTx: true, locked: make(map[string]bool)}
	if err := fn(txStore); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
