// Package store keeps the composer's client-local state: saved draft
// snapshots and the last language the user posted in.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

const lastLanguageKey = "last_used_language"

// ErrDraftNotFound is returned when loading a draft id that does not exist.
var ErrDraftNotFound = errors.New("draft not found")

type Store struct {
	db *sqlx.DB
}

// New opens (or creates) the composer database under dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbName := path.Join(dataDir, "composer.db")

	isCreating := false
	if _, err := os.Stat(dbName); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			isCreating = true
		}
	}

	db, err := sqlx.Connect("sqlite3", "file:"+dbName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db}
	if isCreating {
		if err := s.createTables(); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}
	return s, nil
}

// NewInMemory opens a throwaway database, used by tests.
func NewInMemory() (*Store, error) {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`create table drafts(
		ID        text not null primary key,
		Payload   text not null,
		UpdatedAt datetime not null
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`create table settings(
		Key   text not null primary key,
		Value text not null
	)`)
	return err
}

// DraftRecord is a stored snapshot plus its bookkeeping.
type DraftRecord struct {
	ID        string
	UpdatedAt time.Time
	Snapshot  domain.DraftSnapshot
}

func (s *Store) SaveDraft(id string, snap domain.DraftSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	_, err = s.db.Exec(
		`insert into drafts(ID, Payload, UpdatedAt) values(?, ?, ?)
		 on conflict(ID) do update set Payload = excluded.Payload, UpdatedAt = excluded.UpdatedAt`,
		id, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

func (s *Store) LoadDraft(id string) (*domain.DraftSnapshot, error) {
	var payload string
	err := s.db.Get(&payload, `select Payload from drafts where ID = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	var snap domain.DraftSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return &snap, nil
}

func (s *Store) DeleteDraft(id string) error {
	if _, err := s.db.Exec(`delete from drafts where ID = ?`, id); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

func (s *Store) ListDrafts() ([]DraftRecord, error) {
	rows, err := s.db.Queryx(`select ID, Payload, UpdatedAt from drafts order by UpdatedAt desc`)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var records []DraftRecord
	for rows.Next() {
		var id, payload string
		var updatedAt time.Time
		if err := rows.Scan(&id, &payload, &updatedAt); err != nil {
			return nil, fmt.Errorf("listing drafts: %w", err)
		}
		var snap domain.DraftSnapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, fmt.Errorf("decoding draft %s: %w", id, err)
		}
		records = append(records, DraftRecord{ID: id, UpdatedAt: updatedAt, Snapshot: snap})
	}
	return records, rows.Err()
}

// LastUsedLanguage returns the remembered language, or empty when none was
// saved yet.
func (s *Store) LastUsedLanguage() (string, error) {
	var code string
	err := s.db.Get(&code, `select Value from settings where Key = ?`, lastLanguageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading language: %w", err)
	}
	return code, nil
}

func (s *Store) SaveLastUsedLanguage(code string) error {
	_, err := s.db.Exec(
		`insert into settings(Key, Value) values(?, ?)
		 on conflict(Key) do update set Value = excluded.Value`,
		lastLanguageKey, code)
	if err != nil {
		return fmt.Errorf("saving language: %w", err)
	}
	return nil
}
