package service

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/jdginn/go-mirror-room/room"
)

//go:embed schema.sql
var schema string

// ErrRoomNotFound is returned for session ids that are neither open nor
// stored.
var ErrRoomNotFound = errors.New("room not found")

// Store persists room documents in sqlite, keyed by session id.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the sqlite database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Init creates the schema.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the document stored under id.
func (s *Store) Save(ctx context.Context, id string, doc room.RoomJSON) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO rooms (id, doc) VALUES (?, ?)
        ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP
    `, id, string(data))
	if err != nil {
		return fmt.Errorf("save room %s: %w", id, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (room.RoomJSON, error) {
	var data string
	row := s.db.QueryRowContext(ctx, `SELECT doc FROM rooms WHERE id = ?`, id)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return room.RoomJSON{}, ErrRoomNotFound
		}
		return room.RoomJSON{}, err
	}

	var doc room.RoomJSON
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return room.RoomJSON{}, fmt.Errorf("decode room %s: %w", id, err)
	}
	return doc, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// List returns the stored ids, most recently updated first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM rooms ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
