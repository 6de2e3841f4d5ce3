// Package store persists deck generation state in SQLite. Workflow state
// remains authoritative while a generation runs; the store is the durable
// record used for listing and for serving state after workflows complete.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/presenton/presenton-go/internal/domain"
)

// ErrNotFound is returned when no record exists for a workflow id.
var ErrNotFound = errors.New("store: deck not found")

// DeckRecord is a row in the decks table: searchable columns plus the full
// state as a JSON blob.
type DeckRecord struct {
	WorkflowID string           `json:"workflow_id"`
	TenantID   string           `json:"tenant_id"`
	Topic      string           `json:"topic"`
	Phase      string           `json:"phase"`
	Review     string           `json:"review"`
	UpdatedAt  time.Time        `json:"updated_at"`
	State      domain.DeckState `json:"state"`
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path. Use ":memory:"
// for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: set busy_timeout: %w", err)
	}
	schema := `CREATE TABLE IF NOT EXISTS decks(
		workflow_id TEXT PRIMARY KEY,
		tenant_id   TEXT NOT NULL,
		topic       TEXT NOT NULL,
		phase       TEXT NOT NULL,
		review      TEXT NOT NULL,
		updated_at  INTEGER NOT NULL,
		state       BLOB NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save upserts the full deck state keyed by workflow id.
func (s *Store) Save(ctx context.Context, state domain.DeckState) error {
	if state.WorkflowID == "" {
		return fmt.Errorf("store: save: workflow_id is required")
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("store: marshal state: %w", err)
	}
	topic := ""
	if state.Request != nil {
		topic = state.Request.Topic
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO decks
		(workflow_id, tenant_id, topic, phase, review, updated_at, state)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(workflow_id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			topic = excluded.topic,
			phase = excluded.phase,
			review = excluded.review,
			updated_at = excluded.updated_at,
			state = excluded.state`,
		state.WorkflowID, state.Tenant.TenantID, topic, state.CurrentPhase,
		string(state.Review), time.Now().UTC().Unix(), blob,
	)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", state.WorkflowID, err)
	}
	return nil
}

// Get returns the record for a workflow id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, workflowID string) (DeckRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT workflow_id, tenant_id, topic, phase, review, updated_at, state
		 FROM decks WHERE workflow_id = ?`, workflowID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return DeckRecord{}, ErrNotFound
	}
	return rec, err
}

// List returns records for a tenant, newest first. A zero limit means all.
// An empty tenantID lists across tenants.
func (s *Store) List(ctx context.Context, tenantID string, limit int) ([]DeckRecord, error) {
	query := `SELECT workflow_id, tenant_id, topic, phase, review, updated_at, state
		FROM decks`
	args := []any{}
	if tenantID != "" {
		query += ` WHERE tenant_id = ?`
		args = append(args, tenantID)
	}
	query += ` ORDER BY updated_at DESC, workflow_id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []DeckRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (DeckRecord, error) {
	var (
		rec     DeckRecord
		updated int64
		blob    []byte
	)
	err := row.Scan(&rec.WorkflowID, &rec.TenantID, &rec.Topic, &rec.Phase,
		&rec.Review, &updated, &blob)
	if err != nil {
		return DeckRecord{}, err
	}
	rec.UpdatedAt = time.Unix(updated, 0).UTC()
	if err := json.Unmarshal(blob, &rec.State); err != nil {
		return DeckRecord{}, fmt.Errorf("store: unmarshal state for %s: %w", rec.WorkflowID, err)
	}
	return rec, nil
}
