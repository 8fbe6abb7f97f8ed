package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite-backed persistence for finished sessions.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases shared across queries.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		goal TEXT NOT NULL,
		outcome TEXT NOT NULL,
		strategy TEXT NOT NULL DEFAULT '',
		reasoning TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS answers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		step TEXT NOT NULL,
		value TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Record stores a finished session. An empty ID is replaced with a new UUID
// and a zero CreatedAt with the current time; both are written back to sess.
func (s *Store) Record(sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	reasoning := sess.Reasoning
	if reasoning == nil {
		reasoning = []string{}
	}
	reasoningJSON, err := json.Marshal(reasoning)
	if err != nil {
		return fmt.Errorf("marshal reasoning: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, goal, outcome, strategy, reasoning, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Goal, sess.Outcome, sess.Strategy, string(reasoningJSON), sess.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, a := range sess.Answers {
		_, err = tx.Exec(
			`INSERT INTO answers (session_id, position, step, value) VALUES (?, ?, ?, ?)`,
			sess.ID, i, a.Step, a.Value,
		)
		if err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID. It returns nil, nil when no session
// has that ID.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, goal, outcome, strategy, reasoning, created_at
		 FROM sessions WHERE id = ?`,
		id,
	)

	var sess Session
	var reasoningJSON string
	err := row.Scan(&sess.ID, &sess.Goal, &sess.Outcome, &sess.Strategy, &reasoningJSON, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if err := json.Unmarshal([]byte(reasoningJSON), &sess.Reasoning); err != nil {
		return nil, fmt.Errorf("parse reasoning: %w", err)
	}

	answers, err := s.getAnswers(id)
	if err != nil {
		return nil, err
	}
	sess.Answers = answers

	return &sess, nil
}

func (s *Store) getAnswers(sessionID string) ([]Answer, error) {
	rows, err := s.db.Query(
		`SELECT step, value FROM answers WHERE session_id = ? ORDER BY position ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.Step, &a.Value); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return answers, nil
}

// ListSessions returns summaries of the most recent sessions, newest first.
func (s *Store) ListSessions(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.goal, s.outcome, s.strategy, s.created_at,
		        COALESCE(COUNT(a.id), 0) as answers
		 FROM sessions s
		 LEFT JOIN answers a ON s.id = a.session_id
		 GROUP BY s.id
		 ORDER BY s.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Goal, &sum.Outcome, &sum.Strategy, &sum.CreatedAt, &sum.Answers); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}
