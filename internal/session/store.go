package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/db"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
)

// Store manages persistence of sessions, deck revisions, and messages.
type Store struct {
	db *db.DB
}

// NewStore creates a new session store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateSession creates a new presentation session.
func (s *Store) CreateSession(ctx context.Context, title, provider, model string) (*Session, error) {
	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.New().String(),
		Title:     title,
		Provider:  provider,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, title, provider, model, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Title, sess.Provider, sess.Model, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &sess, nil
}

// GetSession retrieves a session by ID. Returns nil when it does not exist.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, provider, model, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Title, &sess.Provider, &sess.Model, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &sess, nil
}

// ListSessions returns all sessions, most recently updated first.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, provider, model, created_at, updated_at FROM sessions ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.Provider, &sess.Model, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SetTitle updates a session's title.
func (s *Store) SetTitle(ctx context.Context, id, title string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating session title: %w", err)
	}
	return nil
}

// DeleteSession removes a session and, via cascade, its revisions and messages.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// SaveDeck appends a new deck revision for the session. The deck is stored
// in its structured form, never as a knitted document.
func (s *Store) SaveDeck(ctx context.Context, sessionID string, d *deck.SlideDeck, operation string) (*Revision, error) {
	raw, err := json.Marshal(d.ToSerializable())
	if err != nil {
		return nil, fmt.Errorf("marshalling deck: %w", err)
	}

	var latest sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT MAX(revision) FROM deck_revisions WHERE session_id = ?`, sessionID,
	).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("reading latest revision: %w", err)
	}

	now := time.Now().UTC()
	rev := Revision{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Revision:   int(latest.Int64) + 1,
		DeckJSON:   string(raw),
		SlideCount: len(d.Slides),
		Operation:  operation,
		CreatedAt:  now,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO deck_revisions (id, session_id, revision, deck_json, slide_count, operation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rev.ID, rev.SessionID, rev.Revision, rev.DeckJSON, rev.SlideCount, rev.Operation, rev.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting deck revision: %w", err)
	}

	s.db.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sessionID)

	return &rev, nil
}

// CurrentDeck loads and reconstructs the latest deck revision for the
// session. Returns (nil, 0, nil) when the session has no deck yet.
func (s *Store) CurrentDeck(ctx context.Context, sessionID string) (*deck.SlideDeck, int, error) {
	var raw string
	var revision int
	err := s.db.QueryRowContext(ctx,
		`SELECT deck_json, revision FROM deck_revisions WHERE session_id = ? ORDER BY revision DESC LIMIT 1`,
		sessionID,
	).Scan(&raw, &revision)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading deck revision: %w", err)
	}

	var ser deck.Serializable
	if err := json.Unmarshal([]byte(raw), &ser); err != nil {
		return nil, 0, fmt.Errorf("unmarshalling deck revision %d: %w", revision, err)
	}
	d, err := deck.FromSerializable(&ser)
	if err != nil {
		return nil, 0, fmt.Errorf("restoring deck revision %d: %w", revision, err)
	}
	return d, revision, nil
}

// GetRevision loads one specific deck revision.
func (s *Store) GetRevision(ctx context.Context, sessionID string, revision int) (*deck.SlideDeck, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT deck_json FROM deck_revisions WHERE session_id = ? AND revision = ?`,
		sessionID, revision,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading deck revision: %w", err)
	}

	var ser deck.Serializable
	if err := json.Unmarshal([]byte(raw), &ser); err != nil {
		return nil, fmt.Errorf("unmarshalling deck revision %d: %w", revision, err)
	}
	return deck.FromSerializable(&ser)
}

// ListRevisions returns revision metadata for a session, oldest first. The
// deck JSON itself is not loaded.
func (s *Store) ListRevisions(ctx context.Context, sessionID string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, revision, slide_count, operation, created_at
		 FROM deck_revisions WHERE session_id = ? ORDER BY revision ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.SessionID, &rev.Revision, &rev.SlideCount, &rev.Operation, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// AddMessage appends a message to a session transcript.
func (s *Store) AddMessage(ctx context.Context, msg Message) (*Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, role, content, input_tokens, output_tokens, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Role, msg.Content, msg.InputTokens, msg.OutputTokens, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adding message: %w", err)
	}

	s.db.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, msg.CreatedAt, msg.SessionID)

	return &msg, nil
}

// GetMessages returns all messages for a session, ordered by creation time.
func (s *Store) GetMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, input_tokens, output_tokens, created_at
		 FROM messages WHERE session_id = ? ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.InputTokens, &m.OutputTokens, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountSessions returns the total number of sessions.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}
