package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aiscribe/aiscribe/internal/session"
	"github.com/google/uuid"
)

// Entry is a persisted, completed session.
type Entry struct {
	ID         string
	Transcript string
	Summary    session.Summary
	CreatedAt  time.Time
}

// ErrIncompleteEntry means an entry was missing its transcript or summary.
// History only ever records sessions that finished both stages.
var ErrIncompleteEntry = errors.New("history entry requires a transcript and a summary")

// NewEntry builds a history entry for a completed session.
func NewEntry(transcript string, summary session.Summary) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Transcript: transcript,
		Summary:    summary,
		CreatedAt:  time.Now(),
	}
}

// AppendHistory persists a completed session. Entries without transcript
// text or a summary title are rejected.
func (s *Store) AppendHistory(e Entry) error {
	if strings.TrimSpace(e.Transcript) == "" || strings.TrimSpace(e.Summary.Title) == "" {
		return ErrIncompleteEntry
	}

	points, err := json.Marshal(e.Summary.KeyPoints)
	if err != nil {
		return fmt.Errorf("marshal key points: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO history (id, transcript, title, narrative, keyPoints, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Transcript, e.Summary.Title, e.Summary.Narrative, string(points), unixFromTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// History returns all entries, newest first.
func (s *Store) History() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, transcript, title, narrative, keyPoints, createdAt
		FROM history
		ORDER BY createdAt DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var points string
		var createdAt float64
		if err := rows.Scan(&e.ID, &e.Transcript, &e.Summary.Title, &e.Summary.Narrative,
			&points, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if err := json.Unmarshal([]byte(points), &e.Summary.KeyPoints); err != nil {
			return nil, fmt.Errorf("unmarshal key points: %w", err)
		}
		e.CreatedAt = timeFromUnix(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RemoveHistory deletes one entry by id. Deleting an absent id is not an
// error.
func (s *Store) RemoveHistory(id string) error {
	if _, err := s.db.Exec(`DELETE FROM history WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	return nil
}

// ClearHistory deletes all entries. Safe on an empty history.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
