package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/wealthmate/captionrag/internal/domain"
)

// TranscriptEntry is one recorded message in the audit transcript.
type TranscriptEntry struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"` // human, assistant
	Content   string            `json:"content"`
	Refused   bool              `json:"refused"`
	Sources   []domain.Citation `json:"sources,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TranscriptRepository persists the audit transcript.
type TranscriptRepository struct {
	db *DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Record appends a transcript entry.
func (r *TranscriptRepository) Record(entry *TranscriptEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()

	sourcesJSON, _ := json.Marshal(entry.Sources)

	_, err := r.db.Exec(`
		INSERT INTO transcripts (id, role, content, refused, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Role, entry.Content, entry.Refused,
		string(sourcesJSON), entry.CreatedAt)

	return err
}

// Recent returns the newest entries in chronological order.
func (r *TranscriptRepository) Recent(limit int) ([]*TranscriptEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, role, content, refused, sources, created_at FROM (
			SELECT id, role, content, refused, sources, created_at
			FROM transcripts ORDER BY created_at DESC LIMIT ?
		) ORDER BY created_at ASC
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*TranscriptEntry
	for rows.Next() {
		entry := &TranscriptEntry{}
		var sourcesJSON sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Role, &entry.Content,
			&entry.Refused, &sourcesJSON, &entry.CreatedAt); err != nil {
			return nil, err
		}

		if sourcesJSON.Valid && sourcesJSON.String != "" {
			json.Unmarshal([]byte(sourcesJSON.String), &entry.Sources)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// CountQuestions returns the total number of human messages recorded.
func (r *TranscriptRepository) CountQuestions() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM transcripts WHERE role = ?`, domain.RoleHuman).Scan(&count)
	return count, err
}
