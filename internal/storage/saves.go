package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSaveNotFound is returned when a save slot id does not exist.
var ErrSaveNotFound = errors.New("storage: save not found")

// SaveSlot is a persisted game session.
type SaveSlot struct {
	ID        string // UUID
	GameID    string
	Name      string
	Score     int
	Data      []byte // Game-specific encoding, YAML for the slice puzzle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateSave stores a new session and returns its generated id.
func (s *Store) CreateSave(gameID, name string, score int, data []byte) (string, error) {
	id := uuid.NewString()
	if name == "" {
		name = id[:8]
	}
	_, err := s.db.Exec(
		"INSERT INTO saves (id, game_id, name, score, data) VALUES (?, ?, ?, ?, ?)",
		id, gameID, name, score, data,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create save: %w", err)
	}
	return id, nil
}

// UpdateSave overwrites the data of an existing save.
func (s *Store) UpdateSave(id string, score int, data []byte) error {
	result, err := s.db.Exec(
		"UPDATE saves SET score = ?, data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		score, data, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update save %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot update save %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, id)
	}
	return nil
}

// LoadSave fetches a save by id. A unique id prefix is accepted.
func (s *Store) LoadSave(id string) (*SaveSlot, error) {
	if id == "" {
		return nil, ErrSaveNotFound
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, name, score, data, created_at, updated_at
		 FROM saves WHERE id = ? OR id LIKE ? || '%'
		 LIMIT 2`,
		id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load save: %w", err)
	}
	defer rows.Close()

	slots, err := scanSaves(rows)
	if err != nil {
		return nil, err
	}
	switch len(slots) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrSaveNotFound, id)
	case 1:
		return &slots[0], nil
	default:
		for i := range slots {
			if slots[i].ID == id {
				return &slots[i], nil
			}
		}
		return nil, fmt.Errorf("storage: save id %q is ambiguous", id)
	}
}

// ListSaves returns the saves of a game, most recently updated first.
// An empty gameID lists every game.
func (s *Store) ListSaves(gameID string) ([]SaveSlot, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, name, score, data, created_at, updated_at
		 FROM saves
		 WHERE ? = '' OR game_id = ?
		 ORDER BY updated_at DESC, name`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()
	return scanSaves(rows)
}

// DeleteSave removes a save.
func (s *Store) DeleteSave(id string) error {
	result, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save %s: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, id)
	}
	return nil
}

func scanSaves(rows *sql.Rows) ([]SaveSlot, error) {
	var slots []SaveSlot
	for rows.Next() {
		var slot SaveSlot
		var createdAt, updatedAt any
		if err := rows.Scan(&slot.ID, &slot.GameID, &slot.Name, &slot.Score, &slot.Data, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan save: %w", err)
		}
		slot.CreatedAt = parseTime(createdAt)
		slot.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}
