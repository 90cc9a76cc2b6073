package store

import (
	"database/sql"
	"fmt"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanKanbanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	err := scanner.Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const listCols = `id, board_id, title, position, created_at, updated_at`

func (s *ListStore) Create(boardID int64, title string) (*model.List, error) {
	pos, err := nextPosition(s.db, "lists", "board_id = ?", boardID)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO lists (board_id, title, position) VALUES (?, ?, ?)`,
		boardID, title, pos,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE id = ?`, id)
	return scanKanbanList(row)
}

// GetForUser returns the list only if its board belongs to userID.
func (s *ListStore) GetForUser(id, userID int64) (*model.List, error) {
	row := s.db.QueryRow(
		`SELECT `+listCols+` FROM lists
		 WHERE id = ? AND board_id IN (SELECT id FROM boards WHERE user_id = ?)`,
		id, userID,
	)
	l, err := scanKanbanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ListStore) ListForBoard(boardID int64) ([]model.List, error) {
	rows, err := s.db.Query(`SELECT `+listCols+` FROM lists WHERE board_id = ? ORDER BY position ASC`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanKanbanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

func (s *ListStore) Update(id, userID int64, title string, position *int) (*model.List, error) {
	if position != nil {
		_, err := s.db.Exec(
			`UPDATE lists SET title = ?, position = ?
			 WHERE id = ? AND board_id IN (SELECT id FROM boards WHERE user_id = ?)`,
			title, *position, id, userID,
		)
		if err != nil {
			return nil, fmt.Errorf("update list: %w", err)
		}
	} else {
		_, err := s.db.Exec(
			`UPDATE lists SET title = ?
			 WHERE id = ? AND board_id IN (SELECT id FROM boards WHERE user_id = ?)`,
			title, id, userID,
		)
		if err != nil {
			return nil, fmt.Errorf("update list: %w", err)
		}
	}
	return s.GetForUser(id, userID)
}

func (s *ListStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM lists WHERE id = ? AND board_id IN (SELECT id FROM boards WHERE user_id = ?)`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// Reorder ranks lists within a board. Ownership is enforced transitively
// through the board's owner, so ids from foreign boards are skipped.
func (s *ListStore) Reorder(userID, boardID int64, ids []int64) error {
	return reorderRows(s.db, reorderScope{
		table: "lists",
		where: "board_id = ? AND board_id IN (SELECT id FROM boards WHERE user_id = ?)",
		args:  []any{boardID, userID},
	}, ids)
}
