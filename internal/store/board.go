package store

import (
	"database/sql"
	"fmt"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type BoardStore struct {
	db *sql.DB
}

func NewBoardStore(db *sql.DB) *BoardStore {
	return &BoardStore{db: db}
}

func scanBoard(scanner interface{ Scan(...any) error }) (*model.Board, error) {
	var b model.Board
	err := scanner.Scan(
		&b.ID, &b.UserID, &b.Title, &b.Description, &b.ImageURL,
		&b.Position, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const boardCols = `id, user_id, title, description, image_url, position, created_at, updated_at`

func (s *BoardStore) Create(userID int64, title, description, imageURL string) (*model.Board, error) {
	pos, err := nextPosition(s.db, "boards", "user_id = ?", userID)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO boards (user_id, title, description, image_url, position) VALUES (?, ?, ?, ?, ?)`,
		userID, title, description, imageURL, pos,
	)
	if err != nil {
		return nil, fmt.Errorf("insert board: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getByID(id)
}

func (s *BoardStore) getByID(id int64) (*model.Board, error) {
	row := s.db.QueryRow(`SELECT `+boardCols+` FROM boards WHERE id = ?`, id)
	b, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

// GetForUser returns the board only if it belongs to userID.
func (s *BoardStore) GetForUser(id, userID int64) (*model.Board, error) {
	row := s.db.QueryRow(`SELECT `+boardCols+` FROM boards WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

func (s *BoardStore) ListForUser(userID int64) ([]model.Board, error) {
	rows, err := s.db.Query(`SELECT `+boardCols+` FROM boards WHERE user_id = ? ORDER BY position ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var boards []model.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, *b)
	}
	return boards, rows.Err()
}

func (s *BoardStore) Update(id, userID int64, title, description, imageURL string) (*model.Board, error) {
	_, err := s.db.Exec(
		`UPDATE boards SET title = ?, description = ?, image_url = ? WHERE id = ? AND user_id = ?`,
		title, description, imageURL, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *BoardStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM boards WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

// Reorder assigns each board in ids the position equal to its index, touching
// only boards owned by userID. Foreign ids are skipped silently.
func (s *BoardStore) Reorder(userID int64, ids []int64) error {
	return reorderRows(s.db, reorderScope{
		table: "boards",
		where: "user_id = ?",
		args:  []any{userID},
	}, ids)
}
