package store

import (
	"database/sql"
	"fmt"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type SolutionStore struct {
	db *sql.DB
}

func NewSolutionStore(db *sql.DB) *SolutionStore {
	return &SolutionStore{db: db}
}

func scanSolution(scanner interface{ Scan(...any) error }) (*model.Solution, error) {
	var sol model.Solution
	err := scanner.Scan(
		&sol.ID, &sol.UserID, &sol.Title, &sol.Description, &sol.Type,
		&sol.URL, &sol.Position, &sol.CreatedAt, &sol.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sol, nil
}

const solutionCols = `id, user_id, title, description, solution_type, url, position, created_at, updated_at`

func (s *SolutionStore) Create(userID int64, title, description, solutionType, url string) (*model.Solution, error) {
	pos, err := nextPosition(s.db, "solutions", "user_id = ?", userID)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO solutions (user_id, title, description, solution_type, url, position) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, title, description, solutionType, url, pos,
	)
	if err != nil {
		return nil, fmt.Errorf("insert solution: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *SolutionStore) GetForUser(id, userID int64) (*model.Solution, error) {
	row := s.db.QueryRow(`SELECT `+solutionCols+` FROM solutions WHERE id = ? AND user_id = ?`, id, userID)
	sol, err := scanSolution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get solution: %w", err)
	}
	return sol, nil
}

// ListForUser returns the user's catalog ordered by position, optionally
// filtered to one solution type.
func (s *SolutionStore) ListForUser(userID int64, solutionType string) ([]model.Solution, error) {
	query := `SELECT ` + solutionCols + ` FROM solutions WHERE user_id = ?`
	args := []any{userID}
	if solutionType != "" {
		query += ` AND solution_type = ?`
		args = append(args, solutionType)
	}
	query += ` ORDER BY position ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	defer rows.Close()

	var solutions []model.Solution
	for rows.Next() {
		sol, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		solutions = append(solutions, *sol)
	}
	return solutions, rows.Err()
}

func (s *SolutionStore) Update(id, userID int64, title, description, solutionType, url string) (*model.Solution, error) {
	_, err := s.db.Exec(
		`UPDATE solutions SET title = ?, description = ?, solution_type = ?, url = ? WHERE id = ? AND user_id = ?`,
		title, description, solutionType, url, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update solution: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *SolutionStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM solutions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete solution: %w", err)
	}
	return nil
}

// Reorder ranks catalog items for one user. A non-empty solutionType ANDs
// with the ownership check so a typed reorder cannot touch other types.
func (s *SolutionStore) Reorder(userID int64, solutionType string, ids []int64) error {
	sc := reorderScope{
		table: "solutions",
		where: "user_id = ?",
		args:  []any{userID},
	}
	if solutionType != "" {
		sc.where += " AND solution_type = ?"
		sc.args = append(sc.args, solutionType)
	}
	return reorderRows(s.db, sc, ids)
}
