package store

import (
	"database/sql"
	"fmt"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type ClientStore struct {
	db *sql.DB
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

func scanClient(scanner interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	err := scanner.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Company, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const clientCols = `id, user_id, name, email, company, notes, created_at, updated_at`

func (s *ClientStore) Create(userID int64, name, email, company, notes string) (*model.Client, error) {
	result, err := s.db.Exec(
		`INSERT INTO clients (user_id, name, email, company, notes) VALUES (?, ?, ?, ?, ?)`,
		userID, name, email, company, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *ClientStore) GetForUser(id, userID int64) (*model.Client, error) {
	row := s.db.QueryRow(`SELECT `+clientCols+` FROM clients WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (s *ClientStore) ListForUser(userID int64) ([]model.Client, error) {
	rows, err := s.db.Query(`SELECT `+clientCols+` FROM clients WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (s *ClientStore) Update(id, userID int64, name, email, company, notes string) (*model.Client, error) {
	_, err := s.db.Exec(
		`UPDATE clients SET name = ?, email = ?, company = ?, notes = ? WHERE id = ? AND user_id = ?`,
		name, email, company, notes, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *ClientStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM clients WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
