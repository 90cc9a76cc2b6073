package store

import (
	"database/sql"
	"fmt"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
	"github.com/google/uuid"
)

type ResourceStore struct {
	db *sql.DB
}

func NewResourceStore(db *sql.DB) *ResourceStore {
	return &ResourceStore{db: db}
}

func scanResource(scanner interface{ Scan(...any) error }) (*model.Resource, error) {
	var r model.Resource
	err := scanner.Scan(
		&r.ID, &r.UserID, &r.Title, &r.Kind, &r.URL, &r.ObjectKey,
		&r.PublicID, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const resourceCols = `id, user_id, title, kind, url, object_key, public_id, created_at, updated_at`

// Create stores a library entry. Link resources carry a URL; file resources
// carry the object storage key written by the upload handler.
func (s *ResourceStore) Create(userID int64, title, kind, url, objectKey string) (*model.Resource, error) {
	publicID := uuid.NewString()
	result, err := s.db.Exec(
		`INSERT INTO resources (user_id, title, kind, url, object_key, public_id) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, title, kind, url, objectKey, publicID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *ResourceStore) GetForUser(id, userID int64) (*model.Resource, error) {
	row := s.db.QueryRow(`SELECT `+resourceCols+` FROM resources WHERE id = ? AND user_id = ?`, id, userID)
	r, err := scanResource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return r, nil
}

func (s *ResourceStore) ListForUser(userID int64) ([]model.Resource, error) {
	rows, err := s.db.Query(`SELECT `+resourceCols+` FROM resources WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, *r)
	}
	return resources, rows.Err()
}

func (s *ResourceStore) Update(id, userID int64, title, url string) (*model.Resource, error) {
	_, err := s.db.Exec(
		`UPDATE resources SET title = ?, url = ? WHERE id = ? AND user_id = ?`,
		title, url, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *ResourceStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM resources WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}
