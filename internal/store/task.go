package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var dueAt sql.NullTime
	var completed int
	err := scanner.Scan(
		&t.ID, &t.ListID, &t.BoardID, &t.Title, &t.Description,
		&t.Position, &dueAt, &completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueAt.Valid {
		t.DueAt = &dueAt.Time
	}
	t.Completed = completed != 0
	return &t, nil
}

// taskCols joins lists so every task carries its board relation.
const taskCols = `t.id, t.list_id, l.board_id, t.title, t.description, t.position, t.due_at, t.completed, t.created_at, t.updated_at`

func (s *TaskStore) Create(listID int64, title, description string, dueAt *time.Time) (*model.Task, error) {
	pos, err := nextPosition(s.db, "tasks", "list_id = ?", listID)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO tasks (list_id, title, description, position, due_at) VALUES (?, ?, ?, ?, ?)`,
		listID, title, description, pos, dueAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getByID(id)
}

func (s *TaskStore) getByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM tasks t JOIN lists l ON l.id = t.list_id WHERE t.id = ?`, id,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// GetForUser returns the task only if it belongs to userID transitively
// through its list's board.
func (s *TaskStore) GetForUser(id, userID int64) (*model.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM tasks t
		 JOIN lists l ON l.id = t.list_id
		 JOIN boards b ON b.id = l.board_id
		 WHERE t.id = ? AND b.user_id = ?`,
		id, userID,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) ListForList(listID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks t JOIN lists l ON l.id = t.list_id
		 WHERE t.list_id = ? ORDER BY t.position ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Update rewrites the task's fields. Moving a task to another list goes
// through listID here; reordering within the target list is a separate
// Reorder call.
func (s *TaskStore) Update(id, userID, listID int64, title, description string, dueAt *time.Time) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET list_id = ?, title = ?, description = ?, due_at = ?
		 WHERE id = ? AND list_id IN (
			SELECT l.id FROM lists l JOIN boards b ON b.id = l.board_id WHERE b.user_id = ?
		 )`,
		listID, title, description, dueAt, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *TaskStore) SetCompleted(id, userID int64, completed bool) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET completed = ?
		 WHERE id = ? AND list_id IN (
			SELECT l.id FROM lists l JOIN boards b ON b.id = l.board_id WHERE b.user_id = ?
		 )`,
		completed, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("set task completed: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *TaskStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM tasks WHERE id = ? AND list_id IN (
			SELECT l.id FROM lists l JOIN boards b ON b.id = l.board_id WHERE b.user_id = ?
		 )`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Reorder ranks tasks within one list, scoped transitively to the owner.
func (s *TaskStore) Reorder(userID, listID int64, ids []int64) error {
	return reorderRows(s.db, reorderScope{
		table: "tasks",
		where: `list_id = ? AND list_id IN (
			SELECT l.id FROM lists l JOIN boards b ON b.id = l.board_id WHERE b.user_id = ?
		)`,
		args: []any{listID, userID},
	}, ids)
}

// ListDueBetween returns incomplete tasks whose due time falls in [from, to),
// with the owning user id, for the reminder scheduler.
func (s *TaskStore) ListDueBetween(from, to time.Time) ([]model.Task, []int64, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+`, b.user_id FROM tasks t
		 JOIN lists l ON l.id = t.list_id
		 JOIN boards b ON b.id = l.board_id
		 WHERE t.completed = 0 AND t.due_at IS NOT NULL AND t.due_at >= ? AND t.due_at < ?`,
		from, to,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("list due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	var owners []int64
	for rows.Next() {
		var t model.Task
		var dueAt sql.NullTime
		var completed int
		var ownerID int64
		err := rows.Scan(
			&t.ID, &t.ListID, &t.BoardID, &t.Title, &t.Description,
			&t.Position, &dueAt, &completed, &t.CreatedAt, &t.UpdatedAt, &ownerID,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("scan due task: %w", err)
		}
		if dueAt.Valid {
			t.DueAt = &dueAt.Time
		}
		t.Completed = completed != 0
		tasks = append(tasks, t)
		owners = append(owners, ownerID)
	}
	return tasks, owners, rows.Err()
}
