package model

import "time"

type Task struct {
	ID          int64      `json:"id"`
	ListID      int64      `json:"list_id"`
	BoardID     int64      `json:"board_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Position    int        `json:"position"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
