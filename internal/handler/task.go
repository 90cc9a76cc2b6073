package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/websocket"
)

type TaskHandler struct {
	tasks  *store.TaskStore
	lists  *store.ListStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, ls *store.ListStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, lists: ls, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(r *http.Request, action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(auth.UserID(r.Context()), websocket.NewMessage("task", action, id, nil))
	}
}

type taskRequest struct {
	ListID      int64      `json:"listId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.ListID == 0 {
		writeError(w, http.StatusBadRequest, "title and listId are required")
		return
	}

	list, err := h.lists.GetForUser(req.ListID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	task, err := h.tasks.Create(list.ID, req.Title, req.Description, req.DueAt)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.broadcast(r, "created", task.ID)
	writeJSON(w, http.StatusCreated, task)
}

// ListForList returns a list's tasks ordered by position.
func (h *TaskHandler) ListForList(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	list, err := h.lists.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	tasks, err := h.tasks.ListForList(list.ID)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.tasks.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		req.Title = existing.Title
	}
	if req.Description == "" {
		req.Description = existing.Description
	}
	listID := existing.ListID
	if req.ListID != 0 && req.ListID != existing.ListID {
		// Moving between lists: the target list must also be owned.
		target, err := h.lists.GetForUser(req.ListID, userID)
		if err != nil {
			h.logger.Error("get list", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get list")
			return
		}
		if target == nil {
			writeError(w, http.StatusNotFound, "target list not found")
			return
		}
		listID = target.ID
	}
	dueAt := existing.DueAt
	if req.DueAt != nil {
		dueAt = req.DueAt
	}

	task, err := h.tasks.Update(id, userID, listID, req.Title, req.Description, dueAt)
	if err != nil {
		h.logger.Error("update task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.broadcast(r, "updated", task.ID)
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.tasks.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	task, err := h.tasks.SetCompleted(id, userID, !existing.Completed)
	if err != nil {
		h.logger.Error("toggle task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.broadcast(r, "updated", task.ID)
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.tasks.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.tasks.Delete(id, userID); err != nil {
		h.logger.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	h.broadcast(r, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

type reorderTasksRequest struct {
	TaskIDs []int64 `json:"taskIds"`
	ListID  int64   `json:"listId"`
}

func (h *TaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderTasksRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "taskIds must be an array of ids")
		return
	}
	if req.ListID == 0 {
		writeError(w, http.StatusBadRequest, "listId is required")
		return
	}

	if err := h.tasks.Reorder(auth.UserID(r.Context()), req.ListID, req.TaskIDs); err != nil {
		h.logger.Error("reorder tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reorder tasks")
		return
	}

	h.broadcast(r, "reordered", req.ListID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
