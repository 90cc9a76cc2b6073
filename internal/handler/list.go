package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/websocket"
)

type ListHandler struct {
	lists  *store.ListStore
	boards *store.BoardStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewListHandler(ls *store.ListStore, bs *store.BoardStore, hub *websocket.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: ls, boards: bs, hub: hub, logger: logger}
}

func (h *ListHandler) broadcast(r *http.Request, action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(auth.UserID(r.Context()), websocket.NewMessage("list", action, id, nil))
	}
}

type createListRequest struct {
	BoardID int64  `json:"boardId"`
	Title   string `json:"title"`
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.BoardID == 0 {
		writeError(w, http.StatusBadRequest, "title and boardId are required")
		return
	}

	// Parent ownership gates creation: a foreign board reads as absent.
	board, err := h.boards.GetForUser(req.BoardID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get board")
		return
	}
	if board == nil {
		writeError(w, http.StatusNotFound, "board not found")
		return
	}

	list, err := h.lists.Create(board.ID, req.Title)
	if err != nil {
		h.logger.Error("create list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create list")
		return
	}

	h.broadcast(r, "created", list.ID)
	writeJSON(w, http.StatusCreated, list)
}

type updateListRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.lists.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	var req updateListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	title := existing.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
	}

	list, err := h.lists.Update(id, userID, title, req.Position)
	if err != nil {
		h.logger.Error("update list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update list")
		return
	}

	h.broadcast(r, "updated", list.ID)
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.lists.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	if err := h.lists.Delete(id, userID); err != nil {
		h.logger.Error("delete list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}

	h.broadcast(r, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

type reorderListsRequest struct {
	ListIDs []int64 `json:"listIds"`
	BoardID int64   `json:"boardId"`
}

func (h *ListHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderListsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "listIds must be an array of ids")
		return
	}
	if req.BoardID == 0 {
		writeError(w, http.StatusBadRequest, "boardId is required")
		return
	}

	if err := h.lists.Reorder(auth.UserID(r.Context()), req.BoardID, req.ListIDs); err != nil {
		h.logger.Error("reorder lists", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reorder lists")
		return
	}

	h.broadcast(r, "reordered", req.BoardID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
