package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/websocket"
)

type BoardHandler struct {
	boards *store.BoardStore
	lists  *store.ListStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewBoardHandler(bs *store.BoardStore, ls *store.ListStore, hub *websocket.Hub, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{boards: bs, lists: ls, hub: hub, logger: logger}
}

func (h *BoardHandler) broadcast(r *http.Request, action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(auth.UserID(r.Context()), websocket.NewMessage("board", action, id, nil))
	}
}

type boardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	board, err := h.boards.Create(auth.UserID(r.Context()), req.Title, req.Description, req.ImageURL)
	if err != nil {
		h.logger.Error("create board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create board")
		return
	}

	h.broadcast(r, "created", board.ID)
	writeJSON(w, http.StatusCreated, board)
}

func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list boards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list boards")
		return
	}
	if boards == nil {
		boards = []model.Board{}
	}
	writeJSON(w, http.StatusOK, boards)
}

func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	board, err := h.boards.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get board")
		return
	}
	if board == nil {
		writeError(w, http.StatusNotFound, "board not found")
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.boards.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get board")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "board not found")
		return
	}

	var req boardRequest
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
	if req.ImageURL == "" {
		req.ImageURL = existing.ImageURL
	}

	board, err := h.boards.Update(id, userID, req.Title, req.Description, req.ImageURL)
	if err != nil {
		h.logger.Error("update board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update board")
		return
	}

	h.broadcast(r, "updated", board.ID)
	writeJSON(w, http.StatusOK, board)
}

func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.boards.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get board")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "board not found")
		return
	}

	if err := h.boards.Delete(id, userID); err != nil {
		h.logger.Error("delete board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete board")
		return
	}

	h.broadcast(r, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

type reorderBoardsRequest struct {
	BoardIDs []int64 `json:"boardIds"`
}

// Reorder assigns each board the rank equal to its index in boardIds. Ids
// not owned by the caller are skipped silently.
func (h *BoardHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderBoardsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "boardIds must be an array of ids")
		return
	}

	if err := h.boards.Reorder(auth.UserID(r.Context()), req.BoardIDs); err != nil {
		h.logger.Error("reorder boards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reorder boards")
		return
	}

	h.broadcast(r, "reordered", 0)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Lists returns the board's lists ordered by position.
func (h *BoardHandler) Lists(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	board, err := h.boards.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get board", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get board")
		return
	}
	if board == nil {
		writeError(w, http.StatusNotFound, "board not found")
		return
	}

	lists, err := h.lists.ListForBoard(board.ID)
	if err != nil {
		h.logger.Error("list lists", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list lists")
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	writeJSON(w, http.StatusOK, lists)
}
