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

var validSolutionTypes = map[string]bool{
	model.SolutionTypeAutomation:  true,
	model.SolutionTypeChatbot:     true,
	model.SolutionTypeAnalytics:   true,
	model.SolutionTypeIntegration: true,
}

type SolutionHandler struct {
	solutions *store.SolutionStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewSolutionHandler(ss *store.SolutionStore, hub *websocket.Hub, logger *slog.Logger) *SolutionHandler {
	return &SolutionHandler{solutions: ss, hub: hub, logger: logger}
}

func (h *SolutionHandler) broadcast(r *http.Request, action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(auth.UserID(r.Context()), websocket.NewMessage("solution", action, id, nil))
	}
}

type solutionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	URL         string `json:"url"`
}

func (h *SolutionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req solutionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Type == "" {
		req.Type = model.SolutionTypeAutomation
	}
	if !validSolutionTypes[req.Type] {
		writeError(w, http.StatusBadRequest, "unknown solution type")
		return
	}

	solution, err := h.solutions.Create(auth.UserID(r.Context()), req.Title, req.Description, req.Type, req.URL)
	if err != nil {
		h.logger.Error("create solution", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create solution")
		return
	}

	h.broadcast(r, "created", solution.ID)
	writeJSON(w, http.StatusCreated, solution)
}

func (h *SolutionHandler) List(w http.ResponseWriter, r *http.Request) {
	solutionType := r.URL.Query().Get("type")
	if solutionType != "" && !validSolutionTypes[solutionType] {
		writeError(w, http.StatusBadRequest, "unknown solution type")
		return
	}

	solutions, err := h.solutions.ListForUser(auth.UserID(r.Context()), solutionType)
	if err != nil {
		h.logger.Error("list solutions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list solutions")
		return
	}
	if solutions == nil {
		solutions = []model.Solution{}
	}
	writeJSON(w, http.StatusOK, solutions)
}

func (h *SolutionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	solution, err := h.solutions.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get solution", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get solution")
		return
	}
	if solution == nil {
		writeError(w, http.StatusNotFound, "solution not found")
		return
	}
	writeJSON(w, http.StatusOK, solution)
}

func (h *SolutionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.solutions.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get solution", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get solution")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "solution not found")
		return
	}

	var req solutionRequest
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
	if req.Type == "" {
		req.Type = existing.Type
	}
	if !validSolutionTypes[req.Type] {
		writeError(w, http.StatusBadRequest, "unknown solution type")
		return
	}
	if req.URL == "" {
		req.URL = existing.URL
	}

	solution, err := h.solutions.Update(id, userID, req.Title, req.Description, req.Type, req.URL)
	if err != nil {
		h.logger.Error("update solution", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update solution")
		return
	}

	h.broadcast(r, "updated", solution.ID)
	writeJSON(w, http.StatusOK, solution)
}

func (h *SolutionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.solutions.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get solution", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get solution")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "solution not found")
		return
	}

	if err := h.solutions.Delete(id, userID); err != nil {
		h.logger.Error("delete solution", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete solution")
		return
	}

	h.broadcast(r, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

type reorderSolutionsRequest struct {
	SolutionIDs []int64 `json:"solutionIds"`
	Type        string  `json:"type"`
}

// Reorder ranks the caller's catalog items. A type filter ANDs with the
// ownership check so a typed reorder cannot touch other types.
func (h *SolutionHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderSolutionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "solutionIds must be an array of ids")
		return
	}
	if req.Type != "" && !validSolutionTypes[req.Type] {
		writeError(w, http.StatusBadRequest, "unknown solution type")
		return
	}

	if err := h.solutions.Reorder(auth.UserID(r.Context()), req.Type, req.SolutionIDs); err != nil {
		h.logger.Error("reorder solutions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reorder solutions")
		return
	}

	h.broadcast(r, "reordered", 0)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
