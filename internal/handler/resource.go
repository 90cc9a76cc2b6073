package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/filestore"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
)

// maxUploadBytes caps resource file uploads at 25 MiB.
const maxUploadBytes = 25 << 20

type ResourceHandler struct {
	resources *store.ResourceStore
	files     *filestore.Store
	logger    *slog.Logger
}

func NewResourceHandler(rs *store.ResourceStore, files *filestore.Store, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{resources: rs, files: files, logger: logger}
}

type resourceRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Create adds a link resource. File resources go through Upload.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	resource, err := h.resources.Create(auth.UserID(r.Context()), req.Title, model.ResourceKindLink, req.URL, "")
	if err != nil {
		h.logger.Error("create resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create resource")
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

// Upload accepts a multipart form with a "file" part and an optional
// "title" field, stores the file in object storage, and records a file
// resource pointing at it.
func (h *ResourceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.files.Configured() {
		writeError(w, http.StatusServiceUnavailable, "file storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = header.Filename
	}
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Keys are namespaced per upload so filenames never collide.
	key := fmt.Sprintf("resources/%s/%s", uuid.NewString(), path.Base(header.Filename))
	if err := h.files.Put(r.Context(), key, contentType, file); err != nil {
		h.logger.Error("upload resource file", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	resource, err := h.resources.Create(auth.UserID(r.Context()), title, model.ResourceKindFile, "", key)
	if err != nil {
		h.logger.Error("create resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create resource")
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resources.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list resources", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list resources")
		return
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	resource, err := h.resources.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get resource")
		return
	}
	if resource == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

// Download streams a file resource's contents from object storage.
func (h *ResourceHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	resource, err := h.resources.GetForUser(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get resource")
		return
	}
	if resource == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	if resource.Kind != model.ResourceKindFile {
		writeError(w, http.StatusBadRequest, "resource is not a file")
		return
	}
	if !h.files.Configured() {
		writeError(w, http.StatusServiceUnavailable, "file storage is not configured")
		return
	}

	body, contentType, err := h.files.Get(r.Context(), resource.ObjectKey)
	if err != nil {
		h.logger.Error("fetch resource file", "key", resource.ObjectKey, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch file")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(resource.ObjectKey)))
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("stream resource file", "key", resource.ObjectKey, "error", err)
	}
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.resources.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get resource")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		req.Title = existing.Title
	}
	url := existing.URL
	if existing.Kind == model.ResourceKindLink && req.URL != "" {
		url = req.URL
	}

	resource, err := h.resources.Update(id, userID, req.Title, url)
	if err != nil {
		h.logger.Error("update resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update resource")
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.resources.GetForUser(id, userID)
	if err != nil {
		h.logger.Error("get resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get resource")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	if err := h.resources.Delete(id, userID); err != nil {
		h.logger.Error("delete resource", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete resource")
		return
	}

	// Best effort: the row is gone either way.
	if existing.Kind == model.ResourceKindFile && h.files.Configured() {
		if err := h.files.Delete(r.Context(), existing.ObjectKey); err != nil {
			h.logger.Warn("delete resource file", "key", existing.ObjectKey, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
