package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
)

func TestSolutionGet(t *testing.T) {
	_, db := setupAuthHandler(t)

	users := store.NewUserStore(db)
	hash := "$2a$10$test-hash"
	owner, err := users.Create("owner@example.com", "Owner", &hash)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	stranger, err := users.Create("stranger@example.com", "Stranger", &hash)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	solutions := store.NewSolutionStore(db)
	created, err := solutions.Create(owner.ID, "Support bot", "", model.SolutionTypeChatbot, "")
	if err != nil {
		t.Fatalf("create solution: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewSolutionHandler(solutions, nil, logger)

	get := func(userID, solutionID int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/solutions/%d", solutionID), nil)
		req.SetPathValue("id", fmt.Sprintf("%d", solutionID))
		req = req.WithContext(auth.WithAuth(req.Context(), auth.AuthContext{UserID: userID}))
		w := httptest.NewRecorder()
		h.Get(w, req)
		return w
	}

	w := get(owner.ID, created.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var got model.Solution
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != created.ID || got.Title != "Support bot" {
		t.Errorf("got = %+v, want id %d title %q", got, created.ID, "Support bot")
	}

	if w := get(stranger.ID, created.ID); w.Code != http.StatusNotFound {
		t.Errorf("foreign get status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if w := get(owner.ID, created.ID+999); w.Code != http.StatusNotFound {
		t.Errorf("missing get status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
